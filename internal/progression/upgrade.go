package progression

import (
	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/random"
)

// Upgrade is the attribute change applied by one level-up
type Upgrade struct {
	HPIncrease   int `json:"hp_increase"`
	DmgIncrease  int `json:"dmg_increase"`
	LuckIncrease int `json:"luck_increase"`
}

// rollUpgrade splits the level-up point pool between hp and dmg and flips
// a coin for luck. hp and dmg always sum to domain.LevelUpPoints.
func rollUpgrade(roller random.Source) Upgrade {
	hp := roller.IntRange(domain.MinHPIncrease, domain.MaxHPIncrease)
	return Upgrade{
		HPIncrease:   hp,
		DmgIncrease:  domain.LevelUpPoints - hp,
		LuckIncrease: roller.Intn(2),
	}
}

// apply adds u to attrs. Current hp is raised by the same amount as max hp.
func (u Upgrade) apply(attrs *domain.CharacterAttributes) {
	attrs.MaxHP += u.HPIncrease
	attrs.HP += u.HPIncrease
	attrs.Dmg += u.DmgIncrease
	attrs.Luck += u.LuckIncrease
}
