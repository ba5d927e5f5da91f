package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/random"
)

func TestRollUpgrade_PoolAlwaysSumsToLevelUpPoints(t *testing.T) {
	for hp := domain.MinHPIncrease; hp <= domain.MaxHPIncrease; hp++ {
		u := rollUpgrade(random.NewScripted(hp, 0))
		assert.Equal(t, hp, u.HPIncrease)
		assert.Equal(t, domain.LevelUpPoints, u.HPIncrease+u.DmgIncrease)
		assert.Zero(t, u.LuckIncrease)
	}
}

func TestUpgradeApply(t *testing.T) {
	attrs := domain.NewCharacterAttributes(1)
	attrs.HP = 4 // wounded

	Upgrade{HPIncrease: 6, DmgIncrease: 19, LuckIncrease: 1}.apply(&attrs)

	assert.Equal(t, 16, attrs.MaxHP)
	assert.Equal(t, 10, attrs.HP)
	assert.Equal(t, 20, attrs.Dmg)
	assert.Equal(t, 2, attrs.Luck)
}
