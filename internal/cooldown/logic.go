package cooldown

import (
	"math"
	"time"

	"github.com/osse101/wwwhero/internal/domain"
)

// LevelDuration is the LEVEL cooldown after reaching newLevel: 2^newLevel seconds
func LevelDuration(newLevel int) time.Duration {
	if newLevel < 0 {
		newLevel = 0
	}
	if newLevel > MaxLevelCooldownExponent {
		newLevel = MaxLevelCooldownExponent
	}
	return LevelCooldownBase * time.Duration(int64(1)<<uint(newLevel))
}

// NextLevelUntil is the LEVEL cooldown expiry after reaching newLevel at now
func NextLevelUntil(now time.Time, newLevel int) time.Time {
	return now.Add(LevelDuration(newLevel))
}

// RemainingSeconds is ceil(until - now) in whole seconds, 0 once expired
func RemainingSeconds(until, now time.Time) int {
	if !until.After(now) {
		return 0
	}
	return int(math.Ceil(until.Sub(now).Seconds()))
}

// evaluate reports whether cd is active at now and what remains of it
func evaluate(cd *domain.CharacterCooldown, now time.Time) (bool, time.Duration) {
	if cd == nil || !cd.Active(now) {
		return false, 0
	}
	return true, cd.Remaining(now)
}
