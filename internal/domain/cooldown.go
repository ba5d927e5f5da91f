package domain

import (
	"fmt"
	"time"
)

// CooldownType identifies the action a cooldown throttles
type CooldownType string

const (
	CooldownLevel  CooldownType = "LEVEL"
	CooldownSkill  CooldownType = "SKILL"
	CooldownSearch CooldownType = "SEARCH"
)

// Valid reports whether t is a known cooldown type
func (t CooldownType) Valid() bool {
	switch t {
	case CooldownLevel, CooldownSkill, CooldownSearch:
		return true
	}
	return false
}

// CharacterCooldown is keyed uniquely by (CharacterID, Type)
type CharacterCooldown struct {
	CharacterID int64        `json:"character_id" db:"character_id"`
	Type        CooldownType `json:"type" db:"cooldown_type"`
	Until       time.Time    `json:"until" db:"until"`
}

// Active reports whether the cooldown still blocks the action at now.
// There is no stored state: the cooldown decays purely with wall-clock time.
func (c CharacterCooldown) Active(now time.Time) bool {
	return c.Until.After(now)
}

// Remaining is the time left until the cooldown expires, or zero
func (c CharacterCooldown) Remaining(now time.Time) time.Duration {
	if !c.Active(now) {
		return 0
	}
	return c.Until.Sub(now)
}

func (c CharacterCooldown) String() string {
	return fmt.Sprintf("%s until %s", c.Type, c.Until.Format(time.RFC3339))
}
