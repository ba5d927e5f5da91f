package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Character is a player-owned hero. Level only changes through a level-up.
type Character struct {
	ID        int64     `json:"id" db:"character_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Level     int       `json:"level" db:"level"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (c Character) String() string {
	return fmt.Sprintf("%s, level %d", c.Name, c.Level)
}

// CharacterAttributes holds the combat stats of a character (one-to-one)
type CharacterAttributes struct {
	CharacterID int64 `json:"character_id" db:"character_id"`
	MaxHP       int   `json:"max_hp" db:"max_hp"`
	HP          int   `json:"hp" db:"hp"`
	Dmg         int   `json:"dmg" db:"dmg"`
	Luck        int   `json:"luck" db:"luck"`
}

// NewCharacterAttributes returns the starting attributes for a character
func NewCharacterAttributes(characterID int64) CharacterAttributes {
	return CharacterAttributes{
		CharacterID: characterID,
		MaxHP:       DefaultMaxHP,
		HP:          DefaultHP,
		Dmg:         DefaultDmg,
		Luck:        DefaultLuck,
	}
}

func (a CharacterAttributes) String() string {
	return fmt.Sprintf("HP %d/%d, DMG %d, Luck %d", a.HP, a.MaxHP, a.Dmg, a.Luck)
}

// CharacterLocation records where a character currently is
type CharacterLocation struct {
	CharacterID int64 `json:"character_id" db:"character_id"`
	LocationID  int64 `json:"location_id" db:"location_id"`
}
