package domain

import (
	"errors"
	"fmt"
	"time"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgNotFound           = "not found"
	ErrMsgOnCooldown         = "action on cooldown"
	ErrMsgMaxLevel           = "maximum level reached"
	ErrMsgInventoryFull      = "inventory is full"
	ErrMsgNotDroppable       = "item cannot be dropped"
	ErrMsgNoBlueprint        = "no item blueprints available"
	ErrMsgInvalidInput       = "invalid input"
	ErrMsgNameTaken          = "character name already taken"
	ErrMsgLocationInactive   = "location is not active"
	ErrMsgLocationLocked     = "location requires a higher level"
	ErrMsgNoLocation         = "character has no location"
	ErrMsgItemNotInInventory = "item is not in an inventory"
)

// Common domain errors.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrNotFound      = errors.New(ErrMsgNotFound)
	ErrOnCooldown    = errors.New(ErrMsgOnCooldown)
	ErrMaxLevel      = errors.New(ErrMsgMaxLevel)
	ErrInventoryFull = errors.New(ErrMsgInventoryFull)
	ErrNotDroppable  = errors.New(ErrMsgNotDroppable)
	ErrNoBlueprint   = errors.New(ErrMsgNoBlueprint)
	ErrInvalidInput  = errors.New(ErrMsgInvalidInput)

	ErrCharacterNameTaken = errors.New(ErrMsgNameTaken)
	ErrLocationInactive   = errors.New(ErrMsgLocationInactive)
	ErrLocationLocked     = errors.New(ErrMsgLocationLocked)
	ErrNoLocation         = errors.New(ErrMsgNoLocation)
	ErrItemNotInInventory = errors.New(ErrMsgItemNotInInventory)
)

// Not-found errors for each entity; all match errors.Is(err, ErrNotFound)
var (
	ErrCharacterNotFound = fmt.Errorf("character %w", ErrNotFound)
	ErrInventoryNotFound = fmt.Errorf("inventory %w", ErrNotFound)
	ErrItemNotFound      = fmt.Errorf("item %w", ErrNotFound)
	ErrBlueprintNotFound = fmt.Errorf("blueprint %w", ErrNotFound)
	ErrLocationNotFound  = fmt.Errorf("location %w", ErrNotFound)
)

// CooldownActiveError is returned when an action is still on cooldown
type CooldownActiveError struct {
	Type      CooldownType
	Until     time.Time
	Remaining time.Duration
}

// NewCooldownActiveError builds the error for cd evaluated at now
func NewCooldownActiveError(cd CharacterCooldown, now time.Time) CooldownActiveError {
	return CooldownActiveError{Type: cd.Type, Until: cd.Until, Remaining: cd.Remaining(now)}
}

func (e CooldownActiveError) Error() string {
	minutes := int(e.Remaining.Minutes())
	seconds := int(e.Remaining.Seconds()) % 60

	if minutes > 0 {
		return fmt.Sprintf("%s: %s cooldown %dm %ds remaining", ErrMsgOnCooldown, e.Type, minutes, seconds)
	}
	return fmt.Sprintf("%s: %s cooldown %ds remaining", ErrMsgOnCooldown, e.Type, seconds)
}

// Is allows errors.Is() to match both ErrOnCooldown and any CooldownActiveError
func (e CooldownActiveError) Is(target error) bool {
	if target == ErrOnCooldown {
		return true
	}
	_, ok := target.(CooldownActiveError)
	return ok
}
