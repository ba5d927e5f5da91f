package cooldown

import "time"

// =============================================================================
// Duration Constants
// =============================================================================

const (
	// LevelCooldownBase is the unit the LEVEL cooldown is scaled by: 2^level of these
	LevelCooldownBase = time.Second

	// MaxLevelCooldownExponent caps the shift so the duration cannot overflow
	MaxLevelCooldownExponent = 32
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	// ErrMsgCheckCooldownFailed is returned when checking cooldown state fails
	ErrMsgCheckCooldownFailed = "failed to check cooldown: %w"

	// ErrMsgGetCooldownTxFailed is returned when retrieving cooldown within transaction fails
	ErrMsgGetCooldownTxFailed = "failed to get cooldown within transaction: %w"

	// ErrMsgUpdateCooldownFailed is returned when updating cooldown timestamp fails
	ErrMsgUpdateCooldownFailed = "failed to update cooldown: %w"

	// ErrMsgResetCooldownFailed is returned when manual cooldown reset fails
	ErrMsgResetCooldownFailed = "failed to reset cooldown: %w"

	// ErrMsgInvalidCooldownType is returned for an unknown cooldown type
	ErrMsgInvalidCooldownType = "%w: cooldown type %q"
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	// LogMsgDevModeBypass is logged when dev mode bypasses cooldown enforcement
	LogMsgDevModeBypass = "DEV_MODE: Bypassing cooldown enforcement"

	// LogMsgCooldownActive is logged when a gated action is rejected
	LogMsgCooldownActive = "Cooldown active, rejecting action"

	// LogMsgCooldownScheduled is logged when a cooldown is written
	LogMsgCooldownScheduled = "Cooldown scheduled"

	// LogMsgCooldownReset is logged when a cooldown is manually cleared
	LogMsgCooldownReset = "Cooldown reset"
)
