package progression

// Error message format constants
const (
	ErrMsgBeginTxFailed        = "failed to begin transaction: %w"
	ErrMsgCommitTxFailed       = "failed to commit level up: %w"
	ErrMsgGetCharacterFailed   = "failed to get character: %w"
	ErrMsgGetAttributesFailed  = "failed to get attributes: %w"
	ErrMsgSaveAttributesFailed = "failed to save attributes: %w"
	ErrMsgUpdateLevelFailed    = "failed to update level: %w"
	ErrMsgGetInventoryFailed   = "failed to get inventory: %w"
	ErrMsgMaxLevel             = "%w: %s is already level %d"
)

// Log message constants
const (
	LogMsgLevelUpRejected = "Level up rejected"
	LogMsgLevelUp         = "Character leveled up"
)
