package character

// Error message format constants
const (
	ErrMsgInvalidRequest      = "%w: %s"
	ErrMsgBeginTxFailed       = "failed to begin transaction: %w"
	ErrMsgCommitTxFailed      = "failed to commit character: %w"
	ErrMsgInsertCharFailed    = "failed to insert character: %w"
	ErrMsgSaveAttrsFailed     = "failed to save attributes: %w"
	ErrMsgInsertInvFailed     = "failed to insert inventory: %w"
	ErrMsgListLocationsFailed = "failed to list locations: %w"
	ErrMsgPlaceFailed         = "failed to place character: %w"
	ErrMsgListFailed          = "failed to list characters: %w"
	ErrMsgGetAttributesFailed = "failed to get attributes: %w"
	ErrMsgGetLocationFailed   = "failed to get location: %w"
)

// Log message constants
const (
	LogMsgCharacterCreated = "Character created"
	LogMsgNameTaken        = "Character name already taken"
	LogMsgForeignCharacter = "Character belongs to another user"
)
