package location

// Error message format constants
const (
	ErrMsgBeginTxFailed       = "failed to begin transaction: %w"
	ErrMsgCommitTxFailed      = "failed to commit travel: %w"
	ErrMsgGetCharacterFailed  = "failed to get character: %w"
	ErrMsgListLocationsFailed = "failed to list locations: %w"
	ErrMsgSetLocationFailed   = "failed to set location: %w"
	ErrMsgLocationInactive    = "%w: %s"
	ErrMsgLocationLocked      = "%w: %s requires level %d"
)

// Log message constants
const (
	LogMsgTraveled       = "Character traveled"
	LogMsgTravelRejected = "Travel rejected"
)
