package naming

// SchemaItemAliases is the schema identifier expected in the aliases file
const SchemaItemAliases = "item-aliases"

// AliasesSchemaFile is the JSON schema the aliases file is validated against
const AliasesSchemaFile = "item_aliases.schema.json"

// DateSeparator separates month and day in MM-DD theme bounds
const DateSeparator = "-"

// DatePartsCount is the number of parts in an MM-DD value
const DatePartsCount = 2

// DateComparisonMultiplier turns (month, day) into a comparable month*100+day
const DateComparisonMultiplier = 100

// Error messages
const (
	ErrMsgLoadAliasesFailed = "failed to load aliases: %w"
	ErrMsgParseConfigFailed = "failed to parse config %s: %w"
	ErrMsgMissingVersion    = "%s missing version field"
	ErrMsgInvalidSchema     = "invalid schema in %s: expected '%s', got '%s'"
	ErrMsgSchemaCheckFailed = "aliases file %s failed validation: %w"
	ErrMsgReadAliasesFailed = "failed to read aliases file: %w"
)

// Log messages
const (
	LogMsgAliasesLoaded = "Item aliases loaded"
)
