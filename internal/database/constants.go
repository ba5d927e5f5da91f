package database

const (
	// DefaultMinConnections is the floor of idle connections kept open
	DefaultMinConnections = 2
	// MigrationsDir holds the embedded goose migrations
	MigrationsDir = "migrations"
)

const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToLoadMigrations  = "failed to load migrations"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
)

const (
	LogMsgSuccessfullyConnectedToDatabase = "Connected to PostgreSQL"
	LogMsgMigrationApplied                = "Applied migration"
	LogMsgMigrationsUpToDate              = "Schema up to date"
	LogMsgSlowQuery                       = "Slow query"
)
