package constants

import "time"

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
	ClientTimeout   = 10 * time.Second
)

const (
	DBMaxOpenConns    = 1
	DBMaxIdleConns    = 1
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	BoltOpenTimeout   = 1 * time.Second
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	MaxImportBytes    = 1 << 20
	MaxRequestBytes   = 64 << 10
	SearchResultLimit = 10
)

const (
	BackupJobTimeout = 30 * time.Second
)
