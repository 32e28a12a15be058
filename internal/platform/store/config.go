package store

import "time"

// Config selects and tunes the backends Open connects
type Config struct {
	// AppName shows up as application_name in pg_stat_activity
	AppName string

	PG PGConfig
}

// PGConfig tunes the postgres pool
type PGConfig struct {
	Enabled  bool
	URL      string
	MaxConns int32

	// LogSQL traces every statement; SlowQueryMs alone traces only slow ones
	LogSQL      bool
	SlowQueryMs int

	// zero takes the boot defaults in openers.go
	ConnectRetries int
	PingTimeout    time.Duration
}
