package config

import "time"

// Application-wide constants organized by concern

// Database and Performance Constants
const (
	// Timeouts
	DefaultQueryTimeout = 10 * time.Second
	TransactionTimeout  = 15 * time.Second
	SchemaTimeout       = 30 * time.Second
	HealthCheckTimeout  = 2 * time.Second
	ShutdownTimeout     = 15 * time.Second
	UploadTimeout       = 30 * time.Second

	// Connection
	NetworkDialTimeout = 5 * time.Second
	MaxDialRetries     = 3
	DialRetryInterval  = time.Second
)

// HTTP Constants
const (
	DefaultWebHost   = "0.0.0.0"
	DefaultWebPort   = 8080
	DefaultBodyLimit = 12 * 1024 * 1024

	// Rate limiting
	DefaultRateLimitRequests = 120
	DefaultRateLimitWindow   = time.Minute
	DefaultRateLimitClients  = 10000
)

// Catalog and Trade Constants
const (
	RecentTradesLimit       = 50
	MaxImageSize      int64 = 10 * 1024 * 1024
)
