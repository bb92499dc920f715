package config

// Input defaults.
const (
	DefaultInputFormat  = "auto"
	DefaultMaxLineBytes = "1MiB"
)

// Output defaults.
const (
	DefaultOutputFormat = "text"
	DefaultOutputColor  = true
	DefaultOutputSort   = false
)

// Server defaults.
const (
	DefaultServerHost   = "127.0.0.1"
	DefaultServerPort   = 8080
	DefaultReadTimeout  = "10s"
	DefaultWriteTimeout = "30s"
	DefaultMaxResults   = 10000
)

// Logging defaults.
const (
	DefaultLogLevel = "info"
)

const maxPort = 65535
