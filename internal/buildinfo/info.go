package buildinfo

var (
	// Version se inyecta con -ldflags al compilar.
	Version = "dev"
	// Commit se inyecta con -ldflags al compilar.
	Commit = "none"
	// Date se inyecta con -ldflags al compilar.
	Date = "unknown"
)
