package domain

import (
	"context"
	"time"
)

// Runner executes external processes
type Runner interface {
	// Output runs the command and returns its captured stdout
	Output(ctx context.Context, cmd Command) ([]byte, error)
	// Run runs the command with the operator's stdout and stderr attached
	Run(ctx context.Context, cmd Command) error
}

// Cache defines the interface for content caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Has checks if a key exists in cache
	Has(ctx context.Context, key string) bool
	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error
	// Close releases cache resources
	Close() error
}

// Writer defines the interface for output writing
type Writer interface {
	// Write saves a generated page
	Write(ctx context.Context, page *Page) error
}

// Inspector resolves provenance for a sibling repository
type Inspector interface {
	Inspect(path string) (SourceInfo, error)
}

// Pipeline generates one group of documentation pages
type Pipeline interface {
	// Name returns the pipeline name ("cli" or "sdk")
	Name() string
	// Generate runs the pipeline and hands every page to the writer
	Generate(ctx context.Context, w Writer) error
}
