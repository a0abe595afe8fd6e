package worker

import (
	"context"
)

// Worker is the contract all background workers satisfy.
type Worker interface {
	// Start runs the worker loop until stopped or the context ends.
	Start(ctx context.Context) error

	// Stop signals the worker to finish.
	Stop() error

	// Name returns the worker name.
	Name() string
}
