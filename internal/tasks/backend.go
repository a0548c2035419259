package tasks

import (
	"errors"
	"fmt"
	"log"
)

// Backend persists the active task collection. Implementations are called
// synchronously after every mutation and hold no open handles between calls.
type Backend interface {
	// Name returns the backend identifier (e.g. "json", "yaml", "memory")
	Name() string

	// Load returns the stored collection. A backend with nothing stored yet
	// returns an empty collection and no error.
	Load() ([]Task, error)

	// Save replaces the stored collection with tasks.
	Save(tasks []Task) error
}

// BackendOptions carries what a factory needs to build a backend.
type BackendOptions struct {
	// Path is where file backends keep their data; others ignore it
	Path string

	// Logger receives recovery notices; nil means log.Default()
	Logger *log.Logger
}

// BackendFactory creates a Backend from opts.
type BackendFactory func(opts BackendOptions) Backend

// ErrUnrecoverable marks a load where neither the primary file nor its
// backup could be read. The caller receives an empty collection.
var ErrUnrecoverable = errors.New("task data unrecoverable")

// RecoveryError describes why a load fell through to an empty collection.
type RecoveryError struct {
	Path    string
	Primary error
	Backup  error
}

func (e *RecoveryError) Error() string {
	return fmt.Sprintf("%s: primary %s: %v; backup: %v", ErrUnrecoverable, e.Path, e.Primary, e.Backup)
}

func (e *RecoveryError) Unwrap() error {
	return ErrUnrecoverable
}
