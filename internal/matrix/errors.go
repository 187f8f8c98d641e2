package matrix

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a missing data file. Callers render the persistent
// "data not loaded" state instead of proceeding.
var ErrNotFound = errors.New("matrix file not found")

// ErrNotFoundAt wraps ErrNotFound with the expected path, which the
// "data not loaded" warning shows to the user.
func ErrNotFoundAt(path string) error {
	return fmt.Errorf("%s: %w", path, ErrNotFound)
}

// ErrUnknownOutcome marks a by-outcome query for a column that does not
// exist. Callers are expected to offer only names from Outcomes(), so
// this is a contract violation rather than a user-facing condition.
var ErrUnknownOutcome = errors.New("unknown outcome column")

// LoadError wraps a parse failure with the file it came from. The
// message is shown to the user and blocks all query modes until an
// explicit reload.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading matrix %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
