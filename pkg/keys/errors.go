package keys

import (
	"errors"
	"fmt"
)

var (
	// ErrNoLocaleDir is returned when no project folder provides a locale directory.
	ErrNoLocaleDir = errors.New("no locale directory")
	// ErrMalformedOutput is returned when a flattener produces something other
	// than a list of key strings.
	ErrMalformedOutput = errors.New("malformed flattener output")
)

// LoadError reports a failed cache reload. The cache keeps its previous keys.
type LoadError struct {
	Dir string
	Err error
}

func (e *LoadError) Error() string {
	if e.Dir == "" {
		return fmt.Sprintf("load translation keys: %v", e.Err)
	}
	return fmt.Sprintf("load translation keys from %s: %v", e.Dir, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
