package router

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed router query.
type ErrorKind int

const (
	// ErrSpawn means the command could not be started or was interrupted.
	ErrSpawn ErrorKind = iota
	// ErrNonZeroExit means the command ran and reported failure.
	ErrNonZeroExit
	// ErrJSON means the command output was not the expected JSON.
	ErrJSON
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSpawn:
		return "spawn"
	case ErrNonZeroExit:
		return "non-zero-exit"
	case ErrJSON:
		return "json"
	default:
		return "unknown"
	}
}

// RouterError is returned by every RouterInfo query.
type RouterError struct {
	Kind   ErrorKind
	Cmd    string
	Code   int
	Stderr string
	Err    error
}

func (e *RouterError) Error() string {
	switch e.Kind {
	case ErrNonZeroExit:
		return fmt.Sprintf("the command %s ended with code %d: %s", e.Cmd, e.Code, e.Stderr)
	case ErrJSON:
		return fmt.Sprintf("unable to parse JSON from %s: %v", e.Cmd, e.Err)
	default:
		return fmt.Sprintf("unable to execute command %s: %v", e.Cmd, e.Err)
	}
}

func (e *RouterError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a RouterError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var re *RouterError
	if errors.As(err, &re) {
		return re.Kind == kind
	}
	return false
}
