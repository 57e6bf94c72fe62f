package storage

import (
	"errors"
	"strings"

	"github.com/go-redsync/redsync/v4"
)

var (
	ErrLockFailed          = redsync.ErrFailed
	ErrLockAlreadyExpired  = redsync.ErrLockAlreadyExpired
	ErrLoadFailed          = errors.New("load failed")
	ErrDestinationLocked   = errors.New("destination locked")
	ErrInvalidObjectURI    = errors.New("invalid object uri")
	ErrNoObjectStorage     = errors.New("no object storage configured")
	ErrDestinationInvalid  = errors.New("destination invalid")
	ErrSplitSchemaMismatch = errors.New("split schemas not equal")
)

// LoadError reports a source that could not be read or decoded.
type LoadError struct {
	Source string
	Err    error
}

func (obj *LoadError) Error() string {
	var sb strings.Builder
	sb.WriteString("Failed to load data from path: ")
	sb.WriteString(obj.Source)
	if obj.Err != nil {
		sb.WriteString("\n")
		sb.WriteString(obj.Err.Error())
	}
	return sb.String()
}

func (obj *LoadError) Unwrap() []error {
	if obj.Err == nil {
		return []error{ErrLoadFailed}
	}
	return []error{ErrLoadFailed, obj.Err}
}
