package operations

import "errors"

var (
	ErrNoDestination = errors.New("no destination configured")
)
