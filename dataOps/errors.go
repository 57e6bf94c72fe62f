package dataops

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
)

const (
	MsgEmptySplit      = "Cannot split an empty dataframe"
	MsgRatioOutOfRange = "Split ratio must be within range (0, 1)"
	MsgEmptyNullCount  = "Cannot count nulls on an empty dataframe"
	MsgSeedOutOfRange  = "Seed must be within range [0, 4294967295]"
)

// InvalidInputError is returned when the arguments to an operation
// are rejected before any work is done.
type InvalidInputError struct {
	Operation string
	Message   string
}

func (obj *InvalidInputError) Error() string {
	return obj.Message
}

func (obj *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

func newInvalidInputError(operation, message string) error {
	return &InvalidInputError{Operation: operation, Message: message}
}
