package arrowops

import "errors"

var (
	ErrUnsupportedDataType = errors.New("unsupported data type")
	ErrUnsupportedFormat   = errors.New("unsupported format")
	ErrSchemasNotEqual     = errors.New("schemas not equal")
	ErrNoDataSupplied      = errors.New("no data supplied")
	ErrNoHeader            = errors.New("no header row")
	ErrIndexOutOfBounds    = errors.New("index out of bounds")
)
