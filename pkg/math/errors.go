package math

import "errors"

// Matrix errors
var (
	ErrDimensionMismatch = errors.New("matrix dimensions do not match content")
	ErrNotSquare         = errors.New("matrix is not square")
	ErrSingularMatrix    = errors.New("matrix is singular")
	ErrIndexOutOfRange   = errors.New("matrix index out of range")
)
