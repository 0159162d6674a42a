package dataset

import "errors"

var (
	// ErrRawDataNotFound is returned when the raw dataset file is absent.
	ErrRawDataNotFound = errors.New("raw dataset not found")

	// ErrSymbolNotFound is returned when no row matches a requested symbol.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrIndexOutOfRange is returned for a row index outside [0, len).
	ErrIndexOutOfRange = errors.New("index out of range")
)
