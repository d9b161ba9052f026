package repository

import "errors"

// Sentinel kinds for sink errors.
var (
	ErrWriteTable = errors.New("write table")
	ErrOpenDB     = errors.New("open database")
)
