package lenex

import "errors"

// Sentinel kinds for input errors.
var (
	ErrInputDir     = errors.New("input directory unavailable")
	ErrEmptyArchive = errors.New("archive holds no meet documents")
)
