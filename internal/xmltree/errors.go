package xmltree

import "errors"

// Sentinel kinds for document parsing.
var (
	ErrEmptyDocument = errors.New("document has no root element")
	ErrTrailingData  = errors.New("unexpected content after document end")
)
