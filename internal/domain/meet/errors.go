package meet

import "errors"

// Sentinel kinds for meet transformation errors.
var (
	ErrInvalidRelayCount = errors.New("invalid relay count")
	ErrNoRoot            = errors.New("document has no root")
)
