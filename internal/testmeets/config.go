package testmeets

import "errors"

// Config holds the shape of a generated fixture set.
type Config struct {
	Files        int   // Number of meet files to write, one meet each
	Athletes     int   // Size of the athlete pool shared by every file
	Clubs        int   // Number of clubs the pool is spread over
	Seed         int64 // Same seed, same files
	ArchiveEvery int   // Every Nth file is written as a .lxf archive; 0 disables
}

// Defaults used by the generate command.
const (
	DefaultFiles    = 10
	DefaultAthletes = 200
	DefaultClubs    = 12
	DefaultSeed     = 1
)

// Manifest describes what a conversion of the generated files must produce.
type Manifest struct {
	Files        []string
	Meets        int
	Clubs        int // distinct club codes
	Athletes     int // distinct athlete ids
	Results      int // result rows after split expansion
	RelayResults int // results that must be excluded as relays
	Orphans      int // results referencing an event that does not exist
}

// Sentinel kinds for fixture errors.
var (
	ErrInvalidConfig = errors.New("invalid fixture config")
	ErrMismatch      = errors.New("output does not match manifest")
)
