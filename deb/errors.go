package deb

import "fmt"

// ValidationError reports a mandatory control field that is missing or empty.
// It is always returned before any output file is created.
type ValidationError struct {
	Field ControlField
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("mandatory field %s is missing or empty", e.Field)
}

// FormatError reports a value that does not fit the binary or textual layout
// being produced, such as an unknown checksum algorithm name or an archive
// member name that exceeds the fixed header width.
type FormatError struct {
	What  string
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.What, e.Value)
}
