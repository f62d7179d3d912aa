package regtext

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRegFile indicates a structural violation in the .reg text:
	// a missing header, a value line outside any [key] block, an orphan
	// continuation line, or invalid hex/dword data. Structural errors are
	// fatal because key boundaries downstream cannot be trusted.
	ErrMalformedRegFile = errors.New("regtext: malformed .reg file")
)

// malformedf wraps ErrMalformedRegFile with a line number and detail so the
// caller can both errors.Is-match and print a useful message.
func malformedf(line int, format string, args ...interface{}) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformedRegFile, line, fmt.Sprintf(format, args...))
}
