package xmldoc

import "errors"

// Sentinel errors shared by every layer of the workspace. Callers match them
// with errors.Is; producers wrap them with fmt.Errorf("...: %w", ErrX).
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIO              = errors.New("i/o error")
	ErrNetwork         = errors.New("network error")
	ErrFormat          = errors.New("format error")
	ErrDuplicate       = errors.New("duplicate entry")
)
