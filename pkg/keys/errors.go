package keys

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySet      = errors.New("keys: accessor set is empty")
	ErrModelMismatch = errors.New("keys: accessors disagree on record type")
	ErrNotInvocable  = errors.New("keys: accessor is not invocable on record type")
	ErrUnorderedKey  = errors.New("keys: value type has no natural ordering")
)

// ConfigError reports an ill-formed accessor or accessor set. It is only
// returned while an accessor, set or extractor is being built.
type ConfigError struct {
	Accessor string // accessor name, empty for set-level problems
	Position int    // position in the set, -1 when not applicable
	Err      error  // one of the Err* sentinels
	Detail   string
}

func (e *ConfigError) Error() string {
	msg := e.Err.Error()
	if e.Accessor != "" {
		if e.Position >= 0 {
			msg = fmt.Sprintf("%s: accessor #%d %q", msg, e.Position, e.Accessor)
		} else {
			msg = fmt.Sprintf("%s: accessor %q", msg, e.Accessor)
		}
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErr(name string, pos int, err error, format string, args ...any) *ConfigError {
	return &ConfigError{
		Accessor: name,
		Position: pos,
		Err:      err,
		Detail:   fmt.Sprintf(format, args...),
	}
}
