package expr

import (
	"errors"
	"fmt"

	"talc/lib/errs"
)

// Signal is the non-local exit produced by break and end. It travels the
// ordinary error channel and carries the value the loop or sequence
// returns once it intercepts the signal; a signal that escapes to the top
// level is an ordinary failure with its reserved code.
type Signal struct {
	Code  errs.Code
	Value Expr
}

func NewBreak(value Expr) *Signal {
	return &Signal{Code: errs.UnhandledBreak, Value: value}
}

func NewEnd(value Expr) *Signal {
	return &Signal{Code: errs.UnhandledEnd, Value: value}
}

func (s *Signal) Error() string {
	switch s.Code {
	case errs.UnhandledBreak:
		return fmt.Sprintf("%s:%d: unhandled break", s.Code.Category(), s.Code)
	default:
		return fmt.Sprintf("%s:%d: unhandled end", s.Code.Category(), s.Code)
	}
}

func (s *Signal) ErrCode() errs.Code { return s.Code }

var _ errs.Coded = (*Signal)(nil)

// AsSignal extracts a control-flow signal from an error chain.
func AsSignal(err error) (*Signal, bool) {
	var s *Signal
	if errors.As(err, &s) {
		return s, true
	}
	return nil, false
}
