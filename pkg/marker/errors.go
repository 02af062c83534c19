package marker

import (
	"fmt"
	"strings"
)

// DirectiveError reports a malformed numeric argument inside a single
// directive line. It is the only kind of failure Parse produces: every
// other malformed directive degrades silently.
type DirectiveError struct {
	Line    int
	Field   string
	Message string
}

func (e *DirectiveError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// DirectiveErrors aggregates every failing directive line of one parse
// so a multi-line marker reports all its bad numbers at once.
type DirectiveErrors []DirectiveError

func (errs DirectiveErrors) Error() string {
	if len(errs) == 0 {
		return "marker parse failed"
	}
	messages := make([]string, len(errs))
	for i := range errs {
		messages[i] = errs[i].Error()
	}
	return strings.Join(messages, "; ")
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (errs DirectiveErrors) Unwrap() []error {
	unwrapped := make([]error, len(errs))
	for i := range errs {
		unwrapped[i] = &errs[i]
	}
	return unwrapped
}
