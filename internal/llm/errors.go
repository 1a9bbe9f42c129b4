package llm

import (
	"errors"
	"fmt"

	"github.com/sells-group/callqa-cli/internal/resilience"
)

// MalformedOutputError reports model output from which no JSON object
// could be extracted. It is transient: a retry usually yields parseable
// output.
type MalformedOutputError struct {
	Raw string
}

func (e *MalformedOutputError) Error() string {
	raw := e.Raw
	if len(raw) > 200 {
		raw = raw[:200] + "..."
	}
	return fmt.Sprintf("llm: no JSON object in model output: %q", raw)
}

// IsMalformedOutput reports whether the error chain contains a
// MalformedOutputError.
func IsMalformedOutput(err error) bool {
	var me *MalformedOutputError
	return errors.As(err, &me)
}

// IsAuthFailure reports whether the error is a fatal authentication or
// configuration failure. These abort the batch without retry.
func IsAuthFailure(err error) bool {
	return resilience.IsFatal(err)
}
