package assistant

import "fmt"

// InvocationError means the external model call gave no usable result
// after the retry budget was exhausted.
type InvocationError struct {
	Assistant string
	Model     string
	Attempts  int
	Err       error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("assistant %s: model %s failed after %d attempts: %v",
		e.Assistant, e.Model, e.Attempts, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// FormatError means the model answered but the payload was not valid
// JSON after fence stripping. Malformed output is often
// non-deterministic, so this is retried like a transient failure.
type FormatError struct {
	Err error
	Raw string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("assistant: response is not valid JSON: %v", e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
