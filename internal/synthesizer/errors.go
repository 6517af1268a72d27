package synthesizer

import "fmt"

// InputError reports input that cannot be analyzed, such as a row set that is
// empty after blank rows are dropped.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "invalid input: " + e.Reason
}

// ModelInvocationError reports a failed provider call: network failure,
// timeout, or a provider-side error. The run is over; callers re-trigger
// manually.
type ModelInvocationError struct {
	Err error
}

func (e *ModelInvocationError) Error() string {
	return fmt.Sprintf("model invocation failed: %v", e.Err)
}

func (e *ModelInvocationError) Unwrap() error { return e.Err }

// SchemaValidationError reports a model response that does not conform to the
// theme schema. The underlying parse error is surfaced verbatim; there is no
// repair attempt.
type SchemaValidationError struct {
	Err error
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("response failed schema validation: %v", e.Err)
}

func (e *SchemaValidationError) Unwrap() error { return e.Err }

// CitationIntegrityError reports a theme citing a row id that was never part
// of the input. Dangling citations are never silently accepted.
type CitationIntegrityError struct {
	Theme string
	RowID int
}

func (e *CitationIntegrityError) Error() string {
	return fmt.Sprintf("theme %q cites unknown row id %d", e.Theme, e.RowID)
}
