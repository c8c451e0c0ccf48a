package wizard

import "errors"

var (
	// ErrUnknownField signals SetAnswer was called with an id the schema does
	// not declare. This is a programming error, not a user-facing condition.
	ErrUnknownField = errors.New("wizard: unknown field")
	// ErrKindMismatch signals an answer whose tag does not match the field's
	// declared kind.
	ErrKindMismatch = errors.New("wizard: answer kind does not match field kind")
	// ErrSubmitInFlight signals a submission attempt while one is already
	// outstanding.
	ErrSubmitInFlight = errors.New("wizard: submission already in flight")
	// ErrNotComplete signals a submission attempt before every required field
	// passes validation.
	ErrNotComplete = errors.New("wizard: questionnaire is not complete")
)
