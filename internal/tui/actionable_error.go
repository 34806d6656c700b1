package tui

import chorederrors "github.com/chored-dev/chored/internal/errors"

// ActionableError is an error message paired with a next step for the user.
//
//	out.Error(tui.NewActionableError("Unknown task.", "Run 'chored tasks' to list available tasks."))
//	// ✗ Unknown task.
//	//   ▸ Try: Run 'chored tasks' to list available tasks.
type ActionableError struct {
	// Message is the primary error message.
	Message string

	// Suggestion is what the user can do about it. May be empty.
	Suggestion string

	// Context is appended to the message in parentheses when set.
	Context string
}

// NewActionableError creates an ActionableError.
func NewActionableError(msg, suggestion string) *ActionableError {
	return &ActionableError{Message: msg, Suggestion: suggestion}
}

// FromError maps err to its user-facing message and action. The raw error
// text becomes the context unless it is the message itself.
func FromError(err error) *ActionableError {
	if err == nil {
		return nil
	}
	msg, action := chorederrors.Actionable(err)
	ae := NewActionableError(msg, action)
	if detail := err.Error(); detail != msg {
		ae.Context = detail
	}
	return ae
}

// Error returns the message with its context, e.g. "Unknown task. (task not found: foo)".
func (e *ActionableError) Error() string {
	if e.Context != "" {
		return e.Message + " (" + e.Context + ")"
	}
	return e.Message
}

// WithContext sets the context and returns e for chaining.
func (e *ActionableError) WithContext(ctx string) *ActionableError {
	e.Context = ctx
	return e
}
