package domain

import "fmt"

// ValidationError reports user input that cannot be used, typically a simulation field that is not a finite number
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "every field must be a number"
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, reason)
}

// NotFoundError reports a name missing from the reference dataset
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// PersistenceError wraps a failed read or write of stored state
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
