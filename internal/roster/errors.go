package roster

import (
	"errors"
	"fmt"

	"github.com/ldamasio/roster/internal/student"
)

// Outcome kinds. Every failed Manager operation wraps exactly one of these.
var (
	ErrDuplicateID  = errors.New("duplicate id")
	ErrNotFound     = errors.New("student not found")
	ErrInvalidGrade = student.ErrInvalidGrade
)

// Error describes a rejected roster operation.
type Error struct {
	Op      string // e.g. "AddStudent", "AddGradeToStudent"
	ID      int
	Kind    error // one of the Err* kinds above
	Message string
	Err     error // underlying cause, optional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("roster.%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("roster.%s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying cause, falling back to the kind.
func (e *Error) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is matches the kind as well as the underlying cause.
func (e *Error) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	return e.Err != nil && errors.Is(e.Err, target)
}

func duplicateID(id int) *Error {
	return &Error{
		Op:      "AddStudent",
		ID:      id,
		Kind:    ErrDuplicateID,
		Message: fmt.Sprintf("A student with ID %d already exists.", id),
	}
}

func notFound(op string, id int) *Error {
	return &Error{
		Op:      op,
		ID:      id,
		Kind:    ErrNotFound,
		Message: fmt.Sprintf("Error: Student with ID %d not found.", id),
	}
}

func invalidGrade(id int, grade string, cause error) *Error {
	return &Error{
		Op:      "AddGradeToStudent",
		ID:      id,
		Kind:    ErrInvalidGrade,
		Message: fmt.Sprintf("Invalid grade: %s. Please provide a number between 0 and 100.", grade),
		Err:     cause,
	}
}
