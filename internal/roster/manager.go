/*
Package roster owns the collection of student records for one process.

The Manager is the only holder of *student.Record values; callers address
records by id and get back a human-readable outcome message plus an error
they can classify with errors.Is (ErrDuplicateID, ErrNotFound,
ErrInvalidGrade). The message is meant to be printed as is, whether the
operation succeeded or not.

A Manager is not safe for concurrent use.
*/
package roster

import (
	"fmt"
	"strings"

	"github.com/ldamasio/roster/internal/student"
)

// Manager keeps student records unique by id, in insertion order.
type Manager struct {
	students []*student.Record
}

// New returns an empty roster.
func New() *Manager {
	return &Manager{}
}

// AddStudent creates a record for name under id.
// An existing id is left untouched and ErrDuplicateID is returned.
func (m *Manager) AddStudent(name string, id int) (string, error) {
	if m.findStudent(id) != nil {
		err := duplicateID(id)
		return err.Message, err
	}

	m.students = append(m.students, student.New(name, id))
	return fmt.Sprintf("Student added: %s (ID: %d)", name, id), nil
}

// ViewStudentDetails renders the record stored under id.
func (m *Manager) ViewStudentDetails(id int) (string, error) {
	s := m.findStudent(id)
	if s == nil {
		err := notFound("ViewStudentDetails", id)
		return err.Message, err
	}
	return s.Details(), nil
}

// AddGradeToStudent appends grade to the record stored under id.
func (m *Manager) AddGradeToStudent(id int, grade float64) (string, error) {
	s := m.findStudent(id)
	if s == nil {
		err := notFound("AddGradeToStudent", id)
		return err.Message, err
	}
	return addGrade(s, grade)
}

// AddGradeToStudentInput is AddGradeToStudent for raw user input and also
// returns the parsed grade. The id is resolved first, so an unknown id reports
// ErrNotFound even when the grade text is not a number.
func (m *Manager) AddGradeToStudentInput(id int, raw string) (float64, string, error) {
	s := m.findStudent(id)
	if s == nil {
		err := notFound("AddGradeToStudent", id)
		return 0, err.Message, err
	}

	grade, perr := student.ParseGrade(raw)
	if perr != nil {
		err := invalidGrade(id, strings.TrimSpace(raw), perr)
		return 0, err.Message, err
	}
	msg, err := addGrade(s, grade)
	if err != nil {
		return 0, msg, err
	}
	return grade, msg, nil
}

// Grades returns a copy of the grades stored under id.
func (m *Manager) Grades(id int) ([]float64, error) {
	s := m.findStudent(id)
	if s == nil {
		return nil, notFound("Grades", id)
	}
	return s.Grades(), nil
}

// Len reports how many records the roster holds.
func (m *Manager) Len() int {
	return len(m.students)
}

// IDs returns every stored id in insertion order.
func (m *Manager) IDs() []int {
	ids := make([]int, 0, len(m.students))
	for _, s := range m.students {
		ids = append(ids, s.ID())
	}
	return ids
}

func addGrade(s *student.Record, grade float64) (string, error) {
	formatted := student.FormatGrade(grade)
	if err := s.AddGrade(grade); err != nil {
		rerr := invalidGrade(s.ID(), formatted, err)
		return rerr.Message, rerr
	}
	return fmt.Sprintf("Grade %s added to student ID %d.", formatted, s.ID()), nil
}

// findStudent scans records in insertion order.
func (m *Manager) findStudent(id int) *student.Record {
	for _, s := range m.students {
		if s.ID() == id {
			return s
		}
	}
	return nil
}
