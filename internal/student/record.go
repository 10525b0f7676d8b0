/*
Package student holds a single learner's record: identity, grades and the
views rendered from them.

A Record is only ever mutated through AddGrade. Grades are validated on the
way in; nothing already stored is re-checked.
*/
package student

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// MinGrade and MaxGrade bound every stored grade (inclusive).
	MinGrade = 0.0
	MaxGrade = 100.0

	// NoGrades is rendered in place of an average when no grade was recorded.
	NoGrades = "No grades available."
)

// ErrInvalidGrade reports a grade that is non-numeric or outside [MinGrade, MaxGrade].
var ErrInvalidGrade = errors.New("invalid grade")

// Record is one student's identity and ordered grade list.
type Record struct {
	name   string
	id     int
	grades []float64
}

// New creates a record with no grades. Name and id are stored as given.
func New(name string, id int) *Record {
	return &Record{name: name, id: id}
}

// Name returns the student's name.
func (r *Record) Name() string { return r.name }

// ID returns the student's identifier.
func (r *Record) ID() int { return r.id }

// AddGrade appends value when it lies in [MinGrade, MaxGrade].
// Rejected values leave the record unchanged and return ErrInvalidGrade.
func (r *Record) AddGrade(value float64) error {
	if !ValidGrade(value) {
		return fmt.Errorf("%w: %s", ErrInvalidGrade, FormatGrade(value))
	}
	r.grades = append(r.grades, value)
	return nil
}

// Grades returns a copy of the grades in insertion order.
func (r *Record) Grades() []float64 {
	out := make([]float64, len(r.grades))
	copy(out, r.grades)
	return out
}

// AverageGrade returns the mean grade with two decimals, or NoGrades.
func (r *Record) AverageGrade() string {
	if len(r.grades) == 0 {
		return NoGrades
	}

	var sum float64
	for _, g := range r.grades {
		sum += g
	}
	return formatTwoDecimals(sum / float64(len(r.grades)))
}

// Details renders the record's identity followed by its average grade.
func (r *Record) Details() string {
	return FormatAcademicSummary(r)
}

// FormatIdentity renders "Name: <name>, ID: <id>".
func FormatIdentity(r *Record) string {
	return fmt.Sprintf("Name: %s, ID: %d", r.name, r.id)
}

// FormatAcademicSummary extends FormatIdentity with the average grade.
func FormatAcademicSummary(r *Record) string {
	return fmt.Sprintf("%s, Average Grade: %s", FormatIdentity(r), r.AverageGrade())
}

// ValidGrade reports whether value is a finite number in [MinGrade, MaxGrade].
func ValidGrade(value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	return value >= MinGrade && value <= MaxGrade
}

// ParseGrade coerces user input into a grade value. Surrounding whitespace is
// ignored; anything that is not a plain decimal number is ErrInvalidGrade.
// Range is not checked here, AddGrade does that.
func ParseGrade(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidGrade)
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidGrade, s)
	}
	return value, nil
}

// FormatGrade renders a grade the shortest way that round-trips (85, 92.5).
func FormatGrade(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// formatTwoDecimals rounds the shortest decimal form of v half-up, so 0.125
// renders as 0.13 while 0.1249999999 stays 0.12. v is never negative.
func formatTwoDecimals(v float64) string {
	whole, frac, _ := strings.Cut(strconv.FormatFloat(v, 'f', -1, 64), ".")
	frac += "000"

	cents, _ := strconv.ParseInt(whole+frac[:2], 10, 64)
	if frac[2] >= '5' {
		cents++
	}
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
