package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ldamasio/roster/internal/roster"
)

const (
	green = "\033[32m"
	red   = "\033[31m"
	reset = "\033[0m"
)

// result is one command outcome, printed as a line of text or a JSON object.
type result struct {
	Command string `json:"command"`
	Status  string `json:"status"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

func newResult(command, message string, err error) result {
	r := result{Command: command, Status: "success", Message: message}
	if err != nil {
		r.Status = "error"
		r.Kind = errorKind(err)
	}
	return r
}

// errorKind names the failure for machine consumers.
func errorKind(err error) string {
	switch {
	case errors.Is(err, roster.ErrDuplicateID):
		return "duplicate_id"
	case errors.Is(err, roster.ErrNotFound):
		return "not_found"
	case errors.Is(err, roster.ErrInvalidGrade):
		return "invalid_grade"
	case errors.Is(err, errInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}

// printResult writes r as JSON, or as its message colored by status.
func printResult(w io.Writer, r result, asJSON, color bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(r)
	}
	if !color {
		_, err := fmt.Fprintln(w, r.Message)
		return err
	}

	c := green
	if r.Status != "success" {
		c = red
	}
	_, err := fmt.Fprintf(w, "%s%s%s\n", c, r.Message, reset)
	return err
}

// outputJSON is a helper function to output data in JSON format
func outputJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
