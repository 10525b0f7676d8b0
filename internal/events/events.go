/*
Package events announces roster changes on Redis Pub/Sub.

The shell publishes one Event per successful mutation. Failed operations
publish nothing. The watch server subscribes to the same channel and fans
the payloads out to WebSocket clients.
*/
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type names the kind of change.
type Type string

const (
	StudentAdded Type = "student.added"
	GradeAdded   Type = "grade.added"
)

// Event is the JSON payload carried on the channel.
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	Session    string    `json:"session,omitempty"`
	StudentID  int       `json:"student_id"`
	Name       string    `json:"name,omitempty"`
	Grade      *float64  `json:"grade,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewStudentAdded describes a record created under id.
func NewStudentAdded(session string, id int, name string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       StudentAdded,
		Session:    session,
		StudentID:  id,
		Name:       name,
		OccurredAt: time.Now().UTC(),
	}
}

// NewGradeAdded describes grade appended to the record under id.
func NewGradeAdded(session string, id int, grade float64) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       GradeAdded,
		Session:    session,
		StudentID:  id,
		Grade:      &grade,
		OccurredAt: time.Now().UTC(),
	}
}

// Encode returns the wire form of e.
func (e Event) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode event %s: %w", e.ID, err)
	}
	return data, nil
}

// Decode parses a payload produced by Encode.
func Decode(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	return e, nil
}

// Publisher delivers events somewhere other processes can see them.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop drops every event. It is used when no Redis URL is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
