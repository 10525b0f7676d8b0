package events

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStudentAdded(t *testing.T) {
	e := NewStudentAdded("session-1", 101, "kingsley")

	_, err := uuid.Parse(e.ID)
	require.NoError(t, err)
	assert.Equal(t, StudentAdded, e.Type)
	assert.Equal(t, "session-1", e.Session)
	assert.Equal(t, 101, e.StudentID)
	assert.Equal(t, "kingsley", e.Name)
	assert.Nil(t, e.Grade)
	assert.False(t, e.OccurredAt.IsZero())
}

func TestGradeAddedRoundTrip(t *testing.T) {
	e := NewGradeAdded("session-1", 101, 87.5)

	data, err := e.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"grade.added"`)
	assert.Contains(t, string(data), `"grade":87.5`)
	assert.NotContains(t, string(data), `"name"`)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, GradeAdded, got.Type)
	require.NotNil(t, got.Grade)
	assert.Equal(t, 87.5, *got.Grade)
	assert.True(t, e.OccurredAt.Equal(got.OccurredAt))
}

func TestGradeZeroIsEncoded(t *testing.T) {
	data, err := NewGradeAdded("", 101, 0).Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"grade":0`)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), NewStudentAdded("", 1, "x")))
	assert.NoError(t, p.Close())
}

func TestDialRejectsBadURL(t *testing.T) {
	_, err := Dial(context.Background(), "not-a-url")
	assert.Error(t, err)
}
