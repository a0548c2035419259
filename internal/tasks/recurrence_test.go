package tasks

import (
	"bytes"
	"log"
	"strconv"
	"testing"
	"time"

	"github.com/pdxmph/tasks-tui/internal/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name string
		due  date.Date
		rule Recurrence
		want date.Date
	}{
		{"none", date.New(2024, 1, 1), RecurNone, date.New(2024, 1, 1)},
		{"daily", date.New(2024, 1, 31), RecurDaily, date.New(2024, 2, 1)},
		{"weekly", date.New(2024, 1, 1), RecurWeekly, date.New(2024, 1, 8)},
		{"monthly clamps", date.New(2024, 1, 31), RecurMonthly, date.New(2024, 2, 29)},
		{"monthly year end", date.New(2024, 12, 15), RecurMonthly, date.New(2025, 1, 15)},
		{"yearly leap day", date.New(2024, 2, 29), RecurYearly, date.New(2025, 2, 28)},
		{"weekdays from friday", date.New(2024, 1, 19), RecurWeekdays, date.New(2024, 1, 22)},
		{"weekdays from monday", date.New(2024, 1, 15), RecurWeekdays, date.New(2024, 1, 16)},
		{"weekends from friday", date.New(2024, 1, 19), RecurWeekends, date.New(2024, 1, 20)},
		{"weekends from saturday", date.New(2024, 1, 20), RecurWeekends, date.New(2024, 1, 21)},
		{"weekends from sunday", date.New(2024, 1, 21), RecurWeekends, date.New(2024, 1, 27)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextOccurrence(tt.due, tt.rule))
		})
	}
}

func newRolloverStore(t *testing.T, backend *MemoryBackend) *Store {
	t.Helper()
	n := 0
	s := NewStore(backend,
		WithClock(func() time.Time { return time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local) }),
		WithLogger(log.New(&bytes.Buffer{}, "", 0)),
		WithIDGenerator(func() string {
			n++
			return "new-" + strconv.Itoa(n)
		}),
	)
	require.NoError(t, s.Load())
	return s
}

func TestRolloverOnLoad(t *testing.T) {
	backend := NewMemoryBackend(Task{
		ID:          "orig",
		Title:       "Take out bins",
		Description: "green one too",
		DueDate:     date.New(2024, 1, 1),
		CreatedDate: date.New(2023, 12, 1),
		Status:      StatusDone,
		Project:     "Home",
		Priority:    PriorityHigh,
		Tags:        []string{"chores"},
		Recurrence:  RecurWeekly,
	})

	s := newRolloverStore(t, backend)

	require.Equal(t, 2, s.Len())
	orig, ok := s.Find("orig")
	require.True(t, ok)
	assert.Equal(t, RecurNone, orig.Recurrence)
	assert.Equal(t, StatusDone, orig.Status)

	all := s.All()
	next := all[1]
	assert.Equal(t, "new-1", next.ID)
	assert.Equal(t, date.New(2024, 1, 8), next.DueDate)
	assert.Equal(t, date.New(2024, 1, 10), next.CreatedDate)
	assert.Equal(t, StatusPending, next.Status)
	assert.Equal(t, RecurWeekly, next.Recurrence)
	assert.Equal(t, "Take out bins", next.Title)
	assert.Equal(t, "green one too", next.Description)
	assert.Equal(t, "Home", next.Project)
	assert.Equal(t, PriorityHigh, next.Priority)
	assert.Equal(t, []string{"chores"}, next.Tags)

	assert.Equal(t, 1, backend.Saves(), "rollover is persisted")
}

func TestRolloverIsIdempotent(t *testing.T) {
	backend := NewMemoryBackend(Task{
		ID:         "orig",
		Title:      "Stretch",
		DueDate:    date.New(2024, 1, 9),
		Status:     StatusDone,
		Priority:   PriorityLow,
		Recurrence: RecurDaily,
	})

	first := newRolloverStore(t, backend)
	require.Equal(t, 2, first.Len())

	// a second session over the saved data spawns nothing new
	second := newRolloverStore(t, backend)
	assert.Equal(t, 2, second.Len())
	assert.Equal(t, 1, backend.Saves())
}

func TestRolloverSkipsPendingAndNonRecurring(t *testing.T) {
	backend := NewMemoryBackend(
		Task{ID: "a", Title: "pending recurring", Status: StatusPending, Priority: PriorityLow, Recurrence: RecurDaily},
		Task{ID: "b", Title: "done once", Status: StatusDone, Priority: PriorityLow, Recurrence: RecurNone},
	)

	s := newRolloverStore(t, backend)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 0, backend.Saves())
}
