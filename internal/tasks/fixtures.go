package tasks

import (
	"fmt"

	"github.com/pdxmph/tasks-tui/internal/date"
)

// Fixtures returns a realistic sample collection with due dates relative to
// today, covering every status, priority and recurrence rule.
func Fixtures(today date.Date) []Task {
	return []Task{
		// Work
		{
			Title:       "Prepare quarterly planning deck",
			Description: "Pull numbers from the dashboard, three slides max.",
			DueDate:     today.AddDays(2),
			Status:      StatusInProgress,
			Project:     "Work",
			Priority:    PriorityHigh,
			Tags:        []string{"slides", "planning"},
			Recurrence:  RecurNone,
		},
		{
			Title:       "Review pull requests",
			DueDate:     today,
			Status:      StatusPending,
			Project:     "Work",
			Priority:    PriorityMedium,
			Tags:        []string{"code"},
			Recurrence:  RecurWeekdays,
		},
		{
			Title:       "Renew TLS certificates",
			Description: "Staging and production, then update the runbook.",
			DueDate:     today.AddDays(-3),
			Status:      StatusPending,
			Project:     "Work",
			Priority:    PriorityCritical,
			Tags:        []string{"ops", "security"},
			Recurrence:  RecurYearly,
		},
		{
			Title:      "Weekly status report",
			DueDate:    today.AddDays(4),
			Status:     StatusPending,
			Project:    "Work",
			Priority:   PriorityLow,
			Recurrence: RecurWeekly,
		},

		// Home
		{
			Title:      "Pay rent",
			DueDate:    today.AddDays(9),
			Status:     StatusPending,
			Project:    "Home",
			Priority:   PriorityHigh,
			Tags:       []string{"bills"},
			Recurrence: RecurMonthly,
		},
		{
			Title:      "Water the plants",
			DueDate:    today.AddDays(1),
			Status:     StatusPending,
			Project:    "Home",
			Priority:   PriorityLow,
			Tags:       []string{"chores"},
			Recurrence: RecurDaily,
		},
		{
			Title:       "Clean out the garage",
			Description: "Donate the old bike, recycle paint cans.",
			DueDate:     today.AddDays(5),
			Status:      StatusPending,
			Project:     "Home",
			Priority:    PriorityMedium,
			Tags:        []string{"chores", "weekend"},
			Recurrence:  RecurWeekends,
		},

		// Personal
		{
			Title:      "Book dentist appointment",
			DueDate:    today.AddDays(-1),
			Status:     StatusDone,
			Project:    "Personal",
			Priority:   PriorityMedium,
			Tags:       []string{"health"},
			Recurrence: RecurNone,
		},
		{
			Title:       "Read \"The Pragmatic Programmer\", ch. 3",
			Description: "Notes go in the reading log, one line per tip.",
			DueDate:     today.AddDays(14),
			Status:      StatusPending,
			Project:     "Personal",
			Priority:    PriorityLow,
			Tags:        []string{"reading"},
			Recurrence:  RecurNone,
		},
	}
}

// SeedFixtures adds the sample collection to s.
func SeedFixtures(s *Store) error {
	for _, t := range Fixtures(s.Today()) {
		if _, err := s.Add(t); err != nil {
			return fmt.Errorf("adding fixture %q: %w", t.Title, err)
		}
	}
	return nil
}
