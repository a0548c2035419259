package tasks

import (
	"time"

	"github.com/pdxmph/tasks-tui/internal/date"
)

// NextOccurrence advances due by one step of rule. RecurNone returns due unchanged.
func NextOccurrence(due date.Date, rule Recurrence) date.Date {
	switch rule {
	case RecurDaily:
		return due.AddDays(1)
	case RecurWeekly:
		return due.AddDays(7)
	case RecurMonthly:
		return due.AddMonths(1)
	case RecurYearly:
		return due.AddYears(1)
	case RecurWeekdays:
		return stepUntil(due, func(wd time.Weekday) bool {
			return wd != time.Saturday && wd != time.Sunday
		})
	case RecurWeekends:
		return stepUntil(due, func(wd time.Weekday) bool {
			return wd == time.Saturday || wd == time.Sunday
		})
	}
	return due
}

func stepUntil(d date.Date, ok func(time.Weekday) bool) date.Date {
	d = d.AddDays(1)
	for !ok(d.Weekday()) {
		d = d.AddDays(1)
	}
	return d
}

// rollover appends a pending successor for every completed recurring task
// and clears the rule on the completed one, so each task spawns at most one
// successor. It returns the number of successors created.
func (s *Store) rollover() int {
	today := s.Today()
	var spawned []Task
	for i := range s.tasks {
		done := &s.tasks[i]
		if !done.IsDone() || done.Recurrence == RecurNone || done.Recurrence == "" {
			continue
		}
		next := Task{
			ID:          s.newID(),
			Title:       done.Title,
			Description: done.Description,
			DueDate:     NextOccurrence(done.DueDate, done.Recurrence),
			CreatedDate: today,
			Status:      StatusPending,
			Project:     done.Project,
			Priority:    done.Priority,
			Tags:        append([]string(nil), done.Tags...),
			Recurrence:  done.Recurrence,
		}
		done.Recurrence = RecurNone
		spawned = append(spawned, next)
	}
	s.tasks = append(s.tasks, spawned...)
	return len(spawned)
}
