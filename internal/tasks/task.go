package tasks

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pdxmph/tasks-tui/internal/date"
)

// Status is the workflow state of a task. Any transition is allowed.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
)

// Statuses lists every status in workflow order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusDone}

// Priority orders tasks from Low to Critical.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// Rank returns 0 for Low up to 3 for Critical, -1 for unknown values.
func (p Priority) Rank() int {
	return slices.Index(Priorities, p)
}

// Recurrence is the rule used to generate a successor once a task is done.
type Recurrence string

const (
	RecurNone     Recurrence = "None"
	RecurDaily    Recurrence = "Daily"
	RecurWeekly   Recurrence = "Weekly"
	RecurMonthly  Recurrence = "Monthly"
	RecurYearly   Recurrence = "Yearly"
	RecurWeekdays Recurrence = "Weekdays"
	RecurWeekends Recurrence = "Weekends"
)

// Recurrences lists every recurrence rule.
var Recurrences = []Recurrence{
	RecurNone, RecurDaily, RecurWeekly, RecurMonthly, RecurYearly, RecurWeekdays, RecurWeekends,
}

// Task is a single trackable work item.
type Task struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	DueDate     date.Date  `json:"dueDate" yaml:"dueDate"`
	CreatedDate date.Date  `json:"createdDate" yaml:"createdDate"`
	Status      Status     `json:"status" yaml:"status"`
	Project     string     `json:"project" yaml:"project"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	Tags        []string   `json:"tags" yaml:"tags"`
	Recurrence  Recurrence `json:"recurrence" yaml:"recurrence"`
}

// IsDone reports whether the task is completed.
func (t Task) IsDone() bool {
	return t.Status == StatusDone
}

// IsOverdue reports whether an unfinished task is past its due date.
func (t Task) IsOverdue(today date.Date) bool {
	return !t.IsDone() && t.DueDate.Before(today)
}

// IsDueSoon reports whether an unfinished task is due within the next two days.
func (t Task) IsDueSoon(today date.Date) bool {
	return !t.IsDone() && !t.IsOverdue(today) && !t.DueDate.After(today.AddDays(2))
}

// HasTag reports whether the task carries tag, ignoring case.
func (t Task) HasTag(tag string) bool {
	for _, tt := range t.Tags {
		if strings.EqualFold(tt, tag) {
			return true
		}
	}
	return false
}

// clone returns a copy that shares no slices with t.
func (t Task) clone() Task {
	t.Tags = slices.Clone(t.Tags)
	return t
}

// withDefaults fills enum fields a caller left empty.
func (t Task) withDefaults() Task {
	if t.Status == "" {
		t.Status = StatusPending
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Recurrence == "" {
		t.Recurrence = RecurNone
	}
	return t
}

// ParseStatus matches s against the status names, ignoring case, spaces and
// dashes ("in progress", "in-progress" and "InProgress" are equivalent).
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if normalize(s) == normalize(string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// ParsePriority matches s against the priority names, ignoring case.
func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities {
		if normalize(s) == normalize(string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// ParseRecurrence matches s against the recurrence names, ignoring case.
func ParseRecurrence(s string) (Recurrence, error) {
	if strings.TrimSpace(s) == "" {
		return RecurNone, nil
	}
	for _, r := range Recurrences {
		if normalize(s) == normalize(string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown recurrence %q", s)
}

// ParseTags splits a comma separated tag list, dropping blanks and duplicates.
func ParseTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" || slices.Contains(tags, tag) {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// Validate checks that a stored record has an id and known enum values.
func (t Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task %q has no id", t.Title)
	}
	if !slices.Contains(Statuses, t.Status) {
		return fmt.Errorf("task %s: unknown status %q", t.ID, t.Status)
	}
	if !slices.Contains(Priorities, t.Priority) {
		return fmt.Errorf("task %s: unknown priority %q", t.ID, t.Priority)
	}
	if !slices.Contains(Recurrences, t.Recurrence) {
		return fmt.Errorf("task %s: unknown recurrence %q", t.ID, t.Recurrence)
	}
	return nil
}
