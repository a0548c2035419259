package tasks

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pdxmph/tasks-tui/internal/date"
)

// Filter narrows a task list. Zero-valued fields do not filter.
type Filter struct {
	Status      Status
	Priority    Priority
	Project     string
	Tag         string
	Text        string
	OverdueOnly bool
	DueSoonOnly bool
	HideDone    bool
}

// IsZero reports whether the filter lets everything through.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Apply returns the tasks matching every set field, keeping input order.
func (f Filter) Apply(list []Task, today date.Date) []Task {
	needle := strings.ToLower(f.Text)
	var out []Task
	for _, t := range list {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.HideDone && t.IsDone() {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		if f.Project != "" && !strings.EqualFold(t.Project, f.Project) {
			continue
		}
		if f.Tag != "" && !t.HasTag(f.Tag) {
			continue
		}
		if f.OverdueOnly && !t.IsOverdue(today) {
			continue
		}
		if f.DueSoonOnly && !t.IsDueSoon(today) {
			continue
		}
		if needle != "" && !matches(t, needle) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SortKey names a field a listing can be ordered by.
type SortKey string

const (
	SortByDue      SortKey = "due"
	SortByPriority SortKey = "priority"
	SortByTitle    SortKey = "title"
	SortByCreated  SortKey = "created"
	SortByStatus   SortKey = "status"
	SortByProject  SortKey = "project"
)

// SortKeys lists the keys in the order SortState.Next cycles through them.
var SortKeys = []SortKey{SortByDue, SortByPriority, SortByTitle, SortByCreated, SortByStatus, SortByProject}

// ParseSortKey matches s against the sort key names, ignoring case.
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range SortKeys {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q (want one of %v)", s, SortKeys)
}

// SortState is the ordering a listing is currently shown in.
type SortState struct {
	Key        SortKey
	Descending bool
}

// DefaultSort orders by due date, earliest first.
var DefaultSort = SortState{Key: SortByDue}

// Next returns the following state: ascending then descending for the same
// key, then on to the next key.
func (s SortState) Next() SortState {
	if !s.Descending {
		s.Descending = true
		return s
	}
	i := slices.Index(SortKeys, s.Key)
	return SortState{Key: SortKeys[(i+1)%len(SortKeys)]}
}

func (s SortState) String() string {
	dir := "asc"
	if s.Descending {
		dir = "desc"
	}
	return fmt.Sprintf("%s %s", s.Key, dir)
}

// Sort returns a sorted copy of list. Ties fall back to due date, then title.
func Sort(list []Task, state SortState) []Task {
	out := slices.Clone(list)
	slices.SortStableFunc(out, func(a, b Task) int {
		c := compareBy(state.Key, a, b)
		if state.Descending {
			c = -c
		}
		if c != 0 {
			return c
		}
		if c = a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	})
	return out
}

func compareBy(key SortKey, a, b Task) int {
	switch key {
	case SortByPriority:
		return a.Priority.Rank() - b.Priority.Rank()
	case SortByTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case SortByCreated:
		return a.CreatedDate.Compare(b.CreatedDate)
	case SortByStatus:
		return slices.Index(Statuses, a.Status) - slices.Index(Statuses, b.Status)
	case SortByProject:
		return strings.Compare(strings.ToLower(a.Project), strings.ToLower(b.Project))
	default:
		return a.DueDate.Compare(b.DueDate)
	}
}
