package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pdxmph/tasks-tui/internal/date"
	"github.com/pdxmph/tasks-tui/internal/tasks"
)

// displayHint is how a task should stand out in a listing.
type displayHint int

const (
	hintNone displayHint = iota
	hintDone
	hintOverdue
	hintDueSoon
	hintCritical
)

// hintFor picks the single most urgent hint for t. Completion wins over
// everything, then overdue, then critical priority, then due soon.
func hintFor(t tasks.Task, today date.Date) displayHint {
	switch {
	case t.IsDone():
		return hintDone
	case t.IsOverdue(today):
		return hintOverdue
	case t.Priority == tasks.PriorityCritical:
		return hintCritical
	case t.IsDueSoon(today):
		return hintDueSoon
	}
	return hintNone
}

var hintStyles = map[displayHint]lipgloss.Style{
	hintNone:     lipgloss.NewStyle(),
	hintDone:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true),
	hintOverdue:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	hintDueSoon:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	hintCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true),
}

var hintMarkers = map[displayHint]string{
	hintNone:     " ",
	hintDone:     "✓",
	hintOverdue:  "*",
	hintDueSoon:  "•",
	hintCritical: "!",
}

func (h displayHint) style() lipgloss.Style {
	return hintStyles[h]
}

func (h displayHint) marker() string {
	return hintMarkers[h]
}
