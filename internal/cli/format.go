package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pdxmph/tasks-tui/internal/date"
	"github.com/pdxmph/tasks-tui/internal/tasks"
)

var (
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Bold(true).Width(12)
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// dueLabel renders the due date with a marker for overdue and due-soon tasks.
func dueLabel(t tasks.Task, today date.Date) string {
	switch {
	case t.IsOverdue(today):
		return fmt.Sprintf("%s (%dd overdue)", t.DueDate, today.DaysUntil(t.DueDate)*-1)
	case t.IsDueSoon(today) && t.DueDate.Equal(today):
		return fmt.Sprintf("%s (today)", t.DueDate)
	case t.IsDueSoon(today):
		return fmt.Sprintf("%s (soon)", t.DueDate)
	}
	return t.DueDate.String()
}

func renderTable(list []tasks.Task, today date.Date) string {
	rows := make([][]string, 0, len(list))
	for _, t := range list {
		rows = append(rows, []string{
			shortID(t.ID),
			t.Title,
			dueLabel(t, today),
			string(t.Status),
			string(t.Priority),
			t.Project,
			strings.Join(t.Tags, ","),
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle }).
		Headers("ID", "TITLE", "DUE", "STATUS", "PRIORITY", "PROJECT", "TAGS").
		Rows(rows...).
		String()
}

func renderDetail(t tasks.Task, today date.Date) string {
	var b strings.Builder
	field := func(label, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(label+":"), value)
	}
	field("ID", t.ID)
	field("Title", t.Title)
	field("Status", string(t.Status))
	field("Priority", string(t.Priority))
	field("Due", dueLabel(t, today))
	field("Created", t.CreatedDate.String())
	field("Project", t.Project)
	field("Tags", strings.Join(t.Tags, ", "))
	field("Recurrence", string(t.Recurrence))
	if t.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", t.Description)
	}
	return b.String()
}
