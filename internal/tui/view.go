package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pdxmph/tasks-tui/internal/tasks"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	switch {
	case m.warnMode:
		return m.renderWarning()
	case m.editMode:
		return m.renderForm()
	case m.deleteConfirmMode:
		return m.renderDeleteConfirmation()
	case m.statsMode:
		return m.renderStats()
	}

	// Calculate pane widths
	listWidth := m.width / 2
	detailWidth := m.width - listWidth - 4 // account for borders

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		borderStyle.Width(listWidth).Height(m.height-4).Render(m.renderList(listWidth, m.height-4)),
		borderStyle.Width(detailWidth).Height(m.height-4).Render(m.renderDetail(detailWidth)),
	)

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatus(), m.renderHelp())
}

// renderList renders the task list
func (m Model) renderList(width, height int) string {
	var lines []string

	if m.filterMode {
		lines = append(lines, m.filter.View())
		lines = append(lines, "")
		height -= 2
	}

	list := m.filteredTasks()
	today := m.store.Today()

	// Calculate visible range
	visibleHeight := height - 2 // account for header
	startIdx := 0
	if m.selected >= visibleHeight {
		startIdx = m.selected - visibleHeight + 1
	}

	header := fmt.Sprintf("Tasks (%d) by %s", len(list), m.sort)
	if indicators := m.filterIndicators(); len(indicators) > 0 {
		header += " [" + strings.Join(indicators, ", ") + "]"
	}
	lines = append(lines, header)
	lines = append(lines, strings.Repeat("─", max(width-2, 0)))

	for i := startIdx; i < len(list) && i < startIdx+visibleHeight; i++ {
		t := list[i]
		hint := hintFor(t, today)

		mark := " "
		if m.marked[t.ID] {
			mark = markedStyle.Render("+")
		}
		text := fmt.Sprintf("%s %s  %s", hint.marker(), t.DueDate, t.Title)
		if t.Project != "" {
			text += " " + labelStyle.Render("["+t.Project+"]")
		}

		if i == m.selected {
			lines = append(lines, mark+selectedStyle.Render(text))
		} else {
			lines = append(lines, mark+hint.style().Render(text))
		}
	}

	if len(list) == 0 {
		lines = append(lines, labelStyle.Render("No tasks. Press a to add one."))
	}

	return strings.Join(lines, "\n")
}

func (m Model) filterIndicators() []string {
	var indicators []string
	if m.statusFilter != "" {
		indicators = append(indicators, "status:"+string(m.statusFilter))
	}
	if m.priorityFilter != "" {
		indicators = append(indicators, "priority:"+string(m.priorityFilter))
	}
	if m.overdueFilter {
		indicators = append(indicators, "overdue")
	}
	if m.hideDone && m.statusFilter == "" {
		indicators = append(indicators, "hiding done")
	}
	if len(m.marked) > 0 {
		indicators = append(indicators, fmt.Sprintf("%d marked", len(m.marked)))
	}
	return indicators
}

// renderDetail renders the task detail view
func (m Model) renderDetail(width int) string {
	t, ok := m.current()
	if !ok {
		return "No task selected"
	}
	today := m.store.Today()

	var lines []string
	lines = append(lines, hintFor(t, today).style().Render(t.Title))
	lines = append(lines, strings.Repeat("─", max(width-2, 0)))
	lines = append(lines, "")

	due := t.DueDate.String()
	switch days := today.DaysUntil(t.DueDate); {
	case t.IsDone():
	case days < 0:
		due += fmt.Sprintf(" (%d days overdue)", -days)
	case days == 0:
		due += " (today)"
	case days == 1:
		due += " (tomorrow)"
	default:
		due += fmt.Sprintf(" (in %d days)", days)
	}

	lines = append(lines, fmt.Sprintf("Status: %s", t.Status))
	lines = append(lines, fmt.Sprintf("Priority: %s", t.Priority))
	lines = append(lines, fmt.Sprintf("Due: %s", due))
	if t.Project != "" {
		lines = append(lines, fmt.Sprintf("Project: %s", t.Project))
	}
	if len(t.Tags) > 0 {
		lines = append(lines, fmt.Sprintf("Tags: %s", strings.Join(t.Tags, ", ")))
	}
	if t.Recurrence != tasks.RecurNone {
		lines = append(lines, fmt.Sprintf("Repeats: %s", t.Recurrence))
	}
	lines = append(lines, labelStyle.Render(fmt.Sprintf("Created %s • %s", t.CreatedDate, t.ID)))
	lines = append(lines, "")

	if t.Description != "" {
		lines = append(lines, "Description:")
		for _, para := range strings.Split(t.Description, "\n") {
			lines = append(lines, wrapText(para, width-4)...)
		}
	}

	return strings.Join(lines, "\n")
}

// renderStatus renders the error or notice line
func (m Model) renderStatus() string {
	if m.err != nil {
		return errorStyle.Render(" Error: " + m.err.Error())
	}
	if m.notice != "" {
		return labelStyle.Render(" " + m.notice)
	}
	return ""
}

// renderHelp renders the help line
func (m Model) renderHelp() string {
	if m.filterMode {
		return " Type to filter • ↑/↓: navigate • Enter: confirm • Esc: cancel"
	}

	help := " j/k: navigate • /: filter • a: add • e: edit • space: status • x: mark • c: done • d: delete • u: undo"
	help += " • s: sort • f: status • p: priority • o: overdue • h: hide done • S: stats"

	if m.statusFilter != "" || m.priorityFilter != "" || m.overdueFilter || m.hideDone || m.filter.Value() != "" {
		help += " • C: clear all"
	}

	help += " • q: quit"
	return help
}

// renderStats renders the statistics overlay
func (m Model) renderStats() string {
	stats := m.store.GetTaskStatistics()

	var lines []string
	lines = append(lines, "Statistics")
	lines = append(lines, "")
	for _, key := range tasks.StatisticKeys {
		lines = append(lines, fmt.Sprintf("  %-14s %4d", key, stats[key]))
	}
	lines = append(lines, "")
	if projects := m.store.GetAllProjects(); len(projects) > 0 {
		lines = append(lines, "Projects: "+strings.Join(projects, ", "))
	}
	if tags := m.store.GetAllTags(); len(tags) > 0 {
		lines = append(lines, "Tags: "+strings.Join(tags, ", "))
	}
	lines = append(lines, "")
	lines = append(lines, "Press any key to close")

	return m.overlay(strings.Join(lines, "\n"), 0)
}

// renderDeleteConfirmation renders the delete prompt
func (m Model) renderDeleteConfirmation() string {
	prompt := fmt.Sprintf("Delete %d tasks? (y/n)", len(m.deleteIDs))
	if len(m.deleteIDs) == 1 {
		if t, ok := m.store.Find(m.deleteIDs[0]); ok {
			prompt = fmt.Sprintf("Delete '%s'? (y/n)", t.Title)
		}
	}

	width := 60
	height := 7

	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-4).
		Align(lipgloss.Center, lipgloss.Center).
		Render(prompt)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(width).
		Height(height).
		Render(content)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(box)
}

// renderWarning renders the blocking load-failure notice
func (m Model) renderWarning() string {
	lines := []string{
		errorStyle.Render("Your tasks could not be loaded"),
		"",
	}
	lines = append(lines, wrapText(m.store.LoadWarning().Error(), 60)...)
	lines = append(lines,
		"",
		"Continuing starts with an empty list. The first change",
		"you make will overwrite the task file.",
		"",
		"y: continue • q: quit and fix the file",
	)
	return m.overlay(strings.Join(lines, "\n"), 70)
}

// wrapText wraps text to fit within the specified width
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	currentLine := words[0]
	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}

// Run starts the interactive program on the alternate screen
func Run(store *tasks.Store, opts Options) error {
	p := tea.NewProgram(New(store, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
