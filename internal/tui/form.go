package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pdxmph/tasks-tui/internal/tasks"
)

var fieldLabels = []string{
	"Title:       ",
	"Due:         ",
	"Project:     ",
	"Tags:        ",
	"Priority:    ",
	"Status:      ",
	"Recurrence:  ",
	"Description: ",
}

func isSelector(field int) bool {
	return field == FieldPriority || field == FieldStatus || field == FieldRecurrence
}

// openForm enters edit mode for t. A task without an id is a new task.
func (m Model) openForm(t tasks.Task) (tea.Model, tea.Cmd) {
	m.editMode = true
	m.editID = t.ID
	m.editField = FieldTitle
	m.editErr = ""

	m.editInputs[FieldTitle].SetValue(t.Title)
	m.editInputs[FieldDue].SetValue("")
	if !t.DueDate.IsZero() {
		m.editInputs[FieldDue].SetValue(t.DueDate.String())
	}
	m.editInputs[FieldProject].SetValue(t.Project)
	m.editInputs[FieldTags].SetValue(strings.Join(t.Tags, ", "))
	m.editDesc.SetValue(t.Description)

	m.editPrio = max(slices.Index(tasks.Priorities, t.Priority), 0)
	m.editStatus = max(slices.Index(tasks.Statuses, t.Status), 0)
	m.editRecur = max(slices.Index(tasks.Recurrences, t.Recurrence), 0)

	if m.width > 0 {
		w := min(m.width-30, 60)
		for i := range m.editInputs {
			m.editInputs[i].Width = w
		}
		m.editDesc.SetWidth(w)
	}

	for i := range m.editInputs {
		m.editInputs[i].Blur()
	}
	m.editDesc.Blur()
	m.editInputs[FieldTitle].Focus()
	return m, textinput.Blink
}

// focusField moves the form cursor to field
func (m Model) focusField(field int) (Model, tea.Cmd) {
	if m.editField == FieldDescription {
		m.editDesc.Blur()
	} else if !isSelector(m.editField) {
		m.editInputs[m.editField].Blur()
	}
	m.editField = field

	switch {
	case field == FieldDescription:
		return m, tea.Batch(m.editDesc.Focus(), textarea.Blink)
	case isSelector(field):
		return m, nil
	default:
		return m, tea.Batch(m.editInputs[field].Focus(), textinput.Blink)
	}
}

func (m Model) closeForm() Model {
	m.editMode = false
	m.editField = 0
	m.editErr = ""
	for i := range m.editInputs {
		m.editInputs[i].Blur()
	}
	m.editDesc.Blur()
	return m
}

// updateForm handles keys while the add/edit form is open
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closeForm(), nil

	case "ctrl+s":
		return m.saveForm()

	case "enter":
		if m.editField != FieldDescription {
			return m.saveForm()
		}

	case "tab":
		return m.focusField((m.editField + 1) % FieldCount)

	case "shift+tab":
		return m.focusField((m.editField + FieldCount - 1) % FieldCount)

	case "down":
		if m.editField != FieldDescription {
			return m.focusField((m.editField + 1) % FieldCount)
		}

	case "up":
		if m.editField != FieldDescription {
			return m.focusField((m.editField + FieldCount - 1) % FieldCount)
		}

	case "left", "right", " ":
		if isSelector(m.editField) {
			step := 1
			if msg.String() == "left" {
				step = -1
			}
			switch m.editField {
			case FieldPriority:
				m.editPrio = wrap(m.editPrio+step, len(tasks.Priorities))
			case FieldStatus:
				m.editStatus = wrap(m.editStatus+step, len(tasks.Statuses))
			case FieldRecurrence:
				m.editRecur = wrap(m.editRecur+step, len(tasks.Recurrences))
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch {
	case m.editField == FieldDescription:
		m.editDesc, cmd = m.editDesc.Update(msg)
	case !isSelector(m.editField):
		m.editInputs[m.editField], cmd = m.editInputs[m.editField].Update(msg)
	}
	return m, cmd
}

// saveForm validates the form and writes it to the store. An unparseable due
// date keeps the form open on the due field with the parser's message.
func (m Model) saveForm() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.editInputs[FieldTitle].Value())
	if title == "" {
		m.editErr = "Title must not be empty"
		return m.focusField(FieldTitle)
	}

	due, err := m.parser.Parse(m.editInputs[FieldDue].Value())
	if err != nil {
		m.editErr = err.Error()
		return m.focusField(FieldDue)
	}

	t := tasks.Task{
		ID:          m.editID,
		Title:       title,
		Description: m.editDesc.Value(),
		DueDate:     due,
		Status:      tasks.Statuses[m.editStatus],
		Project:     strings.TrimSpace(m.editInputs[FieldProject].Value()),
		Priority:    tasks.Priorities[m.editPrio],
		Tags:        tasks.ParseTags(m.editInputs[FieldTags].Value()),
		Recurrence:  tasks.Recurrences[m.editRecur],
	}

	if m.editID == "" {
		var added tasks.Task
		m = m.apply("add", func() (bool, error) {
			var err error
			added, err = m.store.Add(t)
			return true, err
		})
		m.notice = fmt.Sprintf("Added %q due %s", added.Title, added.DueDate)
		m.selected = m.indexOf(added.ID)
	} else {
		m = m.apply("edit", func() (bool, error) { return m.store.Update(t) })
		m.notice = fmt.Sprintf("Updated %q", t.Title)
		m.selected = m.indexOf(t.ID)
	}
	return m.closeForm(), nil
}

// indexOf returns the listing position of id, or the current selection if
// the task is filtered out
func (m Model) indexOf(id string) int {
	if i := slices.IndexFunc(m.filteredTasks(), func(t tasks.Task) bool { return t.ID == id }); i >= 0 {
		return i
	}
	return m.ensureValidSelection()
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// renderForm renders the add/edit overlay
func (m Model) renderForm() string {
	var lines []string
	if m.editID == "" {
		lines = append(lines, "New Task")
	} else {
		lines = append(lines, fmt.Sprintf("Edit Task: %s", m.editInputs[FieldTitle].Value()))
	}
	lines = append(lines, strings.Repeat("─", 40))
	lines = append(lines, "")

	for i, label := range fieldLabels {
		var fieldView string
		focused := i == m.editField

		switch {
		case isSelector(i):
			value := m.selectorValue(i)
			if focused {
				fieldView = label + selectedStyle.Render(fmt.Sprintf("< %s >", value))
			} else {
				fieldView = label + fmt.Sprintf("  %s  ", value)
			}
		case i == FieldDescription:
			if focused {
				fieldView = label + "\n" + m.editDesc.View()
			} else {
				value := m.editDesc.Value()
				if value == "" {
					value = labelStyle.Render(m.editDesc.Placeholder)
				}
				fieldView = label + strings.ReplaceAll(value, "\n", " ")
			}
		default:
			if focused {
				fieldView = label + m.editInputs[i].View()
			} else {
				value := m.editInputs[i].Value()
				if value == "" {
					value = labelStyle.Render(m.editInputs[i].Placeholder)
				}
				fieldView = label + value
			}
		}

		lines = append(lines, fieldView)
		if i == FieldDue && m.editErr != "" && focused {
			lines = append(lines, errorStyle.Render("  "+m.editErr))
		}
		lines = append(lines, "")
	}

	if m.editErr != "" && m.editField != FieldDue {
		lines = append(lines, errorStyle.Render(m.editErr))
	}
	lines = append(lines, "Tab/↓: next field • Shift+Tab/↑: previous • ←/→: change • Enter/Ctrl+S: save • Esc: cancel")

	return m.overlay(strings.Join(lines, "\n"), 70)
}

func (m Model) selectorValue(field int) string {
	switch field {
	case FieldPriority:
		return string(tasks.Priorities[m.editPrio])
	case FieldStatus:
		return string(tasks.Statuses[m.editStatus])
	case FieldRecurrence:
		return string(tasks.Recurrences[m.editRecur])
	}
	return ""
}

// overlay centers content in a bordered box on the screen
func (m Model) overlay(content string, width int) string {
	box := borderStyle.
		Padding(1).
		Background(lipgloss.Color("235"))
	if width > 0 {
		box = box.Width(width)
	}
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(box.Render(content))
}
