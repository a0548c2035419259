package tui

import (
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pdxmph/tasks-tui/internal/date"
	"github.com/pdxmph/tasks-tui/internal/tasks"
)

// Model represents the main application state
type Model struct {
	store    *tasks.Store
	parser   *date.Parser
	selected int
	width    int
	height   int

	filterMode bool
	filter     textinput.Model
	err        error
	notice     string

	// Listing state
	sort           tasks.SortState
	statusFilter   tasks.Status
	priorityFilter tasks.Priority
	overdueFilter  bool
	hideDone       bool

	// Multi-select for bulk done/delete
	marked map[string]bool

	// Add/edit form
	editMode   bool
	editID     string // empty when adding
	editField  int
	editInputs []textinput.Model
	editDesc   textarea.Model
	editPrio   int
	editStatus int
	editRecur  int
	editErr    string

	// Delete confirmation mode
	deleteConfirmMode bool
	deleteIDs         []string

	statsMode bool

	// Set when the task file could not be loaded; blocks until acknowledged
	warnMode bool
}

// Form field indices
const (
	FieldTitle = iota
	FieldDue
	FieldProject
	FieldTags
	FieldPriority
	FieldStatus
	FieldRecurrence
	FieldDescription
	FieldCount // Total number of fields
)

// Options configures the initial listing.
type Options struct {
	Sort     tasks.SortState
	HideDone bool
	Clock    func() time.Time
}

// Styles
var (
	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230"))

	markedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// New creates a new application model on a loaded store
func New(store *tasks.Store, opts Options) Model {
	if opts.Sort.Key == "" {
		opts.Sort = tasks.DefaultSort
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	// Setup filter input
	ti := textinput.New()
	ti.Placeholder = "Filter tasks..."
	ti.Width = 30
	ti.CharLimit = 50
	ti.Prompt = "> "
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230"))
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	// Setup description input
	ta := textarea.New()
	ta.Placeholder = "Description..."
	ta.SetHeight(4)
	ta.SetWidth(50)
	ta.CharLimit = 2000
	ta.ShowLineNumbers = false

	// Setup form inputs; selector fields keep an unused entry
	editInputs := make([]textinput.Model, FieldCount)
	for i := range editInputs {
		editInputs[i] = textinput.New()
		editInputs[i].Width = 40
		editInputs[i].CharLimit = 200

		switch i {
		case FieldTitle:
			editInputs[i].Placeholder = "Title"
		case FieldDue:
			editInputs[i].Placeholder = "today, friday, in 2 weeks, 2024-03-01"
		case FieldProject:
			editInputs[i].Placeholder = "Project"
		case FieldTags:
			editInputs[i].Placeholder = "tag, another tag"
		}
	}

	return Model{
		store:      store,
		parser:     date.NewParser(date.WithClock(opts.Clock)),
		filter:     ti,
		sort:       opts.Sort,
		hideDone:   opts.HideDone,
		marked:     make(map[string]bool),
		editInputs: editInputs,
		editDesc:   ta,
		warnMode:   store.LoadWarning() != nil,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.width > 0 {
			listWidth := m.width / 2
			m.filter.Width = listWidth - 4 // account for borders and padding
		}
		return m, nil

	case tea.KeyMsg:
		if m.warnMode {
			switch msg.String() {
			case "y", "Y":
				m.warnMode = false
			case "q", "ctrl+c":
				return m, tea.Quit
			}
			return m, nil
		}

		if m.deleteConfirmMode {
			if msg.String() == "y" || msg.String() == "Y" {
				m = m.apply("delete", func() (bool, error) { return m.store.BulkDelete(m.deleteIDs) })
				if m.err == nil {
					m.notice = fmt.Sprintf("Deleted %d task(s) • u: undo", len(m.deleteIDs))
				}
				m.marked = make(map[string]bool)
			}
			// Any other key cancels
			m.deleteConfirmMode = false
			m.deleteIDs = nil
			m.selected = m.ensureValidSelection()
			return m, nil
		}

		if m.statsMode {
			m.statsMode = false
			return m, nil
		}

		if m.editMode {
			return m.updateForm(msg)
		}

		if m.filterMode {
			switch msg.String() {
			case "esc":
				m.filterMode = false
				m.filter.Reset()
				m.selected = m.ensureValidSelection()
				return m, nil
			case "enter":
				m.filterMode = false
				m.filter.Blur()
				m.selected = m.ensureValidSelection()
				return m, nil
			case "up":
				if m.selected > 0 {
					m.selected--
				}
				return m, nil
			case "down":
				if m.selected < len(m.filteredTasks())-1 {
					m.selected++
				}
				return m, nil
			}

			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.selected = m.ensureValidSelection()
			return m, cmd
		}

		return m.updateList(msg)
	}

	return m, nil
}

// updateList handles keys in the normal listing mode
func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		if m.selected < len(m.filteredTasks())-1 {
			m.selected++
		}

	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}

	case "g", "home":
		m.selected = 0

	case "G", "end":
		if n := len(m.filteredTasks()); n > 0 {
			m.selected = n - 1
		}

	case "/":
		m.filterMode = true
		m.filter.Reset()
		m.filter.Focus()
		return m, textinput.Blink

	case "esc":
		m.err = nil
		if m.filter.Value() != "" {
			m.filter.Reset()
			m.selected = m.ensureValidSelection()
		}

	case "s":
		m.sort = m.sort.Next()
		m.notice = "Sorted by " + m.sort.String()

	case "f":
		m.statusFilter = cycle(append([]tasks.Status{""}, tasks.Statuses...), m.statusFilter)
		m.selected = m.ensureValidSelection()

	case "p":
		m.priorityFilter = cycle(append([]tasks.Priority{""}, tasks.Priorities...), m.priorityFilter)
		m.selected = m.ensureValidSelection()

	case "o":
		m.overdueFilter = !m.overdueFilter
		m.selected = m.ensureValidSelection()

	case "h":
		m.hideDone = !m.hideDone
		m.selected = m.ensureValidSelection()

	case "C":
		m.statusFilter = ""
		m.priorityFilter = ""
		m.overdueFilter = false
		m.hideDone = false
		m.filter.Reset()
		m.selected = m.ensureValidSelection()

	case "a":
		return m.openForm(tasks.Task{Priority: tasks.PriorityMedium})

	case "e":
		if t, ok := m.current(); ok {
			return m.openForm(t)
		}

	case " ":
		if t, ok := m.current(); ok {
			t.Status = cycle(tasks.Statuses, t.Status)
			m = m.apply("status change", func() (bool, error) { return m.store.Update(t) })
		}

	case "x":
		if t, ok := m.current(); ok {
			if m.marked[t.ID] {
				delete(m.marked, t.ID)
			} else {
				m.marked[t.ID] = true
			}
			if m.selected < len(m.filteredTasks())-1 {
				m.selected++
			}
		}

	case "c":
		ids := m.targetIDs()
		if len(ids) > 0 {
			m = m.apply("completion", func() (bool, error) { return m.store.BulkUpdateStatus(ids, tasks.StatusDone) })
			if m.err == nil {
				m.notice = fmt.Sprintf("Completed %d task(s)", len(ids))
			}
			m.marked = make(map[string]bool)
		}

	case "d":
		ids := m.targetIDs()
		if len(ids) > 0 {
			m.deleteConfirmMode = true
			m.deleteIDs = ids
		}

	case "u":
		restored := false
		m = m.apply("undo", func() (bool, error) {
			ok, err := m.store.UndoDelete()
			restored = ok
			return ok, err
		})
		if !restored && m.err == nil {
			m.notice = "Nothing to undo"
		}

	case "S":
		m.statsMode = true
	}

	return m, nil
}

// apply runs a store mutation and keeps the selection in bounds. A failed
// save leaves the change in memory and shows the error in the status line.
func (m Model) apply(op string, mutate func() (bool, error)) Model {
	m.err = nil
	if _, err := mutate(); err != nil {
		m.err = fmt.Errorf("%s: %w", op, err)
	}
	m.selected = m.ensureValidSelection()
	return m
}

// targetIDs returns the marked tasks that are still visible, or the selected
// task when nothing is marked.
func (m Model) targetIDs() []string {
	var ids []string
	for _, t := range m.filteredTasks() {
		if m.marked[t.ID] {
			ids = append(ids, t.ID)
		}
	}
	if len(ids) > 0 {
		return ids
	}
	if t, ok := m.current(); ok {
		return []string{t.ID}
	}
	return nil
}

// current returns the selected task
func (m Model) current() (tasks.Task, bool) {
	list := m.filteredTasks()
	if len(list) == 0 || m.selected >= len(list) {
		return tasks.Task{}, false
	}
	return list[m.selected], true
}

func (m Model) listFilter() tasks.Filter {
	return tasks.Filter{
		Status:      m.statusFilter,
		Priority:    m.priorityFilter,
		OverdueOnly: m.overdueFilter,
		HideDone:    m.hideDone && m.statusFilter == "",
		Text:        m.filter.Value(),
	}
}

// filteredTasks returns the tasks matching the current filters, in the
// current sort order
func (m Model) filteredTasks() []tasks.Task {
	return tasks.Sort(m.listFilter().Apply(m.store.All(), m.store.Today()), m.sort)
}

// ensureValidSelection ensures the current selection is within bounds
func (m Model) ensureValidSelection() int {
	list := m.filteredTasks()
	if len(list) == 0 {
		return 0
	}
	if m.selected >= len(list) {
		return len(list) - 1
	}
	if m.selected < 0 {
		return 0
	}
	return m.selected
}

// cycle returns the value after cur in values, wrapping around
func cycle[T comparable](values []T, cur T) T {
	i := slices.Index(values, cur)
	return values[(i+1)%len(values)]
}
