package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/mustdo/internal/todo"
	"github.com/Iron-Ham/mustdo/internal/tui/styles"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case configReloadedMsg:
		m.styles = styles.New(msg.theme)
		m.showHelp = msg.showHelp
		if msg.maxTextWidth > 0 {
			m.maxTextWidth = msg.maxTextWidth
		}
		m.setStatus(fmt.Sprintf("Config reloaded (theme: %s)", m.styles.Name))
		return m, nil

	case errMsg:
		m.setError(msg.err)
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeNormal {
			return m.handleInputKeypress(msg)
		}
		return m.handleNormalKeypress(msg)
	}

	return m, nil
}

// handleNormalKeypress handles keys while browsing the list
func (m Model) handleNormalKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	m.statusErr = false

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "g", "home":
		m.cursor = 0

	case "G", "end":
		m.cursor = max(len(m.tasks)-1, 0)

	case "a":
		return m.startInput(modeAdd, "", "")

	case "e":
		if t, ok := m.selected(); ok {
			return m.startInput(modeEdit, t.ID, t.Text)
		}

	case "d":
		if t, ok := m.selected(); ok {
			return m.startInput(modeDue, t.ID, t.DueDate.String())
		}

	case "x":
		if t, ok := m.selected(); ok {
			if _, err := m.store.DeleteByID(t.ID); err != nil {
				m.setError(err)
			} else {
				m.setStatus(fmt.Sprintf("Deleted %q", t.Text))
			}
			m.refresh()
		}

	case "1", "2", "3":
		if t, ok := m.selected(); ok {
			p := todo.Priorities()[msg.String()[0]-'1']
			if _, err := m.store.SetPriorityByID(t.ID, p); err != nil {
				m.setError(err)
			} else {
				m.setStatus(fmt.Sprintf("%q is now %s", t.Text, p))
			}
			m.refresh()
			m.selectID(t.ID)
		}

	case "/":
		return m.startInput(modeSearch, "", m.query)

	case "esc":
		if m.query != "" {
			m.query = ""
			m.refresh()
		}

	case "?":
		m.showHelp = !m.showHelp
	}

	return m, nil
}

// startInput opens the prompt for mode, prefilled with value
func (m Model) startInput(mode inputMode, id, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.editingID = id
	m.input.Placeholder = placeholders[mode]
	m.input.SetValue(value)
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, tea.Batch(cmd, textinput.Blink)
}

var placeholders = map[inputMode]string{
	modeAdd:    "What needs doing?",
	modeEdit:   "New text",
	modeDue:    "dd-mm-yyyy, or empty to clear",
	modeSearch: "Search tasks",
}

// handleInputKeypress handles keys while the prompt is open
func (m Model) handleInputKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		if m.mode == modeSearch {
			m.query = ""
			m.refresh()
		}
		return m.closeInput(), nil

	case "enter":
		return m.submitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Search narrows the list as the query is typed.
	if m.mode == modeSearch {
		m.query = m.input.Value()
		m.cursor = 0
		m.refresh()
	}
	return m, cmd
}

func (m Model) closeInput() Model {
	m.mode = modeNormal
	m.editingID = ""
	m.input.Blur()
	m.input.SetValue("")
	return m
}

// submitInput applies the prompt value for the current mode
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	id := m.editingID

	switch m.mode {
	case modeAdd:
		task, err := m.store.Add(value, todo.DueDate{}, "")
		switch {
		case err != nil:
			m.setError(err)
		case task == nil:
			m.setStatus("Nothing added")
		default:
			m.setStatus(fmt.Sprintf("Added %q", task.Text))
			id = task.ID
		}

	case modeEdit:
		if strings.TrimSpace(value) == "" {
			m.setStatus("Text unchanged")
			break
		}
		if _, err := m.store.EditByID(id, value); err != nil {
			m.setError(err)
		} else {
			m.setStatus("Task updated")
		}

	case modeDue:
		due, err := todo.ParseDueDate(value)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		if _, err := m.store.SetDueDateByID(id, due); err != nil {
			m.setError(err)
		} else if due.IsSet() {
			m.setStatus("Due " + due.String())
		} else {
			m.setStatus("Due date cleared")
		}

	case modeSearch:
		m.query = value
	}

	m = m.closeInput()
	m.refresh()
	if id != "" {
		m.selectID(id)
	}
	return m, nil
}
