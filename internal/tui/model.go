package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/Iron-Ham/mustdo/internal/logging"
	"github.com/Iron-Ham/mustdo/internal/todo"
	"github.com/Iron-Ham/mustdo/internal/tui/styles"
)

// inputMode selects what the text prompt is collecting.
type inputMode int

const (
	modeNormal inputMode = iota
	modeAdd
	modeEdit
	modeDue
	modeSearch
)

// Options configures a Model.
type Options struct {
	Theme        string
	ShowHelp     bool
	MaxTextWidth int
	Logger       *logging.Logger
}

// Model holds the TUI application state
type Model struct {
	store  *todo.Store
	logger *logging.Logger

	styles       *styles.ThemedStyles
	showHelp     bool
	maxTextWidth int

	// tasks is what the list currently shows: the sorted collection, or the
	// search results when a query matches anything.
	tasks     []todo.Task
	query     string
	noMatches bool
	cursor    int

	mode      inputMode
	input     textinput.Model
	editingID string

	status    string
	statusErr bool

	width    int
	height   int
	quitting bool
}

// NewModel creates a new TUI model over store
func NewModel(store *todo.Store, opts Options) Model {
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Width = 50

	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	if opts.MaxTextWidth <= 0 {
		opts.MaxTextWidth = 60
	}

	m := Model{
		store:        store,
		logger:       logger,
		styles:       styles.New(opts.Theme),
		showHelp:     opts.ShowHelp,
		maxTextWidth: opts.MaxTextWidth,
		input:        ti,
	}
	m.refresh()
	return m
}

// refresh reloads the visible tasks from the store. A query with no matches
// shows the whole collection.
func (m *Model) refresh() {
	m.noMatches = false
	if m.query != "" {
		results := m.store.Search(m.query)
		if len(results) > 0 {
			m.tasks = results
		} else {
			m.noMatches = true
			m.tasks = m.store.AllSorted()
		}
	} else {
		m.tasks = m.store.AllSorted()
	}

	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selected returns the task under the cursor
func (m Model) selected() (todo.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return todo.Task{}, false
	}
	return m.tasks[m.cursor], true
}

// selectID moves the cursor to the task with id, if it is visible
func (m *Model) selectID(id string) {
	for i, t := range m.tasks {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
	m.logger.Warn("operation failed", "error", err.Error())
}
