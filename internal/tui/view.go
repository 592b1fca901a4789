package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/mustdo/internal/util"
)

// Column widths around the text column.
const (
	cursorWidth   = 2
	priorityWidth = 7
	dueWidth      = 10
	columnGap     = 1
	minTextWidth  = 10
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderList())

	if m.mode != modeNormal {
		b.WriteString("\n")
		b.WriteString(m.renderPrompt())
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(m.styles.Error.Render(m.status))
		} else {
			b.WriteString(m.styles.Muted.Render(m.status))
		}
	}

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.renderHelp())
	}

	return b.String()
}

func (m Model) renderHeader() string {
	header := m.styles.Title.Render("mustdo") +
		m.styles.Muted.Render(fmt.Sprintf("  %d tasks", m.store.Len()))

	if m.query != "" {
		search := "  search: " + m.styles.Match.Render(m.query)
		if m.noMatches {
			search += m.styles.Muted.Render(" (no matches, showing all)")
		}
		header += search
	}
	return header
}

func (m Model) textWidth() int {
	reserved := cursorWidth + priorityWidth + dueWidth + 2*columnGap
	return util.TextWidth(m.width, reserved, minTextWidth, m.maxTextWidth)
}

func (m Model) renderList() string {
	if len(m.tasks) == 0 {
		return m.styles.Muted.Render("Nothing to do. Press a to add a task.")
	}

	width := m.textWidth()
	gap := strings.Repeat(" ", columnGap)
	lines := make([]string, 0, len(m.tasks))

	for i, t := range m.tasks {
		cursor := strings.Repeat(" ", cursorWidth)
		if i == m.cursor {
			cursor = m.styles.Cursor.Render("> ")
		}

		due := t.DueDate.String()
		if due == "" {
			due = "-"
		}

		row := util.Pad(t.Priority.String(), priorityWidth) + gap +
			util.Fit(t.Text, width) + gap +
			util.Pad(due, dueWidth)
		lines = append(lines, cursor+m.styles.Priority(t.Priority).Render(row))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

var promptLabels = map[inputMode]string{
	modeAdd:    "Add",
	modeEdit:   "Edit",
	modeDue:    "Due",
	modeSearch: "Search",
}

func (m Model) renderPrompt() string {
	label := m.styles.Title.Render(promptLabels[m.mode] + ": ")
	return m.styles.Prompt.Render(label + m.input.View())
}

var helpItems = []struct{ key, desc string }{
	{"a", "add"},
	{"e", "edit"},
	{"d", "due"},
	{"x", "delete"},
	{"1/2/3", "priority"},
	{"/", "search"},
	{"esc", "clear"},
	{"j/k", "move"},
	{"q", "quit"},
}

func (m Model) renderHelp() string {
	parts := make([]string, 0, len(helpItems))
	for _, item := range helpItems {
		parts = append(parts, m.styles.HelpKey.Render(item.key)+" "+m.styles.HelpDesc.Render(item.desc))
	}
	return strings.Join(parts, "  ")
}
