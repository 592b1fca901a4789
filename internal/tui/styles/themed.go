package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/mustdo/internal/todo"
)

// ThemedStyles contains all the lipgloss styles built from a color palette.
// This allows styles to be regenerated when the theme changes.
type ThemedStyles struct {
	Name    ThemeName
	Palette ColorPalette

	Title    lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Cursor   lipgloss.Style
	Match    lipgloss.Style
	Prompt   lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	High   lipgloss.Style
	Medium lipgloss.Style
	Low    lipgloss.Style
}

// New builds the styles for the named theme. Unknown names fall back to the
// default theme.
func New(name string) *ThemedStyles {
	if !IsValidTheme(name) {
		name = string(ThemeDefault)
	}
	return NewFromPalette(ThemeName(name), PaletteFor(name))
}

// NewFromPalette builds styles from an explicit palette.
func NewFromPalette(name ThemeName, p ColorPalette) *ThemedStyles {
	s := &ThemedStyles{
		Name:    name,
		Palette: p,
	}

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	s.Muted = lipgloss.NewStyle().Foreground(p.Muted)
	s.Error = lipgloss.NewStyle().Bold(true).Foreground(p.Error)
	s.Cursor = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	s.Match = lipgloss.NewStyle().Underline(true).Foreground(p.SearchMatch)
	s.Prompt = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	s.HelpKey = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	s.HelpDesc = lipgloss.NewStyle().Foreground(p.Muted)

	s.High = priorityStyle(p.PriorityHigh, p.Text)
	s.Medium = priorityStyle(p.PriorityMedium, p.Text)
	s.Low = priorityStyle(p.PriorityLow, p.Text)

	// Without colors, priority has to be readable from the text itself.
	if name == ThemeMono {
		s.High = s.High.Bold(true)
		s.Low = s.Low.Faint(true)
	}

	return s
}

func priorityStyle(bg, fg lipgloss.Color) lipgloss.Style {
	style := lipgloss.NewStyle()
	if bg != "" {
		style = style.Background(bg)
	}
	if fg != "" {
		style = style.Foreground(fg)
	}
	return style
}

// Priority returns the row style for p.
func (s *ThemedStyles) Priority(p todo.Priority) lipgloss.Style {
	switch p {
	case todo.High:
		return s.High
	case todo.Low:
		return s.Low
	default:
		return s.Medium
	}
}
