package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a named color theme.
type ThemeName string

// Available theme names.
const (
	ThemeDefault      ThemeName = "default"       // Muted priority tints on a dark terminal
	ThemeMono         ThemeName = "mono"          // No color; priority shown by weight only
	ThemeHighContrast ThemeName = "high-contrast" // Saturated colors for low-vision use
)

// BuiltinThemes returns all theme names.
func BuiltinThemes() []string {
	return []string{
		string(ThemeDefault),
		string(ThemeMono),
		string(ThemeHighContrast),
	}
}

// IsValidTheme checks if a theme name is known.
func IsValidTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// ColorPalette defines the color scheme for a theme.
// An empty color means "terminal default".
type ColorPalette struct {
	// Primary accent color (titles, the cursor)
	Primary lipgloss.Color
	// Muted color (help text, empty due dates)
	Muted lipgloss.Color
	// Text color on priority rows
	Text lipgloss.Color
	// Error color (status line failures)
	Error lipgloss.Color
	// Border color (prompt box)
	Border lipgloss.Color

	// Priority row backgrounds
	PriorityHigh   lipgloss.Color
	PriorityMedium lipgloss.Color
	PriorityLow    lipgloss.Color

	// Search match highlight
	SearchMatch lipgloss.Color
}

// DefaultPalette returns the palette of the default theme. The priority
// colors are the desaturated red, blue and green the list has always used.
func DefaultPalette() ColorPalette {
	return ColorPalette{
		Primary:        lipgloss.Color("#A78BFA"),
		Muted:          lipgloss.Color("#9CA3AF"),
		Text:           lipgloss.Color("#F9FAFB"),
		Error:          lipgloss.Color("#F87171"),
		Border:         lipgloss.Color("#6B7280"),
		PriorityHigh:   lipgloss.Color("#7A474F"),
		PriorityMedium: lipgloss.Color("#474F7A"),
		PriorityLow:    lipgloss.Color("#477A4F"),
		SearchMatch:    lipgloss.Color("#FBBF24"),
	}
}

// MonoPalette returns a palette with no colors.
func MonoPalette() ColorPalette {
	return ColorPalette{}
}

// HighContrastPalette returns a palette with saturated colors and black text.
func HighContrastPalette() ColorPalette {
	return ColorPalette{
		Primary:        lipgloss.Color("#FFFFFF"),
		Muted:          lipgloss.Color("#D1D5DB"),
		Text:           lipgloss.Color("#000000"),
		Error:          lipgloss.Color("#FF5555"),
		Border:         lipgloss.Color("#FFFFFF"),
		PriorityHigh:   lipgloss.Color("#FF6B6B"),
		PriorityMedium: lipgloss.Color("#74C0FC"),
		PriorityLow:    lipgloss.Color("#8CE99A"),
		SearchMatch:    lipgloss.Color("#FFD43B"),
	}
}

// PaletteFor returns the palette of the named theme, or the default palette
// for unknown names.
func PaletteFor(name string) ColorPalette {
	switch ThemeName(name) {
	case ThemeMono:
		return MonoPalette()
	case ThemeHighContrast:
		return HighContrastPalette()
	default:
		return DefaultPalette()
	}
}
