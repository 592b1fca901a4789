package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/mustdo/internal/config"
	"github.com/Iron-Ham/mustdo/internal/todo"
	"github.com/Iron-Ham/mustdo/internal/tui/styles"
	"github.com/Iron-Ham/mustdo/internal/util"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks, highest priority first",
	Long: `List all tasks, High first, then Medium, then Low. Tasks of equal priority
keep the order they were added in.

Examples:
  mustdo list
  mustdo list --match "buy *"
  mustdo list -o json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find tasks containing text",
	Long: `List the tasks whose text contains <query>, ignoring case.

Examples:
  mustdo search milk
  mustdo search "pay r" -o yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var (
	listMatch    string
	listOutput   string
	searchOutput string
)

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)

	listCmd.Flags().StringVarP(&listMatch, "match", "m", "", "Only tasks whose whole text matches a glob (*, ?, [a-z], {a,b})")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "text", "Output format: text, json or yaml")
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "text", "Output format: text, json or yaml")
}

func runList(cmd *cobra.Command, args []string) error {
	if err := checkOutputFormat(listOutput); err != nil {
		return err
	}

	s, err := openSession("list", false)
	if err != nil {
		return err
	}
	defer s.Close()

	tasks := s.store.AllSorted()
	if listMatch != "" {
		if tasks, err = s.store.Match(listMatch); err != nil {
			return err
		}
	}

	return writeTasks(cmd.OutOrStdout(), tasks, listOutput, s.cfg)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := checkOutputFormat(searchOutput); err != nil {
		return err
	}

	s, err := openSession("search", false)
	if err != nil {
		return err
	}
	defer s.Close()

	query := strings.Join(args, " ")
	return writeTasks(cmd.OutOrStdout(), s.store.Search(query), searchOutput, s.cfg)
}

// ValidOutputFormats returns the formats accepted by --output
func ValidOutputFormats() []string {
	return []string{"text", "json", "yaml"}
}

func checkOutputFormat(format string) error {
	for _, valid := range ValidOutputFormats() {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q: must be one of %s", format, strings.Join(ValidOutputFormats(), ", "))
}

// taskView is the exported form of a task in json and yaml output.
type taskView struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Priority  string `json:"priority" yaml:"priority"`
	DueDate   string `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	CreatedAt int64  `json:"createdAt" yaml:"createdAt"`
}

func toViews(tasks []todo.Task) []taskView {
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, taskView{
			ID:        t.ID,
			Text:      t.Text,
			Priority:  t.Priority.String(),
			DueDate:   t.DueDate.String(),
			CreatedAt: t.CreatedAt,
		})
	}
	return views
}

func writeTasks(w io.Writer, tasks []todo.Task, format string, cfg *config.Config) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toViews(tasks))

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toViews(tasks)); err != nil {
			return err
		}
		return enc.Close()

	default:
		return renderText(w, tasks, cfg.Display)
	}
}

// Text column layout: id, priority, text, due date.
const (
	idWidth       = 8
	priorityWidth = 6
	dueWidth      = 10
	columnGap     = "  "
	minTextWidth  = 10
)

func renderText(w io.Writer, tasks []todo.Task, display config.DisplayConfig) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks.")
		return err
	}

	reserved := idWidth + priorityWidth + dueWidth + 3*len(columnGap)
	textWidth := util.TextWidth(terminalWidth(w), reserved, minTextWidth, display.MaxTextWidth)

	colored := useColor(w, display.Color)
	if colored && display.Color == "always" {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
	theme := styles.New(display.Theme)

	for _, t := range tasks {
		row := util.Pad(shortID(t.ID), idWidth) + columnGap +
			util.Pad(t.Priority.String(), priorityWidth) + columnGap +
			util.Fit(t.Text, textWidth) + columnGap +
			util.Pad(t.DueDate.String(), dueWidth)
		if colored {
			row = theme.Priority(t.Priority).Render(row)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(row, " ")); err != nil {
			return err
		}
	}
	return nil
}

// useColor reports whether text output to w is colored under mode.
func useColor(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal(w)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w if it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil {
		return width
	}
	return 0
}
