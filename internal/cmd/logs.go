package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/mustdo/internal/config"
	"github.com/Iron-Ham/mustdo/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View the mustdo log",
	Long: `View and filter the mustdo log file.

Examples:
  # Show the last 50 entries
  mustdo logs

  # Show everything
  mustdo logs -n 0

  # Follow new entries as they are written
  mustdo logs -f

  # Only warnings and errors from the last hour
  mustdo logs --level warn --since 1h

  # Search messages and fields
  mustdo logs --grep "persist|import"`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsTail   int
	logsFollow bool
	logsLevel  string
	logsSince  string
	logsGrep   string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output (like tail -f)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show entries since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter entries matching pattern (regex)")
}

// logEntry represents a parsed JSON log line
type logEntry struct {
	Time    time.Time      `json:"time"`
	Level   string         `json:"level"`
	Msg     string         `json:"msg"`
	Slot    string         `json:"slot,omitempty"`
	Command string         `json:"command,omitempty"`
	Extra   map[string]any `json:"-"`
}

// UnmarshalJSON implements custom unmarshaling to capture extra fields
func (e *logEntry) UnmarshalJSON(data []byte) error {
	type Alias logEntry
	aux := &struct {
		*Alias
	}{
		Alias: (*Alias)(e),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, known := range []string{"time", "level", "msg", "slot", "command"} {
		delete(all, known)
	}
	if len(all) > 0 {
		e.Extra = all
	}
	return nil
}

// logFilter selects which entries are shown
type logFilter struct {
	minLevel int
	since    time.Time
	grep     *regexp.Regexp
}

var (
	logTimeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	logFieldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22D3EE"))
	logLevelStyle = map[string]lipgloss.Style{
		logging.LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		logging.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA")),
		logging.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		logging.LevelError: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F87171")),
	}
)

// levelPriority returns the priority of a log level for filtering
func levelPriority(level string) int {
	switch strings.ToUpper(level) {
	case logging.LevelDebug:
		return 0
	case logging.LevelInfo:
		return 1
	case logging.LevelWarn:
		return 2
	case logging.LevelError:
		return 3
	default:
		return -1
	}
}

// formatLogEntry formats a log entry for terminal output
func formatLogEntry(entry *logEntry) string {
	level := strings.ToUpper(entry.Level)

	var sb strings.Builder
	sb.WriteString(logTimeStyle.Render("[" + entry.Time.Format("15:04:05.000") + "]"))
	sb.WriteString(" ")
	sb.WriteString(logLevelStyle[level].Render("[" + level + "]"))
	sb.WriteString(" ")
	sb.WriteString(entry.Msg)

	if entry.Command != "" {
		sb.WriteString(" ")
		sb.WriteString(logFieldStyle.Render("command=" + entry.Command))
	}
	if entry.Slot != "" {
		sb.WriteString(" ")
		sb.WriteString(logFieldStyle.Render("slot=" + entry.Slot))
	}

	keys := make([]string, 0, len(entry.Extra))
	for key := range entry.Extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		sb.WriteString(" ")
		sb.WriteString(logFieldStyle.Render(key + "="))
		sb.WriteString(fmt.Sprintf("%v", entry.Extra[key]))
	}

	return sb.String()
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logPath := filepath.Join(cfg.Storage.ResolveDir(), logging.FileName)
	out := cmd.OutOrStdout()

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No log file yet.")
		fmt.Fprintln(out, "Logs are stored at:", logPath)
		return nil
	}

	filter := logFilter{minLevel: -1}
	if logsLevel != "" {
		filter.minLevel = levelPriority(logging.ParseLevel(logsLevel))
	}

	if logsSince != "" {
		duration, err := time.ParseDuration(logsSince)
		if err != nil {
			return fmt.Errorf("invalid duration format: %w", err)
		}
		filter.since = time.Now().Add(-duration)
	}

	if logsGrep != "" {
		filter.grep, err = regexp.Compile(logsGrep)
		if err != nil {
			return fmt.Errorf("invalid grep pattern: %w", err)
		}
	}

	if logsFollow {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return followLogs(ctx, out, logPath, filter)
	}

	return displayLogs(out, logPath, logsTail, filter)
}

// displayLogs reads the log file and displays filtered entries
func displayLogs(out io.Writer, logPath string, tail int, filter logFilter) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	var entries []string
	scanner := bufio.NewScanner(file)

	// Increase buffer size for potentially long log lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		if line, ok := filter.render(scanner.Text()); ok {
			entries = append(entries, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading log file: %w", err)
	}

	if tail > 0 && len(entries) > tail {
		entries = entries[len(entries)-tail:]
	}

	for _, entry := range entries {
		fmt.Fprintln(out, entry)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No matching log entries found.")
	}
	return nil
}

// followLogs prints entries appended to the log file until ctx is done.
// The file is watched with fsnotify; a rotation reopens it from the start.
func followLogs(ctx context.Context, out io.Writer, logPath string, filter logFilter) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to watch log file: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so a rotated file is picked up.
	if err := watcher.Add(filepath.Dir(logPath)); err != nil {
		return fmt.Errorf("failed to watch log directory: %w", err)
	}

	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end: %w", err)
	}
	reader := bufio.NewReader(file)

	fmt.Fprintf(out, "Following logs... (Ctrl+C to stop)\n\n")

	for {
		select {
		case <-ctx.Done():
			return nil

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("log watcher: %w", err)

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(logPath) {
				continue
			}

			if event.Has(fsnotify.Create) {
				// Rotated: the old file was renamed away and a new one created.
				_ = file.Close()
				if file, err = os.Open(logPath); err != nil {
					return fmt.Errorf("failed to reopen log file: %w", err)
				}
				reader.Reset(file)
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if err := printNewLines(out, reader, filter); err != nil {
				return err
			}
		}
	}
}

// printNewLines prints every complete line available from reader.
func printNewLines(out io.Writer, reader *bufio.Reader, filter logFilter) error {
	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading log file: %w", err)
		}
		if rendered, ok := filter.render(line); ok {
			fmt.Fprintln(out, rendered)
		}
	}
}

// render parses and formats one log line, reporting false if the line is
// empty or filtered out. Lines that are not JSON are passed through.
func (f logFilter) render(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}

	var entry logEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return line, true
	}
	if !f.passes(&entry) {
		return "", false
	}
	return formatLogEntry(&entry), true
}

// passes checks if a log entry passes all filter criteria
func (f logFilter) passes(entry *logEntry) bool {
	if f.minLevel >= 0 && levelPriority(entry.Level) < f.minLevel {
		return false
	}

	if !f.since.IsZero() && entry.Time.Before(f.since) {
		return false
	}

	// Grep searches the message and every field
	if f.grep != nil {
		searchText := entry.Msg + " " + entry.Command + " " + entry.Slot
		for _, v := range entry.Extra {
			searchText += " " + fmt.Sprintf("%v", v)
		}
		if !f.grep.MatchString(searchText) {
			return false
		}
	}

	return true
}
