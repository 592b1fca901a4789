package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/mustdo/internal/errors"
	"github.com/Iron-Ham/mustdo/internal/storage"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

// setupTestEnvironment points config and data at a temp dir and resets the
// package-level flag state left over from earlier commands. It returns the
// data directory holding the slot.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("MUSTDO_LOGGING_ENABLED", "false")

	viper.Reset()
	t.Cleanup(viper.Reset)

	addDue, addPriority = "", ""
	editID, rmID, dueID, priorityID = "", "", "", ""
	listMatch, listOutput, searchOutput = "", "text", "text"
	logsTail, logsFollow, logsLevel, logsSince, logsGrep = 50, false, "", "", ""

	return filepath.Join(dir, "data", "mustdo")
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	out, err := executeCommand(rootCmd, args...)
	if err != nil {
		t.Fatalf("mustdo %s: %v\nOutput: %s", strings.Join(args, " "), err, out)
	}
	return out
}

func listJSON(t *testing.T) []taskView {
	t.Helper()
	out := run(t, "list", "-o", "json")
	var views []taskView
	if err := json.Unmarshal([]byte(out), &views); err != nil {
		t.Fatalf("list -o json output is not JSON: %v\n%s", err, out)
	}
	listOutput = "text"
	return views
}

func viewTexts(views []taskView) string {
	texts := make([]string, len(views))
	for i, v := range views {
		texts[i] = v.Text
	}
	return strings.Join(texts, ",")
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "mustdo" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "mustdo")
	}

	expectedCmds := []string{"add", "edit", "rm", "due", "priority", "list", "search", "import", "tui", "config", "logs"}
	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}
	for _, expected := range expectedCmds {
		if !cmdMap[expected] {
			t.Errorf("expected subcommand %q not found", expected)
		}
	}
}

func TestAddAndList(t *testing.T) {
	dataDir := setupTestEnvironment(t)

	out := run(t, "add", "Buy", "milk", "--priority", "low", "--due", "01-01-2030")
	if !strings.Contains(out, "[Low] Buy milk (due 01-01-2030)") {
		t.Errorf("add output = %q", out)
	}
	addDue, addPriority = "", ""
	run(t, "add", "Pay rent", "-p", "high")

	if _, err := os.Stat(filepath.Join(dataDir, "todos.json")); err != nil {
		t.Errorf("slot file not written: %v", err)
	}

	out = run(t, "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("list printed %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Pay rent") || !strings.Contains(lines[1], "Buy milk") {
		t.Errorf("list order wrong:\n%s", out)
	}
	if !strings.Contains(lines[1], "01-01-2030") {
		t.Errorf("due date missing:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("output to a buffer should not be colored")
	}
}

func TestAdd_DefaultsToMedium(t *testing.T) {
	setupTestEnvironment(t)
	run(t, "add", "Call mom")

	views := listJSON(t)
	if len(views) != 1 || views[0].Priority != "Medium" || views[0].DueDate != "" {
		t.Errorf("tasks = %+v", views)
	}
}

func TestAdd_BlankText(t *testing.T) {
	setupTestEnvironment(t)

	out := run(t, "add", "   ")
	if !strings.Contains(out, "Nothing added") {
		t.Errorf("output = %q", out)
	}
	if n := len(listJSON(t)); n != 0 {
		t.Errorf("got %d tasks, want 0", n)
	}
}

func TestAdd_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"priority", []string{"add", "x", "--priority", "urgent"}, errors.ErrInvalidPriority},
		{"due date", []string{"add", "x", "--due", "tomorrow"}, errors.ErrInvalidDueDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestEnvironment(t)
			_, err := executeCommand(rootCmd, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if n := len(listJSON(t)); n != 0 {
				t.Errorf("got %d tasks, want 0", n)
			}
		})
	}
}

func TestEditRmPriorityByText(t *testing.T) {
	setupTestEnvironment(t)
	run(t, "add", "Buy milk")
	run(t, "add", "Pay rent")

	if out := run(t, "edit", "Buy milk", "Buy oat milk"); !strings.Contains(out, "Updated 1 task") {
		t.Errorf("edit output = %q", out)
	}
	if out := run(t, "priority", "Buy oat milk", "h"); !strings.Contains(out, "Updated 1 task to High") {
		t.Errorf("priority output = %q", out)
	}
	if got := viewTexts(listJSON(t)); got != "Buy oat milk,Pay rent" {
		t.Errorf("tasks = %s", got)
	}

	if out := run(t, "rm", "Pay rent"); !strings.Contains(out, "Deleted 1 task") {
		t.Errorf("rm output = %q", out)
	}
	if out := run(t, "rm", "Pay rent"); !strings.Contains(out, "Deleted 0 tasks") {
		t.Errorf("second rm output = %q", out)
	}
	if got := viewTexts(listJSON(t)); got != "Buy oat milk" {
		t.Errorf("tasks = %s", got)
	}
}

func TestPriority_Invalid(t *testing.T) {
	setupTestEnvironment(t)
	run(t, "add", "Buy milk")

	_, err := executeCommand(rootCmd, "priority", "Buy milk", "Urgent")
	if !errors.Is(err, errors.ErrInvalidPriority) {
		t.Errorf("error = %v, want ErrInvalidPriority", err)
	}
	if views := listJSON(t); views[0].Priority != "Medium" {
		t.Errorf("priority = %s, want unchanged Medium", views[0].Priority)
	}
}

func TestDue_ByDate(t *testing.T) {
	setupTestEnvironment(t)
	run(t, "add", "a")
	run(t, "add", "b")

	// Both undated tasks move together.
	if out := run(t, "due", "none", "01-02-2030"); !strings.Contains(out, "Updated 2 tasks") {
		t.Errorf("due output = %q", out)
	}
	if out := run(t, "due", "2030-02-01", "none"); !strings.Contains(out, "Updated 2 tasks") {
		t.Errorf("due output = %q", out)
	}
	for _, v := range listJSON(t) {
		if v.DueDate != "" {
			t.Errorf("%s due = %q, want cleared", v.Text, v.DueDate)
		}
	}
}

func TestByID(t *testing.T) {
	setupTestEnvironment(t)
	run(t, "add", "dup")
	run(t, "add", "dup")

	views := listJSON(t)
	second := views[1].ID

	run(t, "edit", "--id", second[:8], "renamed")
	editID = ""
	run(t, "priority", "--id", second, "high")
	priorityID = ""
	run(t, "due", "--id", second, "15-06-2031")
	dueID = ""

	views = listJSON(t)
	if views[0].ID != second || views[0].Text != "renamed" || views[0].Priority != "High" || views[0].DueDate != "15-06-2031" {
		t.Errorf("second task = %+v", views[0])
	}
	if views[1].Text != "dup" || views[1].Priority != "Medium" || views[1].DueDate != "" {
		t.Errorf("first task should be untouched, got %+v", views[1])
	}

	run(t, "rm", "--id", second)
	rmID = ""
	if got := viewTexts(listJSON(t)); got != "dup" {
		t.Errorf("tasks = %s", got)
	}

	if out := run(t, "rm", "--id", "no-such-id"); !strings.Contains(out, "No task deleted") {
		t.Errorf("rm unknown id output = %q", out)
	}
}

func TestByID_EmptyID(t *testing.T) {
	setupTestEnvironment(t)
	run(t, "add", "a")

	_, err := executeCommand(rootCmd, "rm", "--id", " ")
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestSearch(t *testing.T) {
	setupTestEnvironment(t)
	run(t, "add", "Buy milk")
	run(t, "add", "Pay rent")

	out := run(t, "search", "BUY")
	if !strings.Contains(out, "Buy milk") || strings.Contains(out, "Pay rent") {
		t.Errorf("search output:\n%s", out)
	}

	out = run(t, "search", "zzz", "-o", "json")
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("search with no results = %q, want []", out)
	}
}

func TestList_Match(t *testing.T) {
	setupTestEnvironment(t)
	run(t, "add", "Buy milk")
	run(t, "add", "Buy bread")
	run(t, "add", "Pay rent")

	out := run(t, "list", "--match", "buy *")
	if !strings.Contains(out, "Buy milk") || !strings.Contains(out, "Buy bread") || strings.Contains(out, "Pay rent") {
		t.Errorf("list --match output:\n%s", out)
	}
}

func TestList_YAML(t *testing.T) {
	setupTestEnvironment(t)
	run(t, "add", "Buy milk", "--due", "01-01-2030")

	out := run(t, "list", "-o", "yaml")
	var views []taskView
	if err := yaml.Unmarshal([]byte(out), &views); err != nil {
		t.Fatalf("yaml output did not parse: %v\n%s", err, out)
	}
	if len(views) != 1 || views[0].Text != "Buy milk" || views[0].DueDate != "01-01-2030" {
		t.Errorf("views = %+v", views)
	}
}

func TestList_InvalidOutput(t *testing.T) {
	setupTestEnvironment(t)
	if _, err := executeCommand(rootCmd, "list", "-o", "xml"); err == nil {
		t.Error("expected error for unknown output format")
	}
}

func TestList_Empty(t *testing.T) {
	setupTestEnvironment(t)
	if out := run(t, "list"); strings.TrimSpace(out) != "No tasks." {
		t.Errorf("output = %q", out)
	}
}

func TestImport(t *testing.T) {
	setupTestEnvironment(t)
	run(t, "add", "existing")

	legacy := `[
		{"id": 1700000000000, "todoText": "Buy milk", "dueDate": "NaN-NaN-NaN", "priority": "Low"},
		{"id": 1700000000001, "todoText": "Pay rent", "dueDate": "2030-01-01", "priority": "High"}
	]`
	path := filepath.Join(t.TempDir(), "export.json")
	if err := os.WriteFile(path, []byte(legacy), 0644); err != nil {
		t.Fatal(err)
	}

	if out := run(t, "import", path); !strings.Contains(out, "Imported 2 tasks") {
		t.Errorf("import output = %q", out)
	}

	views := listJSON(t)
	if got := viewTexts(views); got != "Pay rent,existing,Buy milk" {
		t.Errorf("tasks = %s", got)
	}
	if views[0].DueDate != "01-01-2030" || views[2].DueDate != "" {
		t.Errorf("due dates = %q, %q", views[0].DueDate, views[2].DueDate)
	}
}

func TestImport_Stdin(t *testing.T) {
	setupTestEnvironment(t)

	rootCmd.SetIn(strings.NewReader(`[{"text":"from stdin","priority":"High"}]`))
	t.Cleanup(func() { rootCmd.SetIn(nil) })

	run(t, "import", "-")
	if got := viewTexts(listJSON(t)); got != "from stdin" {
		t.Errorf("tasks = %s", got)
	}
}

func TestImport_Malformed(t *testing.T) {
	setupTestEnvironment(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`[{"text":"x","priority":"Urgent"}]`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := executeCommand(rootCmd, "import", path); !errors.Is(err, errors.ErrInvalidPriority) {
		t.Errorf("error = %v, want ErrInvalidPriority", err)
	}
}

func TestCorruptSlotLoadsEmpty(t *testing.T) {
	dataDir := setupTestEnvironment(t)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "todos.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if out := run(t, "list"); strings.TrimSpace(out) != "No tasks." {
		t.Errorf("output = %q", out)
	}

	// The next mutation overwrites the corrupt slot.
	run(t, "add", "fresh start")
	if got := viewTexts(listJSON(t)); got != "fresh start" {
		t.Errorf("tasks = %s", got)
	}
}

func TestSlotLocked(t *testing.T) {
	dataDir := setupTestEnvironment(t)

	original := lockWait
	lockWait = 100 * time.Millisecond
	t.Cleanup(func() { lockWait = original })

	holder := storage.NewFileLock(dataDir, "todos")
	if err := holder.Lock(); err != nil {
		t.Fatalf("Lock: %v", err)
	}
	defer holder.Unlock()

	_, err := executeCommand(rootCmd, "add", "blocked")
	if !errors.Is(err, errors.ErrSlotLocked) {
		t.Errorf("error = %v, want ErrSlotLocked", err)
	}

	// Reading does not take the lock.
	if _, err := executeCommand(rootCmd, "list"); err != nil {
		t.Errorf("list while locked: %v", err)
	}
}

func TestStorageSlotFromEnv(t *testing.T) {
	dataDir := setupTestEnvironment(t)
	t.Setenv("MUSTDO_STORAGE_SLOT", "work")

	run(t, "add", "work task")
	if _, err := os.Stat(filepath.Join(dataDir, "work.json")); err != nil {
		t.Errorf("work slot not written: %v", err)
	}
}

func TestConfigCommands(t *testing.T) {
	setupTestEnvironment(t)

	out := run(t, "config", "init")
	if !strings.Contains(out, "Created config file") {
		t.Errorf("config init output = %q", out)
	}
	if _, err := executeCommand(rootCmd, "config", "init"); err == nil {
		t.Error("second config init should fail")
	}

	run(t, "config", "set", "display.theme", "mono")

	if _, err := executeCommand(rootCmd, "config", "set", "display.theme", "neon"); err == nil {
		t.Error("invalid theme should be rejected")
	}
	if _, err := executeCommand(rootCmd, "config", "set", "display.max_text_width", "wide"); err == nil {
		t.Error("non-integer width should be rejected")
	}
	if _, err := executeCommand(rootCmd, "config", "set", "no.such.key", "1"); err == nil {
		t.Error("unknown key should be rejected")
	}

	out = run(t, "config", "show")
	if !strings.Contains(out, "theme: mono") {
		t.Errorf("config show output:\n%s", out)
	}

	out = run(t, "config", "path")
	if !strings.Contains(out, "MUSTDO_") {
		t.Errorf("config path output:\n%s", out)
	}
}

func TestLogs(t *testing.T) {
	setupTestEnvironment(t)
	t.Setenv("MUSTDO_LOGGING_ENABLED", "true")
	t.Setenv("MUSTDO_LOGGING_LEVEL", "debug")

	if out := run(t, "logs"); !strings.Contains(out, "No log file yet") {
		t.Errorf("logs before any command = %q", out)
	}

	run(t, "add", "Buy milk")

	out := run(t, "logs")
	if !strings.Contains(out, "[DEBUG] task added") || !strings.Contains(out, "command=add") {
		t.Errorf("logs output:\n%s", out)
	}

	out = run(t, "logs", "--level", "warn")
	if !strings.Contains(out, "No matching log entries found.") {
		t.Errorf("logs --level warn output:\n%s", out)
	}
}

func TestLogFilter(t *testing.T) {
	now := time.Now()
	entry := &logEntry{
		Time:    now,
		Level:   "INFO",
		Msg:     "tasks imported",
		Command: "import",
		Extra:   map[string]any{"count": 3},
	}

	tests := []struct {
		name   string
		filter logFilter
		want   bool
	}{
		{"no filter", logFilter{minLevel: -1}, true},
		{"level below", logFilter{minLevel: levelPriority("warn")}, false},
		{"level at", logFilter{minLevel: levelPriority("info")}, true},
		{"since after", logFilter{minLevel: -1, since: now.Add(time.Minute)}, false},
		{"grep command", logFilter{minLevel: -1, grep: mustCompile(t, "^.*import")}, true},
		{"grep extra", logFilter{minLevel: -1, grep: mustCompile(t, `\b3\b`)}, true},
		{"grep miss", logFilter{minLevel: -1, grep: mustCompile(t, "persist")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.passes(entry); got != tt.want {
				t.Errorf("passes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogFilter_Render(t *testing.T) {
	f := logFilter{minLevel: -1}

	if _, ok := f.render("   "); ok {
		t.Error("blank lines should be skipped")
	}
	if line, ok := f.render("plain text"); !ok || line != "plain text" {
		t.Errorf("non-JSON line = %q, %v; want passed through", line, ok)
	}

	line, ok := f.render(`{"time":"2030-01-01T10:00:00Z","level":"WARN","msg":"persist failed","slot":"todos","op":"add"}`)
	if !ok {
		t.Fatal("entry should render")
	}
	for _, want := range []string{"[WARN]", "persist failed", "slot=todos", "op=", "add"} {
		if !strings.Contains(line, want) {
			t.Errorf("rendered %q missing %q", line, want)
		}
	}
}

func mustCompile(t *testing.T, pattern string) *regexp.Regexp {
	t.Helper()
	re, err := regexp.Compile(pattern)
	if err != nil {
		t.Fatal(err)
	}
	return re
}
