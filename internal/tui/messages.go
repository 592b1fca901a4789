package tui

// configReloadedMsg carries display settings re-read after the config file
// changed on disk.
type configReloadedMsg struct {
	theme        string
	showHelp     bool
	maxTextWidth int
}

// errMsg wraps an error for display in the UI
type errMsg struct {
	err error
}
