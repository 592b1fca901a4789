package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/mustdo/internal/config"
	"github.com/Iron-Ham/mustdo/internal/logging"
	"github.com/Iron-Ham/mustdo/internal/todo"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
	logger  *logging.Logger
}

// New creates a new TUI application over store
func New(store *todo.Store, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &App{
		model:  NewModel(store, opts),
		logger: logger,
	}
}

// Run starts the TUI application and blocks until it exits
func (a *App) Run() error {
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)

	a.watchConfig()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		<-sigChan
		if a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	_, err := a.program.Run()

	signal.Stop(sigChan)

	return err
}

// watchConfig re-applies display settings when the config file changes.
// Without a config file there is nothing to watch.
func (a *App) watchConfig() {
	path := viper.ConfigFileUsed()
	if path == "" {
		return
	}

	viper.OnConfigChange(func(e fsnotify.Event) {
		if msg, ok := reloadConfig(e); ok {
			a.program.Send(msg)
		}
	})
	viper.WatchConfig()
	a.logger.Debug("watching config", "path", path)
}

// reloadConfig turns a config file event into the message the model applies.
// Events other than writes and creates are ignored.
func reloadConfig(e fsnotify.Event) (tea.Msg, bool) {
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
		return nil, false
	}

	cfg, err := config.Load()
	if err != nil {
		return errMsg{err: err}, true
	}
	return configReloadedMsg{
		theme:        cfg.Display.Theme,
		showHelp:     cfg.TUI.ShowHelp,
		maxTextWidth: cfg.Display.MaxTextWidth,
	}, true
}
