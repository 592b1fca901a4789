package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/mustdo/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive task list",
	Long: `Open the interactive task list.

Keys:
  a        add a task           e    edit the selected task
  d        set its due date     x    delete it
  1/2/3    High/Medium/Low      /    search
  esc      clear the search     j/k  move
  ?        toggle help          q    quit

The slot stays locked while the list is open. Theme changes in the config
file are applied without restarting.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := openSession("tui", true)
	if err != nil {
		return err
	}
	defer s.Close()

	s.logger.Info("tui started", "tasks", s.store.Len())

	app := tui.New(s.store, tui.Options{
		Theme:        s.cfg.Display.Theme,
		ShowHelp:     s.cfg.TUI.ShowHelp,
		MaxTextWidth: s.cfg.Display.MaxTextWidth,
		Logger:       s.logger,
	})
	return app.Run()
}
