package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/mustdo/internal/todo"
)

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Append tasks from a JSON export",
	Long: `Append the tasks in a JSON file to the list. The file may be a mustdo slot
file or an export from the old browser version of the list (records with
"todoText" and numeric ids). Use - to read from standard input.

Imported tasks keep their priority and due date. Tasks whose id is already
in the list get a new one.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = afero.ReadFile(slotFs, args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	tasks, err := todo.DecodeCollection(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	s, err := openSession("import", true)
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.store.Import(tasks)
	if err != nil {
		return fmt.Errorf("failed to import tasks: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", plural(n, "task"))
	return nil
}
