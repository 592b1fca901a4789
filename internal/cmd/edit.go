package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <match-text> <new-text>",
	Short: "Change the text of tasks",
	Long: `Change the text of every task whose text is exactly <match-text>.
With --id, change only that task and pass just the new text.

Examples:
  mustdo edit "Buy milk" "Buy oat milk"
  mustdo edit --id 3f2a9c1e "Buy oat milk"`,
	Args: func(cmd *cobra.Command, args []string) error {
		if editID != "" {
			return cobra.ExactArgs(1)(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: runEdit,
}

var editID string

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVar(&editID, "id", "", "Edit the task with this ID (or unique ID prefix)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	s, err := openSession("edit", true)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()

	if editID != "" {
		id, ok, err := resolveID(s.store, editID)
		if err != nil {
			return err
		}
		if ok {
			ok, err = s.store.EditByID(id, args[0])
			if err != nil {
				return fmt.Errorf("failed to edit task: %w", err)
			}
		}
		if !ok {
			fmt.Fprintln(out, "No task changed")
			return nil
		}
		fmt.Fprintf(out, "Updated %s\n", shortID(id))
		return nil
	}

	n, err := s.store.Edit(args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to edit tasks: %w", err)
	}
	fmt.Fprintf(out, "Updated %s\n", plural(n, "task"))
	return nil
}
