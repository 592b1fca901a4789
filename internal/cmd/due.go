package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dueCmd = &cobra.Command{
	Use:   "due <match-date|none> <new-date|none>",
	Short: "Change due dates",
	Long: `Move every task due on <match-date> to <new-date>. Use "none" for tasks
without a due date, or as the new date to clear it. All tasks sharing the
matched date change together; use --id to change a single task.

Dates are dd-mm-yyyy (yyyy-mm-dd is accepted too).

Examples:
  mustdo due 01-01-2030 15-01-2030
  mustdo due none 01-02-2030
  mustdo due --id 3f2a9c1e none`,
	Args: func(cmd *cobra.Command, args []string) error {
		if dueID != "" {
			return cobra.ExactArgs(1)(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: runDue,
}

var dueID string

func init() {
	rootCmd.AddCommand(dueCmd)

	dueCmd.Flags().StringVar(&dueID, "id", "", "Change the task with this ID (or unique ID prefix)")
}

func runDue(cmd *cobra.Command, args []string) error {
	newDue, err := parseDueArg(args[len(args)-1])
	if err != nil {
		return err
	}

	s, err := openSession("due", true)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()

	if dueID != "" {
		id, ok, err := resolveID(s.store, dueID)
		if err != nil {
			return err
		}
		if ok {
			ok, err = s.store.SetDueDateByID(id, newDue)
			if err != nil {
				return fmt.Errorf("failed to set due date: %w", err)
			}
		}
		if !ok {
			fmt.Fprintln(out, "No task changed")
			return nil
		}
		fmt.Fprintf(out, "Updated %s\n", shortID(id))
		return nil
	}

	matchDue, err := parseDueArg(args[0])
	if err != nil {
		return err
	}
	n, err := s.store.SetDueDate(matchDue, newDue)
	if err != nil {
		return fmt.Errorf("failed to set due dates: %w", err)
	}
	fmt.Fprintf(out, "Updated %s\n", plural(n, "task"))
	return nil
}
