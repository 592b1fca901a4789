package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/mustdo/internal/todo"
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a task",
	Long: `Add a task to the list. Words after the command are joined into the task
text, so quoting is optional.

Examples:
  mustdo add Buy milk
  mustdo add "Pay rent" --priority high --due 01-02-2030`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addDue      string
	addPriority string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "Due date (dd-mm-yyyy or yyyy-mm-dd)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Priority: high, medium or low (default medium)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	due, err := todo.ParseDueDate(addDue)
	if err != nil {
		return err
	}

	var priority todo.Priority
	if addPriority != "" {
		if priority, err = todo.ParsePriority(addPriority); err != nil {
			return err
		}
	}

	s, err := openSession("add", true)
	if err != nil {
		return err
	}
	defer s.Close()

	task, err := s.store.Add(text, due, priority)
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	out := cmd.OutOrStdout()
	if task == nil {
		fmt.Fprintln(out, "Nothing added: task text is blank")
		return nil
	}

	fmt.Fprintf(out, "Added %s [%s] %s", shortID(task.ID), task.Priority, task.Text)
	if task.DueDate.IsSet() {
		fmt.Fprintf(out, " (due %s)", task.DueDate)
	}
	fmt.Fprintln(out)
	return nil
}
