package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/mustdo/internal/todo"
)

var priorityCmd = &cobra.Command{
	Use:   "priority <match-text> <high|medium|low>",
	Short: "Change task priority",
	Long: `Set the priority of every task whose text is exactly <match-text>, or with
--id only that task. Priorities are High, Medium and Low (h, m and l work too).

Examples:
  mustdo priority "Pay rent" high
  mustdo priority --id 3f2a9c1e low`,
	Args: func(cmd *cobra.Command, args []string) error {
		if priorityID != "" {
			return cobra.ExactArgs(1)(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: runPriority,
}

var priorityID string

func init() {
	rootCmd.AddCommand(priorityCmd)

	priorityCmd.Flags().StringVar(&priorityID, "id", "", "Change the task with this ID (or unique ID prefix)")
}

func runPriority(cmd *cobra.Command, args []string) error {
	p, err := todo.ParsePriority(args[len(args)-1])
	if err != nil {
		return err
	}

	s, err := openSession("priority", true)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()

	if priorityID != "" {
		id, ok, err := resolveID(s.store, priorityID)
		if err != nil {
			return err
		}
		if ok {
			ok, err = s.store.SetPriorityByID(id, p)
			if err != nil {
				return fmt.Errorf("failed to set priority: %w", err)
			}
		}
		if !ok {
			fmt.Fprintln(out, "No task changed")
			return nil
		}
		fmt.Fprintf(out, "Updated %s to %s\n", shortID(id), p)
		return nil
	}

	n, err := s.store.SetPriority(args[0], p)
	if err != nil {
		return fmt.Errorf("failed to set priority: %w", err)
	}
	fmt.Fprintf(out, "Updated %s to %s\n", plural(n, "task"), p)
	return nil
}
