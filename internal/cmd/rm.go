package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <match-text>",
	Aliases: []string{"delete"},
	Short:   "Delete tasks",
	Long: `Delete every task whose text is exactly <match-text>, or with --id only
that task.

Examples:
  mustdo rm "Buy milk"
  mustdo rm --id 3f2a9c1e`,
	Args: func(cmd *cobra.Command, args []string) error {
		if rmID != "" {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runRm,
}

var rmID string

func init() {
	rootCmd.AddCommand(rmCmd)

	rmCmd.Flags().StringVar(&rmID, "id", "", "Delete the task with this ID (or unique ID prefix)")
}

func runRm(cmd *cobra.Command, args []string) error {
	s, err := openSession("rm", true)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()

	if rmID != "" {
		id, ok, err := resolveID(s.store, rmID)
		if err != nil {
			return err
		}
		if ok {
			ok, err = s.store.DeleteByID(id)
			if err != nil {
				return fmt.Errorf("failed to delete task: %w", err)
			}
		}
		if !ok {
			fmt.Fprintln(out, "No task deleted")
			return nil
		}
		fmt.Fprintf(out, "Deleted %s\n", shortID(id))
		return nil
	}

	n, err := s.store.Delete(args[0])
	if err != nil {
		return fmt.Errorf("failed to delete tasks: %w", err)
	}
	fmt.Fprintf(out, "Deleted %s\n", plural(n, "task"))
	return nil
}
