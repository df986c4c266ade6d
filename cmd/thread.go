package cmd

import (
	"fmt"
	"strings"

	"github.com/iksnae/assistant-runner/internal"
	"github.com/spf13/cobra"
)

var threadMetadata []string

var threadCmd = &cobra.Command{
	Use:   "thread",
	Short: "Manage conversation threads",
}

var threadCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a thread",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		metadata, err := parsePairs(threadMetadata)
		if err != nil {
			return err
		}
		a, err := loadApp()
		if err != nil {
			return err
		}
		thread, err := a.managers.Threads.Create(cmd.Context(), metadata)
		if err != nil {
			return fmt.Errorf("error while creating thread: %w", err)
		}
		internal.PrintSuccess(fmt.Sprintf("Created thread %s", thread.ID))
		printThread(cmd.OutOrStdout(), thread)
		return nil
	},
}

var threadGetCmd = &cobra.Command{
	Use:   "get <thread-id>",
	Short: "Show a thread",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		thread, err := a.managers.Threads.Retrieve(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error while retrieving thread: %w", err)
		}
		printThread(cmd.OutOrStdout(), thread)
		return nil
	},
}

var threadDeleteCmd = &cobra.Command{
	Use:   "delete <thread-id>",
	Short: "Delete a thread",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		if err := a.managers.Threads.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("error while deleting thread: %w", err)
		}
		internal.PrintSuccess(fmt.Sprintf("Deleted thread %s", args[0]))
		return nil
	},
}

// parsePairs turns key=value flags into a map
func parsePairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid key=value pair %q", p)
		}
		out[k] = v
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(threadCmd)
	threadCmd.AddCommand(threadCreateCmd, threadGetCmd, threadDeleteCmd)

	threadCreateCmd.Flags().StringArrayVar(&threadMetadata, "metadata", nil, "Thread metadata as key=value (repeatable)")
}
