package cmd

import (
	"fmt"

	"github.com/iksnae/assistant-runner/internal"
	"github.com/spf13/cobra"
)

var (
	messageFileID string
	messageRole   string
)

var messageCmd = &cobra.Command{
	Use:   "message",
	Short: "Post and read thread messages",
}

var messageAddCmd = &cobra.Command{
	Use:   "add <thread-id> <content>",
	Short: "Add a message to a thread",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		role := internal.Role(messageRole)
		var msg *internal.Message
		if messageFileID != "" {
			msg, err = a.managers.Messages.AddWithFile(cmd.Context(), args[0], args[1], messageFileID, role)
		} else {
			msg, err = a.managers.Messages.Add(cmd.Context(), args[0], args[1], role)
		}
		if err != nil {
			return fmt.Errorf("error adding message to thread: %w", err)
		}
		internal.PrintSuccess(fmt.Sprintf("Added message %s to thread %s", msg.ID, args[0]))
		return nil
	},
}

var messageListCmd = &cobra.Command{
	Use:   "list <thread-id>",
	Short: "List a thread's messages, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		messages, err := a.managers.Messages.ListByThread(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error while listing messages: %w", err)
		}
		printMessages(cmd.OutOrStdout(), messages)
		return nil
	},
}

var messageLatestCmd = &cobra.Command{
	Use:   "latest <thread-id>",
	Short: "Print the newest message of a thread (the assistant reply after a run)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		reply, found, err := a.managers.Messages.Process(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error while retrieving response: %w", err)
		}
		if !found {
			internal.PrintInfo(cmd.OutOrStdout(), "No messages found.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nAssistant: %s\n", reply)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(messageCmd)
	messageCmd.AddCommand(messageAddCmd, messageListCmd, messageLatestCmd)

	messageAddCmd.Flags().StringVar(&messageFileID, "file-id", "", "Attach an uploaded file")
	messageAddCmd.Flags().StringVar(&messageRole, "role", string(internal.RoleUser), "Message role")
}
