package cmd

import (
	"fmt"

	"github.com/iksnae/assistant-runner/internal"
	"github.com/spf13/cobra"
)

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "Upload and list files",
}

var fileUploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload a file for use by assistants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		var id string
		err = internal.ShowProgress(cmd.Context(), fmt.Sprintf("Uploading %s", args[0]), func() error {
			var uploadErr error
			id, uploadErr = a.managers.Files.Upload(cmd.Context(), args[0])
			return uploadErr
		})
		if err != nil {
			return fmt.Errorf("error while uploading file: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

var fileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		files, err := a.managers.Files.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("error while listing files: %w", err)
		}
		printFiles(cmd.OutOrStdout(), files)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fileCmd)
	fileCmd.AddCommand(fileUploadCmd, fileListCmd)
}
