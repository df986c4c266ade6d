package cmd

import (
	"github.com/iksnae/assistant-runner/internal"
	"github.com/spf13/cobra"
)

var validateFile string

// validateCmd represents the numerical validation workflow
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that every repo_score in a CSV lies between 0 and 1",
	Long: `Upload a CSV with repo_score, date and repo_name columns and ask the
numerical validation assistant whether every repo_score is within [0, 1].

The assistant answers with a JSON object holding "valid" and "failed_values".
Create the assistant once with 'assistant-runner assistant create --task validation'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		in := internal.WorkflowInput{
			AssistantID: a.cfg.Assistants.Validation,
			FilePath:    a.cfg.DatasetPath,
		}
		if workflowAssistantID != "" {
			in.AssistantID = workflowAssistantID
		}
		if validateFile != "" {
			in.FilePath = validateFile
		}
		return runWorkflow(cmd, a, internal.NumericalValidationTask, in)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addWorkflowFlags(validateCmd)
	validateCmd.Flags().StringVar(&validateFile, "file", "", "CSV dataset to validate (default from config: "+internal.DefaultDatasetPath+")")
}
