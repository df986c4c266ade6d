package cmd

import (
	"github.com/iksnae/assistant-runner/internal"
	"github.com/spf13/cobra"
)

var outlierValues []float64

// outliersCmd represents the outlier detection workflow
var outliersCmd = &cobra.Command{
	Use:   "outliers",
	Short: "Ask the outlier detection assistant to flag outliers in a number sequence",
	Long: `Post a sequence of numbers to the outlier detection assistant and print
the values it flags. Without --values a built-in sample sequence is used.

Create the assistant once with 'assistant-runner assistant create --task outliers'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		in := internal.WorkflowInput{AssistantID: a.cfg.Assistants.Outliers}
		if workflowAssistantID != "" {
			in.AssistantID = workflowAssistantID
		}
		if len(outlierValues) > 0 {
			in.Prompt = internal.OutlierPrompt(outlierValues)
		}
		return runWorkflow(cmd, a, internal.OutlierDetectionTask, in)
	},
}

func init() {
	rootCmd.AddCommand(outliersCmd)
	addWorkflowFlags(outliersCmd)
	outliersCmd.Flags().Float64SliceVar(&outlierValues, "values", nil, "Comma-separated numbers to inspect")
}
