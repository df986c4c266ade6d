package cmd

import (
	"fmt"

	"github.com/iksnae/assistant-runner/internal"
	"github.com/spf13/cobra"
)

var (
	assistantTask         string
	assistantName         string
	assistantInstructions string
	assistantTools        []string
	assistantListLimit    int
	assistantListOrder    string
)

var assistantCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Manage assistant configurations",
}

var assistantCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an assistant",
	Long: `Create an assistant, either from a built-in task (--task validation|outliers)
or from an explicit --name, --instructions and --tool list.

Store the printed ID in your config or pass it with --assistant-id to the workflows.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, instructions, tools := assistantName, assistantInstructions, []internal.Tool(nil)
		if assistantTask != "" {
			task, err := taskByName(assistantTask)
			if err != nil {
				return err
			}
			name, instructions, tools = task.AssistantName, task.Instructions, task.Tools
		}
		if assistantName != "" {
			name = assistantName
		}
		if assistantInstructions != "" {
			instructions = assistantInstructions
		}
		if cmd.Flags().Changed("tool") || tools == nil {
			tools = nil
			for _, t := range assistantTools {
				tool, err := internal.ParseTool(t)
				if err != nil {
					return err
				}
				tools = append(tools, tool)
			}
		}

		a, err := loadApp()
		if err != nil {
			return err
		}
		created, err := a.managers.Assistants.Create(cmd.Context(), name, instructions, tools)
		if err != nil {
			return fmt.Errorf("error while creating assistant: %w", err)
		}
		internal.PrintSuccess(fmt.Sprintf("Created assistant %s", created.ID))
		printAssistant(cmd.OutOrStdout(), created)
		return nil
	},
}

var assistantListCmd = &cobra.Command{
	Use:   "list",
	Short: "List assistants, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		order := internal.ListOrder(assistantListOrder)
		if order != internal.OrderAsc && order != internal.OrderDesc {
			return fmt.Errorf("invalid --order %q (use asc or desc)", assistantListOrder)
		}
		a, err := loadApp()
		if err != nil {
			return err
		}
		assistants, err := a.managers.Assistants.List(cmd.Context(), internal.ListOptions{Limit: assistantListLimit, Order: order})
		if err != nil {
			return fmt.Errorf("error while listing assistants: %w", err)
		}
		printAssistants(cmd.OutOrStdout(), assistants)
		return nil
	},
}

var assistantGetCmd = &cobra.Command{
	Use:   "get <assistant-id>",
	Short: "Show an assistant by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		assistant, err := a.managers.Assistants.Retrieve(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error while retrieving assistant details: %w", err)
		}
		printAssistant(cmd.OutOrStdout(), assistant)
		return nil
	},
}

var assistantFindCmd = &cobra.Command{
	Use:   "find <name>",
	Short: "Find the newest assistant with an exact name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		assistant, err := a.managers.Assistants.RetrieveByName(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error while finding assistant: %w", err)
		}
		printAssistant(cmd.OutOrStdout(), assistant)
		return nil
	},
}

var assistantDeleteCmd = &cobra.Command{
	Use:   "delete <assistant-id>",
	Short: "Delete an assistant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		if err := a.managers.Assistants.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("error while deleting assistant: %w", err)
		}
		internal.PrintSuccess(fmt.Sprintf("Deleted assistant %s", args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(assistantCmd)
	assistantCmd.AddCommand(assistantCreateCmd, assistantListCmd, assistantGetCmd, assistantFindCmd, assistantDeleteCmd)

	assistantCreateCmd.Flags().StringVar(&assistantTask, "task", "", "Built-in task to create the assistant for (validation, outliers)")
	assistantCreateCmd.Flags().StringVar(&assistantName, "name", "", "Assistant name")
	assistantCreateCmd.Flags().StringVar(&assistantInstructions, "instructions", "", "Assistant instructions")
	assistantCreateCmd.Flags().StringSliceVar(&assistantTools, "tool", []string{string(internal.ToolCodeInterpreter)}, "Enabled tools (code_interpreter, file_search)")

	assistantListCmd.Flags().IntVar(&assistantListLimit, "limit", internal.DefaultListLimit, "Maximum number of assistants to list")
	assistantListCmd.Flags().StringVar(&assistantListOrder, "order", string(internal.OrderDesc), "Sort order by creation time (asc, desc)")
}
