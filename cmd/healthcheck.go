package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/assistant-runner/internal"
	"github.com/spf13/cobra"
)

var (
	healthcheckVerbose bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check configuration and API access",
	Long: `Check that assistant-runner is ready to run workflows by verifying:
  • Configuration loading
  • API credential presence
  • API reachability (lists one assistant)
  • Configured assistant IDs
  • Dataset file for the validation workflow`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, sectionStyle.Render("🔍 Assistant Runner Health Check"))
		fmt.Fprintln(out)

		// Step 1: Load configuration
		fmt.Fprintln(out, infoStyle.Render("Step 1: Loading configuration..."))
		cfg, err := internal.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Failed to load configuration:"), err)
			return err
		}
		fmt.Fprintln(out, successStyle.Render("✅ Configuration loaded"))
		if healthcheckVerbose {
			fmt.Fprintf(out, "   Model: %s\n", cfg.Model)
			fmt.Fprintf(out, "   Poll interval: %s\n", cfg.PollInterval)
			if cfg.PollTimeout > 0 {
				fmt.Fprintf(out, "   Poll timeout: %s\n", cfg.PollTimeout)
			} else {
				fmt.Fprintf(out, "   Poll timeout: none\n")
			}
			if cfg.BaseURL != "" {
				fmt.Fprintf(out, "   Base URL: %s\n", cfg.BaseURL)
			}
		}
		fmt.Fprintln(out)

		// Step 2: Credential
		fmt.Fprintln(out, infoStyle.Render("Step 2: Checking API credential..."))
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Configuration invalid:"), err)
			return err
		}
		fmt.Fprintln(out, successStyle.Render("✅ API key is set"))
		fmt.Fprintln(out)

		// Step 3: Reach the API
		fmt.Fprintln(out, infoStyle.Render("Step 3: Contacting the API..."))
		client, err := newClient(cfg)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Failed to create client:"), err)
			return err
		}
		managers := internal.NewManagers(client, cfg.Model)
		if _, err := managers.Assistants.List(cmd.Context(), internal.ListOptions{Limit: 1}); err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ API request failed:"), err)
			return err
		}
		fmt.Fprintln(out, successStyle.Render("✅ API reachable"))
		fmt.Fprintln(out)

		// Step 4: Assistants
		fmt.Fprintln(out, infoStyle.Render("Step 4: Checking configured assistants..."))
		problems := 0
		for _, entry := range []struct{ label, id string }{
			{"validation", cfg.Assistants.Validation},
			{"outliers", cfg.Assistants.Outliers},
		} {
			if entry.id == "" {
				fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("⚠️  No %s assistant configured", entry.label)))
				continue
			}
			a, err := managers.Assistants.Retrieve(cmd.Context(), entry.id)
			if err != nil {
				problems++
				fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("❌ %s assistant %s:", entry.label, entry.id)), err)
				continue
			}
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ %s assistant: %s (%s)", entry.label, a.Name, a.ID)))
		}
		fmt.Fprintln(out)

		// Step 5: Dataset
		fmt.Fprintln(out, infoStyle.Render("Step 5: Checking dataset..."))
		if info, err := os.Stat(cfg.DatasetPath); err != nil {
			fmt.Fprintln(out, warningStyle.Render("⚠️  Dataset not found:"), cfg.DatasetPath)
		} else {
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Dataset %s (%d bytes)", cfg.DatasetPath, info.Size())))
		}
		fmt.Fprintln(out)

		fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
		fmt.Fprintln(out)
		if problems > 0 {
			fmt.Fprintln(out, errorStyle.Render("❌ Health check failed"))
			return fmt.Errorf("health check failed: %d configured assistant(s) unavailable", problems)
		}
		fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVar(&healthcheckVerbose, "details", false, "Show detailed diagnostic information")
}
