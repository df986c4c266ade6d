package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/assistant-runner/internal"
	"github.com/iksnae/assistant-runner/internal/openaiclient"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// newClient builds the remote client; tests replace it with a fake
var newClient = func(cfg *internal.Config) (internal.Client, error) {
	return openaiclient.New(openaiclient.Options{
		APIKey:            cfg.APIKey,
		BaseURL:           cfg.BaseURL,
		RequestTimeout:    cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
}

// app is the dependency graph shared by every command invocation
type app struct {
	cfg      *internal.Config
	managers *internal.Managers
}

// loadApp reads configuration and wires the managers. The API key is checked
// before any client is built.
func loadApp() (*app, error) {
	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := newClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	return &app{
		cfg:      cfg,
		managers: internal.NewManagers(client, cfg.Model),
	}, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "assistant-runner",
	Short: "Run hosted assistants against threads from the command line",
	Long: `A CLI for driving hosted assistants: create assistant configurations,
open threads, post messages and files, start runs and read the replies.

Two workflows are built in:
  • validate   check that every repo_score in a CSV lies between 0 and 1
  • outliers   flag outliers in a sequence of numbers

Quick Start:
  export API_KEY=...
  assistant-runner assistant create --task validation   # note the printed ID
  assistant-runner validate --assistant-id <id> --file data.csv
  assistant-runner outliers --assistant-id <id>`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		internal.PrintError(os.Stderr, fmt.Sprintf("Error: %v", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (default ./"+internal.DefaultConfigFile+" if present)")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
