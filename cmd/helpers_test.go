package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/assistant-runner/internal"
	"github.com/iksnae/assistant-runner/testutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var configEnv = []string{
	"API_KEY", "OPENAI_API_KEY", "ASSISTANT_BASE_URL", "ASSISTANT_MODEL",
	"VALIDATION_ASSISTANT_ID", "OUTLIER_ASSISTANT_ID",
	"ASSISTANT_POLL_TIMEOUT", "ASSISTANT_REQUESTS_PER_SECOND",
}

// setupFakeClient isolates config and routes every command to a shared FakeClient
func setupFakeClient(t *testing.T) *internal.FakeClient {
	t.Helper()
	testutil.ClearEnv(t, configEnv...)
	testutil.Chdir(t, t.TempDir())
	t.Setenv("API_KEY", "sk-test")

	fake := internal.NewFakeClient()
	original := newClient
	newClient = func(cfg *internal.Config) (internal.Client, error) {
		return fake, nil
	}
	t.Cleanup(func() { newClient = original })
	return fake
}

// resetFlags restores every flag in the tree to its default so runs do not leak state
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			def := strings.Trim(f.DefValue, "[]")
			var vals []string
			if def != "" {
				vals = strings.Split(def, ",")
			}
			_ = sv.Replace(vals)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
