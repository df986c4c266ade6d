package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// SampleScoresCSV is a small dataset shaped like the validation workflow input
const SampleScoresCSV = `repo_score,date,repo_name
0.82,2024-01-01,alpha
0.15,2024-01-02,beta
1.40,2024-01-03,gamma
`

// WriteFile writes content to name under dir and returns the full path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// WriteScoresCSV writes SampleScoresCSV into a temp dir and returns its path
func WriteScoresCSV(t *testing.T) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), "github_scores.csv", SampleScoresCSV)
}

// Chdir switches the working directory for the duration of the test
func Chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to chdir to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
	})
}

// ClearEnv unsets variables for the duration of the test
func ClearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("Failed to unset %s: %v", k, err)
		}
	}
}

// JSONUnmarshal unmarshals JSON for testing
func JSONUnmarshal(t *testing.T, data []byte, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}
}
