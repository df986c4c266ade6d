package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/assistant-runner/internal"
)

// JSONLExporter writes a report as a single JSON line, so repeated runs can
// be appended to one file
type JSONLExporter struct{}

// Export exports a report to JSONL format
func (e *JSONLExporter) Export(report *internal.Report, w io.Writer) error {
	if err := json.NewEncoder(w).Encode(newDocument(report)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
