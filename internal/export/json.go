package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/assistant-runner/internal"
)

// document is the structured form of a report: every Report field plus the
// wall-clock seconds the workflow took
type document struct {
	internal.Report `yaml:",inline"`
	DurationSeconds float64 `json:"duration_seconds" yaml:"duration_seconds"`
}

func newDocument(report *internal.Report) document {
	doc := document{Report: *report}
	if !report.StartedAt.IsZero() && report.FinishedAt.After(report.StartedAt) {
		doc.DurationSeconds = report.FinishedAt.Sub(report.StartedAt).Seconds()
	}
	return doc
}

// JSONExporter writes one indented JSON document per report, carrying the
// thread, run and reply IDs alongside the workflow duration
type JSONExporter struct{}

func (e *JSONExporter) Export(report *internal.Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newDocument(report))
}

func (e *JSONExporter) Extension() string {
	return "json"
}
