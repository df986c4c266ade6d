package export

import (
	"fmt"
	"io"

	"github.com/iksnae/assistant-runner/internal"
)

// MarkdownExporter exports reports in Markdown format
type MarkdownExporter struct{}

// Export exports a report to Markdown format
func (e *MarkdownExporter) Export(report *internal.Report, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# %s\n\n", report.Task)

	if report.AssistantName != "" {
		_, _ = fmt.Fprintf(w, "**Assistant:** %s (`%s`)  \n", report.AssistantName, report.AssistantID)
	} else {
		_, _ = fmt.Fprintf(w, "**Assistant:** `%s`  \n", report.AssistantID)
	}
	if report.FileID != "" {
		_, _ = fmt.Fprintf(w, "**File:** `%s`  \n", report.FileID)
	}
	_, _ = fmt.Fprintf(w, "**Thread:** `%s`  \n", report.ThreadID)
	_, _ = fmt.Fprintf(w, "**Run:** `%s` (%s)  \n", report.RunID, report.Status)
	_, _ = fmt.Fprintf(w, "**Correlation ID:** `%s`\n\n", report.CorrelationID)

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Reply\n\n")

	if !report.ReplyFound {
		_, err := fmt.Fprintf(w, "_No messages found._\n")
		return err
	}
	_, err := fmt.Fprintf(w, "%s\n", report.Reply)
	return err
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
