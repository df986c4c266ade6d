package export

import (
	"fmt"
	"io"

	"github.com/iksnae/assistant-runner/internal"
)

// TextExporter prints the assistant reply for a terminal
type TextExporter struct{}

// Export writes the reply, or a notice when the thread had no messages
func (e *TextExporter) Export(report *internal.Report, w io.Writer) error {
	if !report.ReplyFound {
		_, err := fmt.Fprintln(w, "No messages found.")
		return err
	}
	_, err := fmt.Fprintf(w, "\nAssistant: %s\n", report.Reply)
	return err
}

// Extension returns the file extension for this format
func (e *TextExporter) Extension() string {
	return "txt"
}
