package export

import (
	"io"

	"github.com/iksnae/assistant-runner/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter writes the same document as JSONExporter as YAML; empty
// reply and resource IDs are left out
type YAMLExporter struct{}

func (e *YAMLExporter) Export(report *internal.Report, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(report)); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

func (e *YAMLExporter) Extension() string {
	return "yaml"
}
