package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Formatter is the interface for serializing report documents.
type Formatter interface {
	// Format serializes a document. Returns the serialized string or an error.
	Format(doc interface{}) (string, error)

	// FormatToWriter writes serialized output directly to a writer.
	FormatToWriter(w io.Writer, doc interface{}) error
}

// NewFormatter returns the formatter for a format.
func NewFormatter(f Format) Formatter {
	if f == FormatYAML {
		return &YAMLFormatter{}
	}
	return &JSONFormatter{}
}

// JSONFormatter serializes documents as indented JSON.
type JSONFormatter struct{}

// Format serializes a document as JSON.
func (f *JSONFormatter) Format(doc interface{}) (string, error) {
	var buf bytes.Buffer
	if err := f.FormatToWriter(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatToWriter writes JSON output to a writer.
func (f *JSONFormatter) FormatToWriter(w io.Writer, doc interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// YAMLFormatter serializes documents as YAML.
type YAMLFormatter struct{}

// Format serializes a document as YAML.
func (f *YAMLFormatter) Format(doc interface{}) (string, error) {
	var buf bytes.Buffer
	if err := f.FormatToWriter(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatToWriter writes YAML output to a writer.
func (f *YAMLFormatter) FormatToWriter(w io.Writer, doc interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return nil
}
