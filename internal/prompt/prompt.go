// Package prompt turns parsed JIL jobs into the text request sent to the
// code generator.
package prompt

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/specialistvlad/jilgen/internal/jil"
)

// Placeholder is replaced by the JSON encoding of the parsed jobs.
const Placeholder = "{{parsed_jil_json}}"

// ErrMissingPlaceholder is returned for a template that has nowhere to put the jobs.
var ErrMissingPlaceholder = errors.New("prompt template does not contain " + Placeholder)

//go:embed templates/autosys_to_airflow_dag.txt
var defaultTemplate string

// Builder renders prompts from a single template.
type Builder struct {
	template string
}

// New creates a Builder for templateText.
func New(templateText string) (*Builder, error) {
	if !strings.Contains(templateText, Placeholder) {
		return nil, ErrMissingPlaceholder
	}
	return &Builder{template: templateText}, nil
}

// Default returns a Builder for the template compiled into the binary.
func Default() *Builder {
	return &Builder{template: defaultTemplate}
}

// Load reads a template file. An empty path selects the built-in template.
func Load(path string) (*Builder, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt template %s: %w", path, err)
	}
	b, err := New(string(data))
	if err != nil {
		return nil, fmt.Errorf("invalid prompt template %s: %w", path, err)
	}
	return b, nil
}

// Build embeds res into the template.
func (b *Builder) Build(res *jil.Result) (string, error) {
	encoded, err := jil.EncodeString(res, jil.FormatJSON)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(b.template, Placeholder, strings.TrimSuffix(encoded, "\n")), nil
}
