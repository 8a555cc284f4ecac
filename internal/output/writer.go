// Package output persists generated pipeline code to disk.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultFileName is used when a single input is generated without an explicit name.
const DefaultFileName = "autosys_chain_dag_generated.py"

// fenceOpenRegex matches an opening code fence with an optional language tag.
var fenceOpenRegex = regexp.MustCompile("^```[\\w+-]*\\s*$")

// Writer saves generated files into a directory.
type Writer struct {
	Dir         string
	StripFences bool
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string, stripFences bool) *Writer {
	return &Writer{Dir: dir, StripFences: stripFences}
}

// Write stores content under name inside the writer's directory and returns
// the full path of the file. name may contain subdirectories.
func (w *Writer) Write(name, content string) (string, error) {
	path := filepath.Join(w.Dir, name)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	if w.StripFences {
		if code, ok := ExtractCode(content); ok {
			content = code
		}
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// ExtractCode returns the body of the first fenced code block in text. An
// unterminated fence runs to the end of the text.
func ExtractCode(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	start := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if start < 0 {
			if fenceOpenRegex.MatchString(trimmed) {
				start = i + 1
			}
			continue
		}
		if trimmed == "```" {
			return joinCode(lines[start:i]), true
		}
	}
	if start < 0 {
		return "", false
	}
	return joinCode(lines[start:]), true
}

func joinCode(lines []string) string {
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}

// FileName derives the output name for an input file: chain.jil -> chain_dag.py.
func FileName(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "_dag.py"
}

// RelFileName derives the output name for an input found under root. The
// input's directory relative to root is kept, so team_a/chain.jil becomes
// team_a/chain_dag.py. When root is the input itself only the base name is used.
func RelFileName(root, inputPath string) string {
	rel, err := filepath.Rel(root, inputPath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return FileName(inputPath)
	}
	return filepath.Join(filepath.Dir(rel), FileName(rel))
}
