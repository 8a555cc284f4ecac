package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/jilgen/internal/generator"
	"github.com/specialistvlad/jilgen/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func boolPtr(b bool) *bool { return &b }

func TestLoad_FullFile(t *testing.T) {
	t.Setenv("JILGEN_TEST_KEY", "from-env")
	path := writeSettings(t, `
generator {
  endpoint          = "http://localhost:9000/invoke"
  model             = "claude-test"
  api_key           = env.JILGEN_TEST_KEY
  anthropic_version = "2023-06-01"
  max_tokens        = 2048
  timeout           = "45s"
}

prompt {
  template = "templates/custom.txt"
}

output {
  dir          = "dags"
  filename     = "chain.py"
  strip_fences = false
}
`)

	s, err := Load(context.Background(), path, true)
	require.NoError(t, err)

	expected := Settings{
		Generator: Generator{
			Endpoint:         "http://localhost:9000/invoke",
			Model:            "claude-test",
			APIKey:           "from-env",
			AnthropicVersion: "2023-06-01",
			MaxTokens:        2048,
			Timeout:          45 * time.Second,
		},
		Prompt: Prompt{TemplatePath: "templates/custom.txt"},
		Output: Output{Dir: "dags", FileName: "chain.py", StripFences: boolPtr(false)},
	}
	if diff := cmp.Diff(expected, s); diff != "" {
		t.Errorf("Settings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	path := writeSettings(t, `generator { endpoint = "http://x" }`)

	s, err := Load(context.Background(), path, true)
	require.NoError(t, err)
	assert.Equal(t, Settings{Generator: Generator{Endpoint: "http://x"}}, s)
}

func TestLoad_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.hcl")

	s, err := Load(context.Background(), missing, false)
	require.NoError(t, err)
	assert.Equal(t, Settings{}, s)

	_, err = Load(context.Background(), missing, true)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		errPart string
	}{
		{name: "syntax error", content: `generator {`, errPart: "failed to parse"},
		{name: "unknown block", content: `generatr {}`, errPart: "failed to decode"},
		{name: "unknown attribute", content: `output { folder = "x" }`, errPart: "failed to decode"},
		{name: "bad duration", content: `generator { timeout = "soon" }`, errPart: "generator timeout"},
		{name: "missing env var", content: `generator { api_key = env.JILGEN_SURELY_UNSET_VAR }`, errPart: "failed to decode"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSettings(t, tc.content)
			_, err := Load(context.Background(), path, true)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errPart)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestDefault(t *testing.T) {
	d := Default()
	assert.Equal(t, generator.DefaultMaxTokens, d.Generator.MaxTokens)
	assert.Equal(t, generator.DefaultTimeout, d.Generator.Timeout)
	assert.Equal(t, output.DefaultFileName, d.Output.FileName)
	assert.True(t, d.Output.ShouldStripFences())
}

func TestMerge_Precedence(t *testing.T) {
	file := Settings{
		Generator: Generator{Endpoint: "http://file", MaxTokens: 100},
		Output:    Output{Dir: "file-dir", StripFences: boolPtr(false)},
	}
	flags := Settings{
		Generator: Generator{Model: "flag-model", MaxTokens: 200},
		Output:    Output{Dir: "flag-dir"},
	}

	merged := Default().Merge(file).Merge(flags)

	assert.Equal(t, "http://file", merged.Generator.Endpoint)
	assert.Equal(t, "flag-model", merged.Generator.Model)
	assert.Equal(t, 200, merged.Generator.MaxTokens)
	assert.Equal(t, generator.DefaultAnthropicVersion, merged.Generator.AnthropicVersion)
	assert.Equal(t, "flag-dir", merged.Output.Dir)
	assert.Equal(t, output.DefaultFileName, merged.Output.FileName)
	assert.False(t, merged.Output.ShouldStripFences())

	opts := merged.GeneratorOptions()
	assert.Equal(t, "http://file", opts.Endpoint)
	assert.Equal(t, 200, opts.MaxTokens)
}
