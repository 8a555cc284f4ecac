// Package testutil provides helpers shared by the integration-style tests.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/jilgen/internal/app"
	"github.com/specialistvlad/jilgen/internal/generator"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteFiles creates a temporary directory holding files, keyed by their
// slash-separated relative path, and returns its root.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// HarnessResult holds the outcomes of an application run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// RunApp validates cfg, builds an App with gen injected and runs it. Debug
// logs are captured; set JILGEN_TEST_LOGS=true to print them.
func RunApp(ctx context.Context, t *testing.T, cfg app.Config, gen generator.Generator) *HarnessResult {
	t.Helper()

	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.Format == "" {
		cfg.Format = "json"
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = filepath.Join(t.TempDir(), "jilgen.hcl")
	}

	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &SafeBuffer{}
	logBuffer := &SafeBuffer{}

	result := &HarnessResult{}
	result.App, result.Err = app.NewApp(out, logBuffer, appConfig, gen)
	if result.Err == nil {
		result.Err = result.App.Run(ctx)
	}

	result.Output = out.String()
	result.LogOutput = logBuffer.String()
	if os.Getenv("JILGEN_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
	}
	return result
}
