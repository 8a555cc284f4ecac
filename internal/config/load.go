package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/jilgen/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// DefaultPath is the settings file read when none is named explicitly.
const DefaultPath = "jilgen.hcl"

// hclSettingsFile is the top-level structure of a settings file for decoding.
type hclSettingsFile struct {
	Generator *hclGenerator `hcl:"generator,block"`
	Prompt    *hclPrompt    `hcl:"prompt,block"`
	Output    *hclOutput    `hcl:"output,block"`
}

type hclGenerator struct {
	Endpoint         string `hcl:"endpoint,optional"`
	Model            string `hcl:"model,optional"`
	APIKey           string `hcl:"api_key,optional"`
	AnthropicVersion string `hcl:"anthropic_version,optional"`
	MaxTokens        int    `hcl:"max_tokens,optional"`
	Timeout          string `hcl:"timeout,optional"`
}

type hclPrompt struct {
	Template string `hcl:"template,optional"`
}

type hclOutput struct {
	Dir         string `hcl:"dir,optional"`
	FileName    string `hcl:"filename,optional"`
	StripFences *bool  `hcl:"strip_fences,optional"`
}

// Load reads the settings file at path and returns only the values it sets,
// ready to be merged over Default(). A missing file yields empty settings
// unless required is true.
func Load(ctx context.Context, path string, required bool) (Settings, error) {
	logger := ctxlog.FromContext(ctx)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			logger.Debug("No settings file found, using defaults.", "path", path)
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("error accessing settings file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Settings{}, fmt.Errorf("failed to parse settings file %s: %w", path, diags)
	}

	var root hclSettingsFile
	diags = gohcl.DecodeBody(file.Body, envEvalContext(), &root)
	if diags.HasErrors() {
		return Settings{}, fmt.Errorf("failed to decode settings file %s: %w", path, diags)
	}

	settings, err := translate(&root)
	if err != nil {
		return Settings{}, fmt.Errorf("invalid settings file %s: %w", path, err)
	}

	logger.Debug("Settings file loaded.", "path", path)
	return settings, nil
}

func translate(root *hclSettingsFile) (Settings, error) {
	var s Settings
	if g := root.Generator; g != nil {
		s.Generator = Generator{
			Endpoint:         g.Endpoint,
			Model:            g.Model,
			APIKey:           g.APIKey,
			AnthropicVersion: g.AnthropicVersion,
			MaxTokens:        g.MaxTokens,
		}
		if g.Timeout != "" {
			timeout, err := time.ParseDuration(g.Timeout)
			if err != nil {
				return Settings{}, fmt.Errorf("generator timeout: %w", err)
			}
			s.Generator.Timeout = timeout
		}
	}
	if p := root.Prompt; p != nil {
		s.Prompt.TemplatePath = p.Template
	}
	if o := root.Output; o != nil {
		s.Output = Output{Dir: o.Dir, FileName: o.FileName, StripFences: o.StripFences}
	}
	return s, nil
}

// envEvalContext exposes the process environment to settings expressions
// as the `env` object.
func envEvalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}
