package config

import (
	"time"

	"github.com/specialistvlad/jilgen/internal/generator"
	"github.com/specialistvlad/jilgen/internal/output"
)

// Settings is the merged configuration for prompt building, generation and
// output.
type Settings struct {
	Generator Generator
	Prompt    Prompt
	Output    Output
}

// Generator configures the remote text-generation endpoint.
type Generator struct {
	Endpoint         string
	Model            string
	APIKey           string
	AnthropicVersion string
	MaxTokens        int
	Timeout          time.Duration
}

// Prompt configures prompt rendering. An empty TemplatePath selects the
// built-in template.
type Prompt struct {
	TemplatePath string
}

// Output configures where generated code is written.
type Output struct {
	Dir         string
	FileName    string
	StripFences *bool
}

// Default returns the built-in settings.
func Default() Settings {
	strip := true
	return Settings{
		Generator: Generator{
			AnthropicVersion: generator.DefaultAnthropicVersion,
			MaxTokens:        generator.DefaultMaxTokens,
			Timeout:          generator.DefaultTimeout,
		},
		Output: Output{
			Dir:         "outputs",
			FileName:    output.DefaultFileName,
			StripFences: &strip,
		},
	}
}

// Merge returns s with every non-zero field of overlay applied on top.
func (s Settings) Merge(overlay Settings) Settings {
	g := &s.Generator
	o := overlay.Generator
	g.Endpoint = pick(g.Endpoint, o.Endpoint)
	g.Model = pick(g.Model, o.Model)
	g.APIKey = pick(g.APIKey, o.APIKey)
	g.AnthropicVersion = pick(g.AnthropicVersion, o.AnthropicVersion)
	g.MaxTokens = pick(g.MaxTokens, o.MaxTokens)
	g.Timeout = pick(g.Timeout, o.Timeout)

	s.Prompt.TemplatePath = pick(s.Prompt.TemplatePath, overlay.Prompt.TemplatePath)

	s.Output.Dir = pick(s.Output.Dir, overlay.Output.Dir)
	s.Output.FileName = pick(s.Output.FileName, overlay.Output.FileName)
	if overlay.Output.StripFences != nil {
		strip := *overlay.Output.StripFences
		s.Output.StripFences = &strip
	}
	return s
}

// ShouldStripFences reports whether generated output is unwrapped from a
// markdown code fence.
func (o Output) ShouldStripFences() bool {
	return o.StripFences == nil || *o.StripFences
}

// GeneratorOptions converts the generator settings into client options.
func (s Settings) GeneratorOptions() generator.Options {
	return generator.Options{
		Endpoint:         s.Generator.Endpoint,
		Model:            s.Generator.Model,
		APIKey:           s.Generator.APIKey,
		AnthropicVersion: s.Generator.AnthropicVersion,
		MaxTokens:        s.Generator.MaxTokens,
		Timeout:          s.Generator.Timeout,
	}
}

func pick[T comparable](base, overlay T) T {
	var zero T
	if overlay != zero {
		return overlay
	}
	return base
}
