package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/jilgen/internal/config"
	"github.com/specialistvlad/jilgen/internal/jil"
)

// Command names the operation an App performs.
type Command string

const (
	CommandParse    Command = "parse"
	CommandPrompt   Command = "prompt"
	CommandGenerate Command = "generate"
	CommandServe    Command = "serve"
)

// Commands lists every supported command in help order.
var Commands = []Command{CommandParse, CommandPrompt, CommandGenerate, CommandServe}

// NeedsInput reports whether the command reads a JIL path.
func (c Command) NeedsInput() bool {
	return c != CommandServe
}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command   Command
	InputPath string // .jil file or directory

	ConfigPath     string
	ConfigRequired bool // the settings file was named explicitly

	LogFormat   string
	LogLevel    string
	WorkerCount int
	Format      string
	ListenAddr  string

	// Overrides holds settings given on the command line. Non-zero fields
	// win over the settings file.
	Overrides config.Settings
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	known := false
	for _, c := range Commands {
		if cfg.Command == c {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}
	if cfg.Command.NeedsInput() && cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("worker count must be at least 1, got %d", cfg.WorkerCount)
	}
	if _, err := jil.ParseFormat(cfg.Format); err != nil {
		return nil, err
	}
	if cfg.Command == CommandServe && cfg.ListenAddr == "" {
		return nil, errors.New("ListenAddr is required for the serve command")
	}
	return &cfg, nil
}
