package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/jilgen/internal/config"
	"github.com/specialistvlad/jilgen/internal/ctxlog"
	"github.com/specialistvlad/jilgen/internal/generator"
)

// inputExtensions are the file extensions picked up when the input is a directory.
var inputExtensions = []string{".jil", ".job"}

// ErrNoInputFiles is returned when an input directory holds no JIL files.
var ErrNoInputFiles = errors.New("no .jil or .job files found")

// ErrDuplicateOutput is returned when two input files would be generated
// into the same output file.
var ErrDuplicateOutput = errors.New("input files share an output file name")

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	settings  config.Settings
	generator generator.Generator
}

// NewApp is the constructor for the main application. Results go to outW
// and logs to logW. gen may be nil, in which case the generate command
// builds an HTTP client from the merged settings.
func NewApp(outW, logW io.Writer, appConfig *Config, gen generator.Generator) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	fileSettings, err := config.Load(ctx, appConfig.ConfigPath, appConfig.ConfigRequired)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	settings := config.Default().Merge(fileSettings).Merge(appConfig.Overrides)
	logger.Debug("Settings merged.", "settings_file", appConfig.ConfigPath, "output_dir", settings.Output.Dir)

	return &App{
		outW:      outW,
		logger:    logger,
		config:    appConfig,
		settings:  settings,
		generator: gen,
	}, nil
}

// Settings returns the merged settings. This is primarily for testing.
func (a *App) Settings() config.Settings {
	return a.settings
}
