package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/jilgen/internal/ctxlog"
	"github.com/specialistvlad/jilgen/internal/fsutil"
	"github.com/specialistvlad/jilgen/internal/jil"
	"github.com/specialistvlad/jilgen/internal/prompt"
	"github.com/specialistvlad/jilgen/internal/server"
)

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command)
	defer a.logger.Debug("App.Run method finished.")

	switch a.config.Command {
	case CommandParse:
		return a.runParse(ctx)
	case CommandPrompt:
		return a.runPrompt(ctx)
	case CommandGenerate:
		return a.runGenerate(ctx)
	case CommandServe:
		return server.New(a.logger).ListenAndServe(ctx, a.config.ListenAddr)
	default:
		return fmt.Errorf("unknown command %q", a.config.Command)
	}
}

// inputFiles resolves the configured input path into JIL files.
func (a *App) inputFiles() ([]string, error) {
	files, err := fsutil.FindFiles(a.config.InputPath, inputExtensions...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoInputFiles, a.config.InputPath)
	}
	a.logger.Debug("Discovered JIL files.", "count", len(files))
	return files, nil
}

// runParse prints the parsed jobs of every input file. Several files
// produce one document per file, in path order.
func (a *App) runParse(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	format, err := jil.ParseFormat(a.config.Format)
	if err != nil {
		return err
	}
	files, err := a.inputFiles()
	if err != nil {
		return err
	}

	for i, file := range files {
		res, err := jil.ParseFile(file)
		if err != nil {
			return err
		}
		logger.Info("Parsed JIL file.", "path", file, "jobs", len(res.Jobs))

		if i > 0 && format == jil.FormatYAML {
			fmt.Fprintln(a.outW, "---")
		}
		if err := jil.Encode(a.outW, res, format); err != nil {
			return err
		}
	}
	return nil
}

// runPrompt prints the rendered prompt for every input file without
// calling the generator.
func (a *App) runPrompt(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	builder, err := prompt.Load(a.settings.Prompt.TemplatePath)
	if err != nil {
		return err
	}
	files, err := a.inputFiles()
	if err != nil {
		return err
	}

	for _, file := range files {
		res, err := jil.ParseFile(file)
		if err != nil {
			return err
		}
		text, err := builder.Build(res)
		if err != nil {
			return fmt.Errorf("failed to build prompt for %s: %w", file, err)
		}
		logger.Debug("Prompt built.", "path", file, "jobs", len(res.Jobs), "bytes", len(text))

		if len(files) > 1 {
			fmt.Fprintf(a.outW, "==> %s <==\n", file)
		}
		fmt.Fprintln(a.outW, text)
	}
	return nil
}
