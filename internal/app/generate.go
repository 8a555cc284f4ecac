package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/jilgen/internal/ctxlog"
	"github.com/specialistvlad/jilgen/internal/generator"
	"github.com/specialistvlad/jilgen/internal/jil"
	"github.com/specialistvlad/jilgen/internal/output"
	"github.com/specialistvlad/jilgen/internal/prompt"
	"golang.org/x/sync/errgroup"
)

// generation is the shared state of one generate run.
type generation struct {
	builder   *prompt.Builder
	generator generator.Generator
	writer    *output.Writer
}

// runGenerate turns every input file into a generated DAG file. Files are
// processed concurrently, bounded by the worker count; the first failure
// cancels the remaining files.
func (a *App) runGenerate(ctx context.Context) error {
	runID := uuid.NewString()
	ctx = ctxlog.With(ctx, "run_id", runID)
	logger := ctxlog.FromContext(ctx)

	builder, err := prompt.Load(a.settings.Prompt.TemplatePath)
	if err != nil {
		return err
	}

	gen := a.generator
	if gen == nil {
		client, err := generator.NewClient(a.settings.GeneratorOptions())
		if err != nil {
			return fmt.Errorf("failed to create generator client: %w", err)
		}
		defer client.Close()
		gen = client
	}

	files, err := a.inputFiles()
	if err != nil {
		return err
	}

	names, err := a.outputNames(files)
	if err != nil {
		return err
	}

	run := &generation{
		builder:   builder,
		generator: gen,
		writer:    output.NewWriter(a.settings.Output.Dir, a.settings.Output.ShouldStripFences()),
	}

	logger.Info("🚀 Starting generation.", "files", len(files), "workers", a.config.WorkerCount)
	start := time.Now()

	written := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.WorkerCount)
	for i, file := range files {
		name := names[i]
		g.Go(func() error {
			path, err := run.generateFile(gctx, file, name)
			if err != nil {
				return err
			}
			written[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	for _, path := range written {
		fmt.Fprintf(a.outW, "Generated DAG written to: %s\n", path)
	}
	logger.Info("🏁 Generation finished.", "files", len(files), "duration", time.Since(start))
	return nil
}

// outputNames maps every input file to its output file name. A single input
// uses the configured file name; inputs found in a directory keep their path
// relative to it. Two inputs that would share an output file are an error.
func (a *App) outputNames(files []string) ([]string, error) {
	if len(files) == 1 {
		return []string{a.settings.Output.FileName}, nil
	}

	names := make([]string, len(files))
	owners := make(map[string]string, len(files))
	for i, file := range files {
		name := output.RelFileName(a.config.InputPath, file)
		if prev, ok := owners[name]; ok {
			return nil, fmt.Errorf("%w: %s and %s both map to %s", ErrDuplicateOutput, prev, file, name)
		}
		owners[name] = file
		names[i] = name
	}
	return names, nil
}

// generateFile runs parse, prompt, generate and write for a single input.
func (r *generation) generateFile(ctx context.Context, file, name string) (string, error) {
	logger := ctxlog.FromContext(ctx).With("path", file)

	res, err := jil.ParseFile(file)
	if err != nil {
		return "", err
	}
	logger.Debug("Parsed JIL file.", "jobs", len(res.Jobs))

	text, err := r.builder.Build(res)
	if err != nil {
		return "", fmt.Errorf("failed to build prompt for %s: %w", file, err)
	}

	code, err := r.generator.Generate(ctx, text)
	if err != nil {
		return "", fmt.Errorf("failed to generate DAG for %s: %w", file, err)
	}

	path, err := r.writer.Write(name, code)
	if err != nil {
		return "", err
	}
	logger.Info("DAG written.", "output", path, "jobs", len(res.Jobs))
	return path, nil
}
