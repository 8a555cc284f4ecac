package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/jilgen/internal/app"
	"github.com/specialistvlad/jilgen/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const usageText = `
jilgen - Convert AutoSys JIL job definitions into Airflow DAGs.

Usage:
  jilgen <command> [options] [JIL_PATH]

Commands:
  parse      Print the parsed jobs of JIL_PATH as JSON or YAML.
  prompt     Print the generation prompt built from JIL_PATH.
  generate   Generate a DAG file for every JIL file in JIL_PATH.
  serve      Serve the parser over HTTP.

Arguments:
  JIL_PATH
    Path to a single JIL file or a directory containing .jil/.job files.

Options:
`

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	if len(args) == 0 || isHelp(args[0]) {
		printUsage(output, newFlagSet("jilgen", output, &flagValues{}))
		return nil, true, nil
	}

	command := app.Command(strings.ToLower(args[0]))
	if !isKnownCommand(command) {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q; run 'jilgen -h' for usage", args[0])}
	}

	values := &flagValues{}
	flagSet := newFlagSet("jilgen "+string(command), output, values)
	if err := flagSet.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.", "command", command)

	set := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })

	path := values.input
	rest := flagSet.Args()
	if path == "" && len(rest) > 0 {
		path, rest = rest[0], rest[1:]
	}
	if len(rest) > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments %q; options must come before JIL_PATH", rest)}
	}
	if command.NeedsInput() && path == "" {
		slog.Debug("No JIL path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(values.logFormat)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(values.logLevel)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if values.maxTokens < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid max-tokens: must not be negative"}
	}
	slog.Debug("CLI parameter validation complete.")

	cfg, err := app.NewConfig(app.Config{
		Command:        command,
		InputPath:      path,
		ConfigPath:     values.configPath,
		ConfigRequired: set["config"],
		LogFormat:      logFormat,
		LogLevel:       logLevel,
		WorkerCount:    values.workers,
		Format:         strings.ToLower(values.format),
		ListenAddr:     values.listen,
		Overrides: config.Settings{
			Generator: config.Generator{
				Endpoint:  values.endpoint,
				Model:     values.model,
				MaxTokens: values.maxTokens,
			},
			Prompt: config.Prompt{TemplatePath: values.template},
			Output: config.Output{Dir: values.outputDir},
		},
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "command", cfg.Command)
	return cfg, false, nil
}

// flagValues receives the parsed flag values.
type flagValues struct {
	input      string
	configPath string
	logFormat  string
	logLevel   string
	workers    int
	format     string
	listen     string
	outputDir  string
	template   string
	endpoint   string
	model      string
	maxTokens  int
}

func newFlagSet(name string, output io.Writer, v *flagValues) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() { printUsage(output, fs) }

	fs.StringVar(&v.input, "input", "", "Path to the JIL file or directory.")
	fs.StringVar(&v.input, "i", "", "Path to the JIL file or directory (shorthand).")
	fs.StringVar(&v.configPath, "config", config.DefaultPath, "Path to the HCL settings file.")
	fs.StringVar(&v.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	fs.StringVar(&v.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	fs.IntVar(&v.workers, "workers", 4, "Number of files generated concurrently.")
	fs.StringVar(&v.format, "format", "json", "Output format for 'parse'. Options: 'json' or 'yaml'.")
	fs.StringVar(&v.listen, "listen", ":8080", "Listen address for 'serve'.")
	fs.StringVar(&v.outputDir, "output-dir", "", "Directory for generated DAG files (overrides settings).")
	fs.StringVar(&v.template, "template", "", "Prompt template file (overrides settings).")
	fs.StringVar(&v.endpoint, "endpoint", "", "Generator endpoint URL (overrides settings).")
	fs.StringVar(&v.model, "model", "", "Generator model ID (overrides settings).")
	fs.IntVar(&v.maxTokens, "max-tokens", 0, "Maximum tokens to generate (overrides settings).")
	return fs
}

func printUsage(output io.Writer, fs *flag.FlagSet) {
	fmt.Fprint(output, usageText)
	fs.PrintDefaults()
}

func isHelp(arg string) bool {
	switch arg {
	case "-h", "-help", "--help", "help":
		return true
	}
	return false
}

func isKnownCommand(c app.Command) bool {
	for _, known := range app.Commands {
		if c == known {
			return true
		}
	}
	return false
}
