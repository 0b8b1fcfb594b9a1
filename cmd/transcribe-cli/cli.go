package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Nephrolytics-ai/transcribe-cli/pkg/app"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/config"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/logging"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/progress"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/storage"
	flags "github.com/jessevdk/go-flags"
)

const (
	programName = "transcribe-cli"

	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

type globalOptions struct {
	EnvFile  string `long:"env-file" default:".env" description:"Path of a .env file to load before reading the environment"`
	LogLevel string `long:"log-level" description:"Log level (debug, info, warn, error); overrides LOG_LEVEL"`
	Quiet    bool   `short:"q" long:"quiet" description:"Do not render the upload progress bar"`
}

type uploadCommand struct {
	InputFile string `long:"input-file" required:"true" description:"Path to audio file to upload"`
	Key       string `long:"key" description:"Custom key name for the S3 object (defaults to the input file name)"`
	Wait      bool   `long:"wait" description:"Wait for transcription to complete"`

	cli *cli
}

type fetchCommand struct {
	JobName    string `long:"job-name" required:"true" description:"Name of the Amazon Transcribe job"`
	OutputFile string `long:"output-file" description:"Custom path (file or directory) for the transcript text"`
	Wait       bool   `long:"wait" description:"Wait for transcription to complete if still in progress"`

	cli *cli
}

type depsFunc func(ctx context.Context, cfg config.Config, withUploader bool) (app.Deps, error)

type cli struct {
	stdout io.Writer
	stderr io.Writer
	opts   globalOptions
	ctx    context.Context

	newDeps depsFunc
	lookup  func(string) (string, bool)
}

func newCLI(stdout, stderr io.Writer) *cli {
	return &cli{
		stdout:  stdout,
		stderr:  stderr,
		newDeps: app.NewDeps,
		lookup:  os.LookupEnv,
	}
}

type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// run parses args, executes the selected command and maps the outcome to an
// exit status.
func run(ctx context.Context, args []string, c *cli) int {
	c.ctx = ctx

	parser := flags.NewParser(&c.opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = programName
	parser.ShortDescription = "Amazon Transcribe processing CLI"

	if _, err := parser.AddCommand("upload",
		"Upload an audio file to S3 and start transcription",
		"Uploads the file, starts an Amazon Transcribe job on it and optionally waits for the transcript.",
		&uploadCommand{cli: c}); err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return exitFailed
	}
	if _, err := parser.AddCommand("fetch",
		"Check transcription status and optionally save results",
		"Checks a job once (or waits for it) and writes the transcript when it has completed.",
		&fetchCommand{cli: c}); err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return exitFailed
	}

	_, err := parser.ParseArgs(args)
	return c.exitCode(err)
}

func (c *cli) exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var flagsErr *flags.Error
	if errors.As(err, &flagsErr) {
		if flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(c.stdout, flagsErr.Message)
			return exitOK
		}
		fmt.Fprintf(c.stderr, "Usage error: %s\n", flagsErr.Message)
		return exitUsage
	}

	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(c.stderr, "Usage error: %v\n", usageErr.err)
		return exitUsage
	}

	if config.IsConfigError(err) {
		fmt.Fprintf(c.stderr, "\nConfiguration error: %v\n", err)
		return exitUsage
	}

	fmt.Fprintf(c.stderr, "\nError: %v\n", err)
	return exitFailed
}

// setup loads settings once for the command about to run.
func (c *cli) setup() (config.Config, error) {
	if err := config.LoadEnvFile(c.opts.EnvFile); err != nil {
		return config.Config{}, &usageError{err: fmt.Errorf("load env file %s: %w", c.opts.EnvFile, err)}
	}

	cfg := config.FromLookup(c.lookup)
	if c.opts.LogLevel != "" {
		cfg.LogLevel = c.opts.LogLevel
	}
	if err := logging.Configure(cfg.LogLevel, c.stderr); err != nil {
		return config.Config{}, &usageError{err: fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)}
	}
	return cfg, nil
}

func (c *cli) sinkFactory() storage.SinkFactory {
	if c.opts.Quiet {
		return nil
	}
	return func(fileName string, size int64) progress.Sink {
		return progress.NewBar(c.stderr, "Uploading "+fileName, size)
	}
}

func (c *cli) interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || (c.ctx != nil && c.ctx.Err() != nil)
}

func (cmd *uploadCommand) Execute(_ []string) error {
	c := cmd.cli

	info, err := os.Stat(cmd.InputFile)
	if err != nil {
		return &usageError{err: fmt.Errorf("invalid value for --input-file: %w", err)}
	}
	if info.IsDir() {
		return &usageError{err: fmt.Errorf("invalid value for --input-file: %s is a directory", cmd.InputFile)}
	}

	cfg, err := c.setup()
	if err != nil {
		return err
	}
	if err := cfg.ValidateForUpload(); err != nil {
		return err
	}

	deps, err := c.newDeps(c.ctx, cfg, true)
	if err != nil {
		return err
	}

	if cmd.Wait {
		deps = withStatusEcho(deps, c.stdout)
	}

	fmt.Fprintln(c.stdout, "Starting upload...")
	result, err := app.NewLauncher(deps).LaunchAndWait(c.ctx, app.UploadRequest{
		InputPath:   cmd.InputFile,
		KeyOverride: cmd.Key,
		Wait:        cmd.Wait,
		NewSink:     c.sinkFactory(),
		OnStarted: func(started app.UploadResult) {
			fmt.Fprintf(c.stdout, "\nSuccessfully uploaded %s to %s\n", cmd.InputFile, started.Upload.MediaURI())
			fmt.Fprintf(c.stdout, "Transcription job started with name: %s\n", started.Job.Name)
			if cmd.Wait {
				fmt.Fprintln(c.stdout, "\nWaiting for transcription to complete...")
			}
		},
	})
	if err != nil {
		if cmd.Wait && result.Job.Name != "" && c.interrupted(err) {
			fmt.Fprintln(c.stdout, "\nStopped waiting for completion. You can check the status later with:")
			fmt.Fprintf(c.stdout, "%s fetch --job-name %s\n", programName, result.Job.Name)
			return nil
		}
		return err
	}

	if !cmd.Wait {
		fmt.Fprintf(c.stdout, "Check progress with: %s fetch --job-name %s\n", programName, result.Job.Name)
		return nil
	}
	fmt.Fprintf(c.stdout, "\nTranscription completed! Saved to: %s\n", result.TranscriptPath)
	return nil
}

func (cmd *fetchCommand) Execute(_ []string) error {
	c := cmd.cli

	cfg, err := c.setup()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	deps, err := c.newDeps(c.ctx, cfg, false)
	if err != nil {
		return err
	}

	if cmd.Wait {
		fmt.Fprintln(c.stdout, "Waiting for transcription to complete...")
		deps = withStatusEcho(deps, c.stdout)
	}

	result, err := app.NewFetcher(deps).Fetch(c.ctx, app.FetchRequest{
		JobName:    cmd.JobName,
		OutputPath: cmd.OutputFile,
		Wait:       cmd.Wait,
	})
	if err != nil {
		if cmd.Wait && c.interrupted(err) {
			fmt.Fprintln(c.stdout, "\nStopped waiting. You can check again later.")
			return nil
		}
		if result.Job.Status != "" {
			fmt.Fprintf(c.stdout, "\nJob Status: %s\n", result.Job.Status)
		}
		return err
	}

	fmt.Fprintf(c.stdout, "\nJob Status: %s\n", result.Job.Status)
	if result.TranscriptPath != "" {
		fmt.Fprintf(c.stdout, "Transcription saved to: %s\n", result.TranscriptPath)
	}
	return nil
}
