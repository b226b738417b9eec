package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/urfave/cli/v3"

	"github.com/five82/speakerctl/internal/app"
	"github.com/five82/speakerctl/internal/control"
	"github.com/five82/speakerctl/internal/logging"
)

// ErrUsage is returned when a command is missing a required argument.
var ErrUsage = errors.New("usage")

// Runner holds the dependencies of the CLI commands and provides one method
// per command action.
type Runner struct {
	output    io.Writer
	errOutput io.Writer
	tui       func(context.Context, app.Options) error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Output    io.Writer
	ErrOutput io.Writer
	// TUI launches the interactive client. Defaults to app.Run.
	TUI func(context.Context, app.Options) error
}

// NewRunner creates a Runner, defaulting to the process's standard streams.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}
	if opts.TUI == nil {
		opts.TUI = app.Run
	}
	return &Runner{output: opts.Output, errOutput: opts.ErrOutput, tui: opts.TUI}
}

// outcomes collects the results of one invocation's remote calls.
type outcomes struct {
	mu  sync.Mutex
	all []control.Result
}

func (o *outcomes) observe(r control.Result) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.all = append(o.all, r)
}

// err returns the first failure, if any.
func (o *outcomes) err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, r := range o.all {
		if r.Err != nil {
			return fmt.Errorf("%s %s: %w", r.Method, r.Path, r.Err)
		}
	}
	return nil
}

// open wires a session that logs to stderr and records every outcome.
func (r *Runner) open(cmd *cli.Command) (*app.Session, *outcomes, error) {
	seen := &outcomes{}
	session, err := app.Open(app.Options{
		ConfigPath: cmd.String("config"),
		Server:     cmd.String("server"),
		LogLevel:   cmd.String("log-level"),
		Logger:     logging.New(r.errOutput, ""),
		Observer:   seen.observe,
	})
	if err != nil {
		return nil, nil, err
	}
	return session, seen, nil
}

// dispatch runs one fire-and-forget call and waits for its outcome.
func (r *Runner) dispatch(cmd *cli.Command, send func(*app.Session)) error {
	session, seen, err := r.open(cmd)
	if err != nil {
		return err
	}
	send(session)
	if err := session.Close(); err != nil {
		return err
	}
	return seen.err()
}

func (r *Runner) writeJSON(data any) error {
	output, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := fmt.Fprintf(r.output, "%s\n", output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeLine(format string, args ...any) error {
	if _, err := fmt.Fprintf(r.output, format+"\n", args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func requireArgs(cmd *cli.Command, names ...string) ([]string, error) {
	if cmd.Args().Len() < len(names) {
		return nil, fmt.Errorf("%w: %s %s", ErrUsage, cmd.Name, cmd.ArgsUsage)
	}
	out := make([]string, len(names))
	for i := range names {
		out[i] = cmd.Args().Get(i)
	}
	return out, nil
}
