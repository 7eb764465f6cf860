// Package runner executes the external tools the pipelines depend on.
package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/quantmind-br/sitedocs-go/internal/domain"
	"github.com/quantmind-br/sitedocs-go/internal/utils"
)

// Ensure ExecRunner implements domain.Runner
var _ domain.Runner = (*ExecRunner)(nil)

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	stdout io.Writer
	stderr io.Writer
	logger *utils.Logger
}

// Options configures an ExecRunner
type Options struct {
	// Stdout and Stderr receive the output of Run. They default to the
	// process' own streams.
	Stdout io.Writer
	Stderr io.Writer
	Logger *utils.Logger
}

// New creates a new ExecRunner
func New(opts Options) *ExecRunner {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}
	return &ExecRunner{
		stdout: opts.Stdout,
		stderr: opts.Stderr,
		logger: opts.Logger.WithComponent("runner"),
	}
}

// Output runs cmd and returns its stdout. On failure the returned error is a
// *domain.ToolError that still carries whatever stdout was produced.
func (r *ExecRunner) Output(ctx context.Context, cmd domain.Command) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	r.logger.Debug().Str("cmd", cmd.String()).Str("dir", cmd.Dir).Msg("Capturing output")

	if err := c.Run(); err != nil {
		if stderr.Len() > 0 {
			r.logger.Debug().Str("stderr", stderr.String()).Msg("Command wrote to stderr")
		}
		return stdout.Bytes(), domain.NewToolError(cmd.Name, cmd.Args, exitCode(err), stdout.Bytes(), err)
	}
	return stdout.Bytes(), nil
}

// Run runs cmd with the configured stdout and stderr attached
func (r *ExecRunner) Run(ctx context.Context, cmd domain.Command) error {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = nil
	c.Stdout = r.stdout
	c.Stderr = r.stderr

	r.logger.Debug().Str("cmd", cmd.String()).Str("dir", cmd.Dir).Msg("Running")

	if err := c.Run(); err != nil {
		return domain.NewToolError(cmd.Name, cmd.Args, exitCode(err), nil, err)
	}
	return nil
}

// LookPath reports the resolved location of an executable
func LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 0
}
