// Package sdkdoc generates the SDK reference pages: the TypeDoc-based API
// reference and the quickstart derived from the SDK's package.json.
package sdkdoc

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/quantmind-br/sitedocs-go/internal/domain"
	"github.com/quantmind-br/sitedocs-go/internal/utils"
)

// DefaultPlugin renders TypeDoc output as markdown
const DefaultPlugin = "typedoc-plugin-markdown"

// TypeDocOptions configures the TypeDoc invocation
type TypeDocOptions struct {
	// Repo is the SDK checkout, used as the working directory
	Repo string
	// Npx runs the locally installed TypeDoc
	Npx string
	// EntryPoint is passed to TypeDoc, relative to Repo
	EntryPoint string
	// Plugin is loaded with --plugin; empty runs TypeDoc's HTML theme
	Plugin string
	// OutDir receives the generated files
	OutDir string
}

// TypeDoc runs TypeDoc against the SDK sources
type TypeDoc struct {
	opts   TypeDocOptions
	runner domain.Runner
	logger *utils.Logger
}

// NewTypeDoc creates a TypeDoc invoker
func NewTypeDoc(opts TypeDocOptions, runner domain.Runner, logger *utils.Logger) *TypeDoc {
	if opts.Npx == "" {
		opts.Npx = "npx"
	}
	if opts.EntryPoint == "" {
		opts.EntryPoint = "src/index.ts"
	}
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &TypeDoc{opts: opts, runner: runner, logger: logger}
}

// Command returns the TypeDoc invocation. The output directory is made
// absolute because TypeDoc runs inside the SDK repository.
func (t *TypeDoc) Command() (domain.Command, error) {
	out, err := filepath.Abs(t.opts.OutDir)
	if err != nil {
		return domain.Command{}, fmt.Errorf("failed to resolve TypeDoc output directory: %w", err)
	}

	args := []string{"typedoc"}
	if t.opts.Plugin != "" {
		args = append(args, "--plugin", t.opts.Plugin)
	}
	args = append(args, "--out", out, t.opts.EntryPoint)

	return domain.Command{Name: t.opts.Npx, Args: args, Dir: t.opts.Repo}, nil
}

// Generate runs TypeDoc with the operator's terminal attached. Any failure
// is returned as is; it is never retried.
func (t *TypeDoc) Generate(ctx context.Context) error {
	cmd, err := t.Command()
	if err != nil {
		return err
	}

	t.logger.Info().Str("command", cmd.String()).Msg("Running TypeDoc")
	if err := t.runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("typedoc generation failed: %w", err)
	}
	t.logger.Info().Msg("TypeDoc generation complete")
	return nil
}
