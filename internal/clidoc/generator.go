package clidoc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/quantmind-br/sitedocs-go/internal/cache"
	"github.com/quantmind-br/sitedocs-go/internal/domain"
	"github.com/quantmind-br/sitedocs-go/internal/utils"
)

// Ensure Generator implements domain.Pipeline
var _ domain.Pipeline = (*Generator)(nil)

// Options configures the CLI-doc pipeline
type Options struct {
	// Repo is the CLI checkout; it must exist
	Repo string
	// Node is the interpreter used to run Entry
	Node string
	// Entry is the CLI entry point, relative to Repo or absolute
	Entry string
	// HelpFlag is passed to the CLI to print its help
	HelpFlag string
	// Prefix marks the lines that start a command entry
	Prefix string
	// SourceName is shown in the generated disclaimer
	SourceName string
	// OutputPath is where commands.md is written
	OutputPath string
	// CacheTTL bounds how long captured help output is reused
	CacheTTL time.Duration
	// Progress, when non-nil, receives a spinner while help is captured
	Progress io.Writer
}

// Dependencies are the collaborators of the pipeline
type Dependencies struct {
	Runner    domain.Runner
	Inspector domain.Inspector
	Cache     domain.Cache // optional
	Logger    *utils.Logger
}

// Generator runs the CLI with its help flag and renders commands.md
type Generator struct {
	opts      Options
	runner    domain.Runner
	inspector domain.Inspector
	cache     domain.Cache
	parser    *Parser
	renderer  *Renderer
	logger    *utils.Logger
}

// NewGenerator creates a new CLI-doc pipeline
func NewGenerator(opts Options, deps Dependencies) *Generator {
	if opts.Node == "" {
		opts.Node = "node"
	}
	if opts.HelpFlag == "" {
		opts.HelpFlag = "--help"
	}
	logger := deps.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Generator{
		opts:      opts,
		runner:    deps.Runner,
		inspector: deps.Inspector,
		cache:     deps.Cache,
		parser:    NewParser(opts.Prefix),
		renderer:  NewRenderer(opts.SourceName),
		logger:    logger.WithPipeline("cli"),
	}
}

// Name returns the pipeline name
func (g *Generator) Name() string {
	return "cli"
}

// Generate captures the help output, parses and renders it, and writes
// the resulting page
func (g *Generator) Generate(ctx context.Context, w domain.Writer) error {
	if !utils.DirExists(g.opts.Repo) {
		return domain.NewDependencyError("CLI repository", g.opts.Repo)
	}

	source := g.inspect()

	g.logger.Info().Str("repo", g.opts.Repo).Msg("Reading CLI help output")
	help, err := g.captureHelp(ctx, source)
	if err != nil {
		return err
	}

	buckets := Group(g.parser.Parse(help))
	g.logger.Info().Int("commands", buckets.Len()).Msg("Parsed commands")

	page := &domain.Page{
		Path:    g.opts.OutputPath,
		Title:   DocumentTitle,
		Content: g.renderer.Render(buckets),
		Source:  source,
	}
	if err := w.Write(ctx, page); err != nil {
		return fmt.Errorf("failed to write %s: %w", page.Path, err)
	}
	return nil
}

func (g *Generator) entryPath() string {
	return utils.ResolvePath(g.opts.Repo, g.opts.Entry)
}

func (g *Generator) command() domain.Command {
	return domain.Command{
		Name: g.opts.Node,
		Args: []string{g.entryPath(), g.opts.HelpFlag},
		Dir:  g.opts.Repo,
	}
}

// helpKey returns the cache key of the current CLI build, or "" when the
// build cannot be identified
func (g *Generator) helpKey(source domain.SourceInfo, cmd domain.Command) string {
	if g.cache == nil || source.Revision == "" {
		return ""
	}
	digest, err := cache.FileDigest(g.entryPath())
	if err != nil {
		g.logger.Debug().Err(err).Msg("Cannot fingerprint CLI entry, bypassing help cache")
		return ""
	}
	return cache.HelpKey(g.opts.Repo, source.Revision, digest, cmd.Args)
}

func (g *Generator) inspect() domain.SourceInfo {
	if g.inspector == nil {
		return domain.SourceInfo{Repository: g.opts.Repo}
	}
	info, err := g.inspector.Inspect(g.opts.Repo)
	if err != nil {
		g.logger.Warn().Err(err).Msg("Could not read CLI repository revision")
		return domain.SourceInfo{Repository: g.opts.Repo}
	}
	return info
}

// captureHelp returns the CLI's help text. A failing CLI that still printed
// something is tolerated: its stdout is used as-is.
func (g *Generator) captureHelp(ctx context.Context, source domain.SourceInfo) (string, error) {
	cmd := g.command()

	key := g.helpKey(source, cmd)
	if key != "" {
		if cached, err := g.cache.Get(ctx, key); err == nil {
			g.logger.Debug().Str("revision", source.ShortRevision()).Msg("Using cached help output")
			return string(cached), nil
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			g.logger.Warn().Err(err).Msg("Help cache lookup failed")
		}
	}

	out, err := g.runWithSpinner(ctx, cmd)
	if err != nil {
		var toolErr *domain.ToolError
		if !errors.As(err, &toolErr) || !toolErr.HasOutput() {
			return "", err
		}
		g.logger.Warn().Err(err).Msg("CLI exited with an error; parsing its output anyway")
		return string(out), nil
	}

	if key != "" {
		if err := g.cache.Set(ctx, key, out, g.opts.CacheTTL); err != nil {
			g.logger.Warn().Err(err).Msg("Failed to cache help output")
		}
	}
	return string(out), nil
}

func (g *Generator) runWithSpinner(ctx context.Context, cmd domain.Command) ([]byte, error) {
	if g.opts.Progress == nil {
		return g.runner.Output(ctx, cmd)
	}
	spinner := utils.NewProgressBar(-1, utils.DescCapturing, g.opts.Progress)
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = spinner.Add(1)
			}
		}
	}()
	out, err := g.runner.Output(ctx, cmd)
	close(done)
	_ = spinner.Finish()
	return out, err
}
