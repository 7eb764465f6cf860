package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/quantmind-br/sitedocs-go/internal/cache"
	"github.com/quantmind-br/sitedocs-go/internal/clidoc"
	"github.com/quantmind-br/sitedocs-go/internal/config"
	"github.com/quantmind-br/sitedocs-go/internal/domain"
	"github.com/quantmind-br/sitedocs-go/internal/git"
	"github.com/quantmind-br/sitedocs-go/internal/output"
	"github.com/quantmind-br/sitedocs-go/internal/runner"
	"github.com/quantmind-br/sitedocs-go/internal/sdkdoc"
	"github.com/quantmind-br/sitedocs-go/internal/state"
	"github.com/quantmind-br/sitedocs-go/internal/utils"
)

// Orchestrator coordinates the documentation pipelines
type Orchestrator struct {
	config          *config.Config
	root            string
	logger          *utils.Logger
	runner          domain.Runner
	inspector       domain.Inspector
	cache           domain.Cache
	state           *state.Manager
	writer          *output.Writer
	check           bool
	pipelineFactory func(PipelineType) domain.Pipeline
}

// OrchestratorOptions contains options for creating an orchestrator
type OrchestratorOptions struct {
	domain.CommonOptions
	Config *config.Config
	Logger *utils.Logger
	// Runner and Inspector default to the os/exec runner and the git inspector
	Runner    domain.Runner
	Inspector domain.Inspector
	// PipelineFactory replaces the built-in pipelines, mainly for tests
	PipelineFactory func(PipelineType) domain.Pipeline
}

// NewOrchestrator creates a new orchestrator with the given configuration
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	dryRun := opts.DryRun || cfg.Output.DryRun
	check := opts.Check || cfg.Output.Check
	force := opts.Force || cfg.Output.Force
	if check && force {
		return nil, domain.NewValidationError("output.check", "cannot be combined with output.force")
	}

	logger := opts.Logger
	if logger == nil {
		logger = utils.NewLogger(utils.LoggerOptions{
			Level:   cfg.Logging.Level,
			Format:  cfg.Logging.Format,
			Verbose: opts.Verbose,
		})
	}

	// Pipelines get absolute page paths; the writer leaves those as-is
	root, err := filepath.Abs(utils.ExpandPath(cfg.Paths.Root))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths.root: %w", err)
	}

	o := &Orchestrator{
		config:    cfg,
		root:      root,
		logger:    logger,
		runner:    opts.Runner,
		inspector: opts.Inspector,
		check:     check,
	}
	if o.runner == nil {
		o.runner = runner.New(runner.Options{Logger: logger})
	}
	if o.inspector == nil {
		o.inspector = git.NewInspector()
	}

	if cfg.Cache.Enabled {
		c, err := openCache(cfg.Cache.Directory)
		if err != nil {
			logger.Warn().Err(err).Msg("Help cache unavailable, continuing without it")
		} else {
			logger.Debug().Int64("entries", c.Size()).Msg("Help cache opened")
			o.cache = c
		}
	}

	o.state = state.NewManager(state.ManagerOptions{
		BaseDir:  o.resolve(cfg.Paths.DocsDir),
		Logger:   logger,
		Disabled: !cfg.Output.State,
	})
	o.writer = output.NewWriter(output.WriterOptions{
		BaseDir:     root,
		Frontmatter: cfg.Output.Frontmatter,
		Force:       force,
		DryRun:      dryRun,
		Check:       check,
		State:       o.state,
		Logger:      logger,
	})

	o.pipelineFactory = opts.PipelineFactory
	if o.pipelineFactory == nil {
		o.pipelineFactory = o.createPipeline
	}

	return o, nil
}

func openCache(dir string) (*cache.BadgerCache, error) {
	if err := config.EnsureCacheDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	if dir == "" {
		dir = config.CacheDir()
	}
	return cache.NewBadgerCache(cache.Options{Directory: utils.ExpandPath(dir)})
}

// Run executes the given pipelines in order. In check mode a
// *domain.DriftError is returned when any page is out of date.
func (o *Orchestrator) Run(ctx context.Context, pipelines ...PipelineType) error {
	if len(pipelines) == 0 {
		pipelines = AllPipelines
	}
	startTime := time.Now()

	o.logger.Info().
		Str("root", o.config.Paths.Root).
		Int("pipelines", len(pipelines)).
		Bool("check", o.check).
		Msg("Starting documentation generation")

	if err := o.state.Load(ctx); err != nil && !errors.Is(err, state.ErrStateNotFound) {
		o.logger.Warn().Err(err).Msg("Ignoring previous state")
	}

	for _, pt := range pipelines {
		pipeline := o.pipelineFactory(pt)
		if pipeline == nil {
			return fmt.Errorf("unknown pipeline: %s", pt)
		}

		pipelineStart := time.Now()
		o.logger.Info().Str("pipeline", pipeline.Name()).Msg("Running pipeline")

		if err := pipeline.Generate(ctx, o.writer); err != nil {
			if ctx.Err() != nil {
				o.logger.Warn().Msg("Generation cancelled")
				return ctx.Err()
			}
			o.saveState(ctx)
			return fmt.Errorf("%s pipeline failed: %w", pipeline.Name(), err)
		}

		o.logger.Info().
			Str("pipeline", pipeline.Name()).
			Dur("duration", time.Since(pipelineStart)).
			Msg("Pipeline completed")
	}

	stats := o.writer.Stats()
	o.logger.Info().
		Int("written", stats.Written).
		Int("unchanged", stats.Unchanged).
		Int("drifted", stats.Drifted).
		Dur("duration", time.Since(startTime)).
		Msg("Documentation generation completed")

	if o.check {
		return o.writer.Drift()
	}
	o.saveState(ctx)
	return nil
}

func (o *Orchestrator) saveState(ctx context.Context) {
	if err := o.state.Save(ctx); err != nil {
		o.logger.Warn().Err(err).Msg("Failed to save state")
	}
}

// Close releases all resources held by the orchestrator
func (o *Orchestrator) Close() error {
	if o.cache != nil {
		return o.cache.Close()
	}
	return nil
}

// Stats returns what the writer did so far
func (o *Orchestrator) Stats() output.Stats {
	return o.writer.Stats()
}

func (o *Orchestrator) createPipeline(pt PipelineType) domain.Pipeline {
	cfg := o.config
	switch pt {
	case PipelineCLI:
		return clidoc.NewGenerator(clidoc.Options{
			Repo:       o.resolve(cfg.CLI.Repo),
			Node:       cfg.CLI.Node,
			Entry:      cfg.CLI.Entry,
			HelpFlag:   cfg.CLI.HelpFlag,
			Prefix:     cfg.CLI.Prefix,
			SourceName: cfg.CLI.SourceName,
			OutputPath: o.resolve(cfg.CLI.Output),
			CacheTTL:   cfg.Cache.TTL,
			Progress:   o.progressWriter(),
		}, clidoc.Dependencies{
			Runner:    o.runner,
			Inspector: o.inspector,
			Cache:     o.cache,
			Logger:    o.logger,
		})
	case PipelineSDK:
		return sdkdoc.NewGenerator(sdkdoc.Options{
			Repo:              o.resolve(cfg.SDK.Repo),
			Npx:               cfg.SDK.Npx,
			EntryPoint:        cfg.SDK.EntryPoint,
			Plugin:            cfg.SDK.Plugin,
			GeneratedDir:      o.resolve(cfg.SDK.GeneratedDir),
			SourceName:        cfg.SDK.SourceName,
			OutputPath:        o.resolve(cfg.SDK.Output),
			QuickstartPath:    o.resolve(cfg.SDK.Quickstart),
			PreserveThreshold: cfg.SDK.PreserveThreshold,
		}, sdkdoc.Dependencies{
			Runner:    o.runner,
			Inspector: o.inspector,
			Logger:    o.logger,
		})
	}
	return nil
}

// resolve returns path relative to the site root as an absolute path
func (o *Orchestrator) resolve(path string) string {
	return utils.ResolvePath(o.root, path)
}

func (o *Orchestrator) progressWriter() io.Writer {
	if !o.config.Progress {
		return nil
	}
	return os.Stderr
}
