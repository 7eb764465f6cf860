package sdkdoc

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/quantmind-br/sitedocs-go/internal/domain"
	"github.com/quantmind-br/sitedocs-go/internal/manifest"
	"github.com/quantmind-br/sitedocs-go/internal/utils"
)

// Ensure Generator implements domain.Pipeline
var _ domain.Pipeline = (*Generator)(nil)

// Options configures the SDK-doc pipeline
type Options struct {
	// Repo is the SDK checkout; it must exist
	Repo       string
	Npx        string
	EntryPoint string
	Plugin     string
	// GeneratedDir receives TypeDoc's output
	GeneratedDir string
	// SourceName is shown in the generated disclaimer
	SourceName string
	// OutputPath is where api.md is written
	OutputPath string
	// QuickstartPath is where quickstart.md is written
	QuickstartPath string
	// PreserveThreshold protects curated quickstarts; 0 disables it
	PreserveThreshold int
}

// Dependencies are the collaborators of the pipeline
type Dependencies struct {
	Runner    domain.Runner
	Inspector domain.Inspector
	Logger    *utils.Logger
}

// Generator runs TypeDoc, assembles api.md and renders quickstart.md
type Generator struct {
	opts       Options
	inspector  domain.Inspector
	typedoc    *TypeDoc
	assembler  *Assembler
	quickstart *Quickstart
	manifests  *manifest.Loader
	logger     *utils.Logger
}

// NewGenerator creates a new SDK-doc pipeline
func NewGenerator(opts Options, deps Dependencies) *Generator {
	logger := deps.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	logger = logger.WithPipeline("sdk")

	return &Generator{
		opts:      opts,
		inspector: deps.Inspector,
		typedoc: NewTypeDoc(TypeDocOptions{
			Repo:       opts.Repo,
			Npx:        opts.Npx,
			EntryPoint: opts.EntryPoint,
			Plugin:     opts.Plugin,
			OutDir:     opts.GeneratedDir,
		}, deps.Runner, logger),
		assembler: NewAssembler(AssemblerOptions{
			SourceName: opts.SourceName,
			LinkBase:   linkBase(opts.OutputPath, opts.GeneratedDir),
			Logger:     logger,
		}),
		quickstart: NewQuickstart(opts.PreserveThreshold),
		manifests:  manifest.NewLoader(),
		logger:     logger,
	}
}

// Name returns the pipeline name
func (g *Generator) Name() string {
	return "sdk"
}

// Generate runs the three SDK steps in order: TypeDoc, the API reference
// and the quickstart
func (g *Generator) Generate(ctx context.Context, w domain.Writer) error {
	if !utils.DirExists(g.opts.Repo) {
		return domain.NewDependencyError("SDK repository", g.opts.Repo)
	}

	source := g.inspect()

	if err := g.typedoc.Generate(ctx); err != nil {
		return err
	}

	content, err := g.assembler.Assemble(g.opts.GeneratedDir)
	if err != nil {
		return err
	}
	api := &domain.Page{
		Path:    g.opts.OutputPath,
		Title:   APITitle,
		Content: content,
		Source:  source,
	}
	if err := w.Write(ctx, api); err != nil {
		return fmt.Errorf("failed to write %s: %w", api.Path, err)
	}

	return g.generateQuickstart(ctx, w, source)
}

func (g *Generator) generateQuickstart(ctx context.Context, w domain.Writer, source domain.SourceInfo) error {
	preserve, err := g.quickstart.ShouldPreserve(g.opts.QuickstartPath)
	if err != nil {
		return err
	}
	if preserve {
		g.logger.Info().Str("path", g.opts.QuickstartPath).Msg("Quickstart has curated content, preserving it")
		return nil
	}

	manifestPath := filepath.Join(g.opts.Repo, manifest.FileName)
	pkg, err := g.manifests.Load(manifestPath)
	if errors.Is(err, domain.ErrMissingDependencyPath) {
		g.logger.Warn().Str("path", manifestPath).Msg("package.json not found, skipping quickstart")
		return nil
	}
	if err != nil {
		return err
	}

	page := &domain.Page{
		Path:    g.opts.QuickstartPath,
		Title:   QuickstartTitle,
		Content: g.quickstart.Render(*pkg),
		Source:  source,
	}
	if err := w.Write(ctx, page); err != nil {
		return fmt.Errorf("failed to write %s: %w", page.Path, err)
	}
	return nil
}

func (g *Generator) inspect() domain.SourceInfo {
	if g.inspector == nil {
		return domain.SourceInfo{Repository: g.opts.Repo}
	}
	info, err := g.inspector.Inspect(g.opts.Repo)
	if err != nil {
		g.logger.Warn().Err(err).Msg("Could not read SDK repository revision")
		return domain.SourceInfo{Repository: g.opts.Repo}
	}
	return info
}

// linkBase returns the generated directory as seen from the reference page,
// with a trailing slash
func linkBase(outputPath, generatedDir string) string {
	if outputPath == "" || generatedDir == "" {
		return ""
	}
	rel, err := filepath.Rel(filepath.Dir(outputPath), generatedDir)
	if err != nil {
		return ""
	}
	return filepath.ToSlash(rel) + "/"
}
