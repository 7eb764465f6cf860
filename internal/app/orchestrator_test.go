package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/quantmind-br/sitedocs-go/internal/clidoc"
	"github.com/quantmind-br/sitedocs-go/internal/config"
	"github.com/quantmind-br/sitedocs-go/internal/domain"
	"github.com/quantmind-br/sitedocs-go/internal/mocks"
	"github.com/quantmind-br/sitedocs-go/internal/sdkdoc"
	"github.com/quantmind-br/sitedocs-go/internal/state"
	"github.com/quantmind-br/sitedocs-go/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.Root = t.TempDir()
	cfg.Progress = false
	cfg.Cache.Directory = filepath.Join(t.TempDir(), "cache")
	require.NoError(t, cfg.Validate())
	return cfg
}

func newTestOrchestrator(t *testing.T, cfg *config.Config, common domain.CommonOptions, factory func(PipelineType) domain.Pipeline) *Orchestrator {
	t.Helper()
	orch, err := NewOrchestrator(OrchestratorOptions{
		CommonOptions:   common,
		Config:          cfg,
		Logger:          utils.NewNopLogger(),
		PipelineFactory: factory,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = orch.Close() })
	return orch
}

// writesPage returns a pipeline mock that writes one page when generated
func writesPage(ctrl *gomock.Controller, name, path, content string) *mocks.MockPipeline {
	p := mocks.NewMockPipeline(ctrl)
	p.EXPECT().Name().Return(name).AnyTimes()
	p.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, w domain.Writer) error {
			return w.Write(ctx, &domain.Page{Path: path, Title: name, Content: content})
		})
	return p
}

func TestNewOrchestrator_RequiresConfig(t *testing.T) {
	_, err := NewOrchestrator(OrchestratorOptions{})
	assert.Error(t, err)
}

func TestNewOrchestrator_CheckWithForce(t *testing.T) {
	cfg := testConfig(t)

	_, err := NewOrchestrator(OrchestratorOptions{
		CommonOptions: domain.CommonOptions{Check: true, Force: true},
		Config:        cfg,
	})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "output.check", ve.Field)
}

func TestNewOrchestrator_Cache(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Enabled = true

	orch := newTestOrchestrator(t, cfg, domain.CommonOptions{}, nil)
	require.NotNil(t, orch.cache)

	cfg = testConfig(t)
	orch = newTestOrchestrator(t, cfg, domain.CommonOptions{}, nil)
	assert.Nil(t, orch.cache)
}

func TestOrchestrator_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := testConfig(t)

	var order []PipelineType
	factory := func(pt PipelineType) domain.Pipeline {
		order = append(order, pt)
		switch pt {
		case PipelineCLI:
			return writesPage(ctrl, "cli", "docs/cli/commands.md", "# CLI Commands\n")
		case PipelineSDK:
			return writesPage(ctrl, "sdk", "docs/sdk/api.md", "# SDK API Reference\n")
		}
		return nil
	}

	orch := newTestOrchestrator(t, cfg, domain.CommonOptions{}, factory)
	require.NoError(t, orch.Run(context.Background()))

	assert.Equal(t, []PipelineType{PipelineCLI, PipelineSDK}, order)
	assert.FileExists(t, filepath.Join(cfg.Paths.Root, "docs", "cli", "commands.md"))
	assert.FileExists(t, filepath.Join(cfg.Paths.Root, "docs", "sdk", "api.md"))
	assert.FileExists(t, filepath.Join(cfg.DocsDir(), state.StateFileName))
	assert.Equal(t, 2, orch.Stats().Written)
}

func TestOrchestrator_Run_Selected(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := testConfig(t)

	factory := func(pt PipelineType) domain.Pipeline {
		require.Equal(t, PipelineSDK, pt)
		return writesPage(ctrl, "sdk", "docs/sdk/api.md", "api")
	}

	orch := newTestOrchestrator(t, cfg, domain.CommonOptions{}, factory)
	require.NoError(t, orch.Run(context.Background(), PipelineSDK))
}

func TestOrchestrator_Run_PipelineError(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := testConfig(t)
	missing := domain.NewDependencyError("CLI repository", "/nowhere")

	failing := mocks.NewMockPipeline(ctrl)
	failing.EXPECT().Name().Return("cli").AnyTimes()
	failing.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(missing)

	factory := func(pt PipelineType) domain.Pipeline {
		if pt == PipelineSDK {
			t.Fatal("sdk pipeline must not run after a failure")
		}
		return failing
	}

	orch := newTestOrchestrator(t, cfg, domain.CommonOptions{}, factory)
	err := orch.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingDependencyPath)
	assert.Contains(t, err.Error(), "cli pipeline failed")
}

func TestOrchestrator_Run_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())

	p := mocks.NewMockPipeline(ctrl)
	p.EXPECT().Name().Return("cli").AnyTimes()
	p.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, domain.Writer) error {
			cancel()
			return errors.New("signal: killed")
		})

	orch := newTestOrchestrator(t, cfg, domain.CommonOptions{}, func(PipelineType) domain.Pipeline { return p })
	assert.ErrorIs(t, orch.Run(ctx, PipelineCLI), context.Canceled)
}

func TestOrchestrator_Run_UnknownPipeline(t *testing.T) {
	cfg := testConfig(t)
	orch := newTestOrchestrator(t, cfg, domain.CommonOptions{}, func(PipelineType) domain.Pipeline { return nil })

	err := orch.Run(context.Background(), PipelineType("docs"))
	assert.EqualError(t, err, "unknown pipeline: docs")
}

func TestOrchestrator_Run_Check(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := testConfig(t)

	commands := filepath.Join(cfg.Paths.Root, "docs", "cli", "commands.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(commands), 0755))
	require.NoError(t, os.WriteFile(commands, []byte("stale"), 0644))

	factory := func(PipelineType) domain.Pipeline {
		return writesPage(ctrl, "cli", "docs/cli/commands.md", "fresh")
	}

	orch := newTestOrchestrator(t, cfg, domain.CommonOptions{Check: true}, factory)
	err := orch.Run(context.Background(), PipelineCLI)

	assert.ErrorIs(t, err, domain.ErrOutputDrift)
	data, readErr := os.ReadFile(commands)
	require.NoError(t, readErr)
	assert.Equal(t, "stale", string(data))
	assert.NoFileExists(t, filepath.Join(cfg.DocsDir(), state.StateFileName))
}

func TestOrchestrator_Run_CheckClean(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := testConfig(t)

	commands := filepath.Join(cfg.Paths.Root, "docs", "cli", "commands.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(commands), 0755))
	require.NoError(t, os.WriteFile(commands, []byte("fresh"), 0644))

	factory := func(PipelineType) domain.Pipeline {
		return writesPage(ctrl, "cli", "docs/cli/commands.md", "fresh")
	}

	orch := newTestOrchestrator(t, cfg, domain.CommonOptions{Check: true}, factory)
	assert.NoError(t, orch.Run(context.Background(), PipelineCLI))
}

func TestOrchestrator_Run_DryRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := testConfig(t)

	factory := func(PipelineType) domain.Pipeline {
		return writesPage(ctrl, "cli", "docs/cli/commands.md", "content")
	}

	orch := newTestOrchestrator(t, cfg, domain.CommonOptions{DryRun: true}, factory)
	require.NoError(t, orch.Run(context.Background(), PipelineCLI))

	assert.NoDirExists(t, filepath.Join(cfg.Paths.Root, "docs"))
}

func TestOrchestrator_Run_StateDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := testConfig(t)
	cfg.Output.State = false

	factory := func(PipelineType) domain.Pipeline {
		return writesPage(ctrl, "cli", "docs/cli/commands.md", "content")
	}

	orch := newTestOrchestrator(t, cfg, domain.CommonOptions{}, factory)
	require.NoError(t, orch.Run(context.Background(), PipelineCLI))

	assert.FileExists(t, filepath.Join(cfg.Paths.Root, "docs", "cli", "commands.md"))
	assert.NoFileExists(t, filepath.Join(cfg.DocsDir(), state.StateFileName))
}

func TestOrchestrator_Run_CorruptStateIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.DocsDir(), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DocsDir(), state.StateFileName), []byte("{"), 0644))

	factory := func(PipelineType) domain.Pipeline {
		return writesPage(ctrl, "cli", "docs/cli/commands.md", "content")
	}

	orch := newTestOrchestrator(t, cfg, domain.CommonOptions{}, factory)
	assert.NoError(t, orch.Run(context.Background(), PipelineCLI))
}

func TestOrchestrator_CreatePipeline(t *testing.T) {
	cfg := testConfig(t)
	orch := newTestOrchestrator(t, cfg, domain.CommonOptions{}, nil)

	cli := orch.createPipeline(PipelineCLI)
	require.IsType(t, &clidoc.Generator{}, cli)
	assert.Equal(t, "cli", cli.Name())

	sdk := orch.createPipeline(PipelineSDK)
	require.IsType(t, &sdkdoc.Generator{}, sdk)
	assert.Equal(t, "sdk", sdk.Name())

	assert.Nil(t, orch.createPipeline(PipelineAll))
}

func TestOrchestrator_MissingSiblingRepos(t *testing.T) {
	cfg := testConfig(t)
	cfg.CLI.Repo = "missing-cli"
	cfg.SDK.Repo = "missing-sdk"
	orch := newTestOrchestrator(t, cfg, domain.CommonOptions{}, nil)

	err := orch.Run(context.Background(), PipelineCLI)
	assert.ErrorIs(t, err, domain.ErrMissingDependencyPath)

	err = orch.Run(context.Background(), PipelineSDK)
	assert.ErrorIs(t, err, domain.ErrMissingDependencyPath)
}

func TestOrchestrator_Run_RelativeRoot(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := config.Default()
	cfg.Paths.Root = "site"
	cfg.Progress = false
	cfg.CLI.Repo = "cli"
	cfg.SDK.Repo = "sdk"
	require.NoError(t, cfg.Validate())
	require.NoError(t, os.MkdirAll(filepath.Join("site", "cli"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join("site", "sdk"), 0755))

	curated := strings.Repeat("Hand-written quickstart. ", 40)
	quickstart := filepath.Join("site", "docs", "sdk", "quickstart.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(quickstart), 0755))
	require.NoError(t, os.WriteFile(quickstart, []byte(curated), 0644))

	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	runner.EXPECT().Output(gomock.Any(), gomock.Any()).Return([]byte("af login\n  Sign in\n"), nil)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command) error {
			out := cmd.Args[slices.Index(cmd.Args, "--out")+1]
			require.NoError(t, os.MkdirAll(out, 0755))
			return os.WriteFile(filepath.Join(out, "README.md"), []byte("# SDK\n\nClient docs\n"), 0644)
		})
	inspector := mocks.NewMockInspector(ctrl)
	inspector.EXPECT().Inspect(gomock.Any()).Return(domain.SourceInfo{}, errors.New("not a git repository")).AnyTimes()

	orch, err := NewOrchestrator(OrchestratorOptions{
		Config:    cfg,
		Logger:    utils.NewNopLogger(),
		Runner:    runner,
		Inspector: inspector,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = orch.Close() })

	require.NoError(t, orch.Run(context.Background(), PipelineCLI, PipelineSDK))

	assert.FileExists(t, filepath.Join("site", "docs", "cli", "commands.md"))
	assert.FileExists(t, filepath.Join("site", "docs", "sdk", "api.md"))
	assert.NoDirExists(t, filepath.Join("site", "site"))

	got, err := os.ReadFile(quickstart)
	require.NoError(t, err)
	assert.Equal(t, curated, string(got))
}
