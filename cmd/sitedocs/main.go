package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/quantmind-br/sitedocs-go/internal/app"
	"github.com/quantmind-br/sitedocs-go/internal/config"
	"github.com/quantmind-br/sitedocs-go/internal/domain"
	"github.com/quantmind-br/sitedocs-go/internal/runner"
	"github.com/quantmind-br/sitedocs-go/internal/utils"
	"github.com/quantmind-br/sitedocs-go/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger

	// Dependencies for testing
	execLookPath = runner.LookPath
	loadConfig   = config.Load
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if log != nil {
			log.Error().Err(err).Msg("sitedocs failed")
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sitedocs",
	Short: "Generate the CLI and SDK reference pages of the documentation site",
	Long: `sitedocs regenerates the reference pages of the documentation site from
its sibling repositories:

  docs/cli/commands.md    from the help output of the built CLI
  docs/sdk/api.md         from TypeDoc output of the SDK
  docs/sdk/quickstart.md  from the SDK's package.json

Without a subcommand both pipelines run.`,
	Version:       version.Short(),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipelines(cmd, string(app.PipelineAll))
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./sitedocs.yaml or ~/.sitedocs/sitedocs.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Log what would be written without touching the docs")
	rootCmd.PersistentFlags().Bool("check", false, "Fail if any generated page differs from the one on disk")
	rootCmd.PersistentFlags().Bool("force", false, "Rewrite pages even when unchanged")
	rootCmd.PersistentFlags().Bool("frontmatter", false, "Prepend YAML frontmatter to every page")
	rootCmd.PersistentFlags().Bool("cache", false, "Reuse captured help output for an unchanged CLI revision")

	// Bind flags to viper
	_ = bindFlags(viper.GetViper(), rootCmd.PersistentFlags())

	// Add subcommands
	rootCmd.AddCommand(pipelineCmd(app.PipelineCLI, "Generate docs/cli/commands.md from the CLI help output"))
	rootCmd.AddCommand(pipelineCmd(app.PipelineSDK, "Generate the SDK API reference and quickstart"))
	rootCmd.AddCommand(pipelineCmd(app.PipelineAll, "Run every pipeline (default)"))
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(genDocsCmd)
}

// flagKeys maps persistent flags to their config keys
var flagKeys = map[string]string{
	"dry-run":     "output.dry_run",
	"check":       "output.check",
	"force":       "output.force",
	"frontmatter": "output.frontmatter",
	"cache":       "cache.enabled",
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			return fmt.Errorf("flag not defined: %s", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind %s: %w", name, err)
		}
	}
	return nil
}

func pipelineCmd(pt app.PipelineType, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(pt),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipelines(cmd, string(pt))
		},
	}
}

func newLogger(cfg *config.Config) *utils.Logger {
	return utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
	})
}

func runPipelines(cmd *cobra.Command, names ...string) error {
	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log = newLogger(cfg)

	pipelines, err := app.ParsePipelines(names...)
	if err != nil {
		return err
	}

	// Create context with cancellation
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			log.Info().Msg("Shutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
	}()

	common := domain.DefaultCommonOptions()
	common.Verbose = verbose

	orchestrator, err := app.NewOrchestrator(app.OrchestratorOptions{
		CommonOptions: common,
		Config:        cfg,
		Logger:        log,
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	defer orchestrator.Close()

	err = orchestrator.Run(ctx, pipelines...)
	var drift *domain.DriftError
	if errors.As(err, &drift) {
		for _, path := range drift.Paths {
			log.Error().Str("path", path).Msg("Out of date, run sitedocs to regenerate")
		}
	}
	return err
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
	},
}

var genDocsCmd = &cobra.Command{
	Use:   "gen-docs [directory]",
	Short: "Generate Markdown reference docs for sitedocs itself",
	Long: strings.TrimSpace(`
Write a Markdown file per command.

Example:

  sitedocs gen-docs ./docs/tooling
`),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		rootCmd.DisableAutoGenTag = true
		return doc.GenMarkdownTree(rootCmd, target)
	},
}
