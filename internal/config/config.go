package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/quantmind-br/sitedocs-go/internal/domain"
	"github.com/quantmind-br/sitedocs-go/internal/utils"
)

// Config represents the application configuration
type Config struct {
	Paths    PathsConfig   `mapstructure:"paths" yaml:"paths"`
	CLI      CLIConfig     `mapstructure:"cli" yaml:"cli"`
	SDK      SDKConfig     `mapstructure:"sdk" yaml:"sdk"`
	Output   OutputConfig  `mapstructure:"output" yaml:"output"`
	Cache    CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Logging  LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Progress bool          `mapstructure:"progress" yaml:"progress"`
}

// PathsConfig locates the documentation site
type PathsConfig struct {
	// Root is the documentation site checkout; relative paths resolve here
	Root    string `mapstructure:"root" yaml:"root"`
	DocsDir string `mapstructure:"docs_dir" yaml:"docs_dir"`
}

// CLIConfig contains CLI-doc pipeline settings
type CLIConfig struct {
	Repo       string `mapstructure:"repo" yaml:"repo"`
	Entry      string `mapstructure:"entry" yaml:"entry"`
	Node       string `mapstructure:"node" yaml:"node"`
	HelpFlag   string `mapstructure:"help_flag" yaml:"help_flag"`
	Prefix     string `mapstructure:"prefix" yaml:"prefix"`
	SourceName string `mapstructure:"source_name" yaml:"source_name"`
	Output     string `mapstructure:"output" yaml:"output"`
}

// SDKConfig contains SDK-doc pipeline settings
type SDKConfig struct {
	Repo              string `mapstructure:"repo" yaml:"repo"`
	Npx               string `mapstructure:"npx" yaml:"npx"`
	EntryPoint        string `mapstructure:"entry_point" yaml:"entry_point"`
	Plugin            string `mapstructure:"plugin" yaml:"plugin"`
	GeneratedDir      string `mapstructure:"generated_dir" yaml:"generated_dir"`
	SourceName        string `mapstructure:"source_name" yaml:"source_name"`
	Output            string `mapstructure:"output" yaml:"output"`
	Quickstart        string `mapstructure:"quickstart" yaml:"quickstart"`
	PreserveThreshold int    `mapstructure:"preserve_threshold" yaml:"preserve_threshold"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	DryRun      bool `mapstructure:"dry_run" yaml:"dry_run"`
	Check       bool `mapstructure:"check" yaml:"check"`
	Force       bool `mapstructure:"force" yaml:"force"`
	Frontmatter bool `mapstructure:"frontmatter" yaml:"frontmatter"`
	State       bool `mapstructure:"state" yaml:"state"`
}

// CacheConfig contains help-output cache settings
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Directory string        `mapstructure:"directory" yaml:"directory"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"pretty", "json"}
)

// Validate fills empty settings with defaults and rejects invalid ones
func (c *Config) Validate() error {
	d := Default()

	fill := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
		}
	}
	fill(&c.Paths.Root, d.Paths.Root)
	fill(&c.Paths.DocsDir, d.Paths.DocsDir)
	fill(&c.CLI.Repo, d.CLI.Repo)
	fill(&c.CLI.Entry, d.CLI.Entry)
	fill(&c.CLI.Node, d.CLI.Node)
	fill(&c.CLI.HelpFlag, d.CLI.HelpFlag)
	fill(&c.CLI.Prefix, d.CLI.Prefix)
	fill(&c.CLI.SourceName, d.CLI.SourceName)
	fill(&c.CLI.Output, d.CLI.Output)
	fill(&c.SDK.Repo, d.SDK.Repo)
	fill(&c.SDK.Npx, d.SDK.Npx)
	fill(&c.SDK.EntryPoint, d.SDK.EntryPoint)
	fill(&c.SDK.GeneratedDir, d.SDK.GeneratedDir)
	fill(&c.SDK.SourceName, d.SDK.SourceName)
	fill(&c.SDK.Output, d.SDK.Output)
	fill(&c.SDK.Quickstart, d.SDK.Quickstart)
	fill(&c.Logging.Level, d.Logging.Level)
	fill(&c.Logging.Format, d.Logging.Format)

	if c.Cache.TTL < time.Minute {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.SDK.PreserveThreshold < 0 {
		return domain.NewValidationError("sdk.preserve_threshold", "must not be negative")
	}
	if c.Output.Check && c.Output.Force {
		return domain.NewValidationError("output.check", "cannot be combined with output.force")
	}

	c.Logging.Level = strings.ToLower(c.Logging.Level)
	if !contains(validLevels, c.Logging.Level) {
		return domain.NewValidationError("logging.level",
			fmt.Sprintf("must be one of %s", strings.Join(validLevels, ", ")))
	}
	if !contains(validFormats, c.Logging.Format) {
		return domain.NewValidationError("logging.format",
			fmt.Sprintf("must be one of %s", strings.Join(validFormats, ", ")))
	}
	return nil
}

// Resolve returns path resolved against the site root
func (c *Config) Resolve(path string) string {
	return utils.ResolvePath(c.Paths.Root, path)
}

// DocsDir returns the resolved docs directory
func (c *Config) DocsDir() string {
	return c.Resolve(c.Paths.DocsDir)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
