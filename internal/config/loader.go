package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/quantmind-br/sitedocs-go/internal/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load loads configuration from file, environment, and defaults.
// Uses the global viper instance to access CLI flag bindings. An empty
// configFile searches for sitedocs.yaml.
func Load(configFile string) (*Config, error) {
	return load(viper.GetViper(), configFile)
}

// LoadWithViper loads configuration into a fresh viper instance and
// returns it
func LoadWithViper(configFile string) (*Config, *viper.Viper, error) {
	v := viper.New()
	cfg, err := load(v, configFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

func load(v *viper.Viper, configFile string) (*Config, error) {
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(ConfigDir())
	}

	// Read config file (ignore if not found, unless it was asked for)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Environment variables (SITEDOCS_*)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("paths.root", d.Paths.Root)
	v.SetDefault("paths.docs_dir", d.Paths.DocsDir)

	v.SetDefault("cli.repo", d.CLI.Repo)
	v.SetDefault("cli.entry", d.CLI.Entry)
	v.SetDefault("cli.node", d.CLI.Node)
	v.SetDefault("cli.help_flag", d.CLI.HelpFlag)
	v.SetDefault("cli.prefix", d.CLI.Prefix)
	v.SetDefault("cli.source_name", d.CLI.SourceName)
	v.SetDefault("cli.output", d.CLI.Output)

	v.SetDefault("sdk.repo", d.SDK.Repo)
	v.SetDefault("sdk.npx", d.SDK.Npx)
	v.SetDefault("sdk.entry_point", d.SDK.EntryPoint)
	v.SetDefault("sdk.plugin", d.SDK.Plugin)
	v.SetDefault("sdk.generated_dir", d.SDK.GeneratedDir)
	v.SetDefault("sdk.source_name", d.SDK.SourceName)
	v.SetDefault("sdk.output", d.SDK.Output)
	v.SetDefault("sdk.quickstart", d.SDK.Quickstart)
	v.SetDefault("sdk.preserve_threshold", d.SDK.PreserveThreshold)

	v.SetDefault("output.dry_run", d.Output.DryRun)
	v.SetDefault("output.check", d.Output.Check)
	v.SetDefault("output.force", d.Output.Force)
	v.SetDefault("output.frontmatter", d.Output.Frontmatter)
	v.SetDefault("output.state", d.Output.State)

	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.directory", d.Cache.Directory)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)

	v.SetDefault("progress", d.Progress)
}

// Save writes cfg as YAML to path, creating parent directories
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := utils.EnsureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EnsureCacheDir creates the cache directory if it doesn't exist
func EnsureCacheDir(dir string) error {
	if dir == "" {
		dir = CacheDir()
	}
	return os.MkdirAll(utils.ExpandPath(dir), 0755)
}
