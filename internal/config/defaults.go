package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	// Site defaults
	DefaultRoot    = "."
	DefaultDocsDir = "docs"

	// CLI pipeline defaults
	DefaultCLIRepo       = "../../cloud-cli"
	DefaultCLIEntry      = "dist/index.js"
	DefaultNode          = "node"
	DefaultHelpFlag      = "--help"
	DefaultCommandPrefix = "af "
	DefaultCLISourceName = "cloud-cli"
	DefaultCLIOutput     = "docs/cli/commands.md"

	// SDK pipeline defaults
	DefaultSDKRepo           = "../package-cloud-sdk"
	DefaultNpx               = "npx"
	DefaultEntryPoint        = "src/index.ts"
	DefaultPlugin            = "typedoc-plugin-markdown"
	DefaultGeneratedDir      = "docs/sdk/generated"
	DefaultSDKSourceName     = "cloud-sdk"
	DefaultSDKOutput         = "docs/sdk/api.md"
	DefaultQuickstart        = "docs/sdk/quickstart.md"
	DefaultPreserveThreshold = 500

	// Cache defaults
	DefaultCacheEnabled = false
	DefaultCacheTTL     = 7 * 24 * time.Hour

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"

	// ConfigFileName is looked up in the working directory and ConfigDir
	ConfigFileName = "sitedocs"

	// EnvPrefix prefixes environment overrides, e.g. SITEDOCS_CLI_REPO
	EnvPrefix = "SITEDOCS"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sitedocs"
	}
	return filepath.Join(home, ".sitedocs")
}

// CacheDir returns the cache directory path
func CacheDir() string {
	return filepath.Join(ConfigDir(), "cache")
}

// ConfigFilePath returns the project config file path
func ConfigFilePath() string {
	return ConfigFileName + ".yaml"
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Root:    DefaultRoot,
			DocsDir: DefaultDocsDir,
		},
		CLI: CLIConfig{
			Repo:       DefaultCLIRepo,
			Entry:      DefaultCLIEntry,
			Node:       DefaultNode,
			HelpFlag:   DefaultHelpFlag,
			Prefix:     DefaultCommandPrefix,
			SourceName: DefaultCLISourceName,
			Output:     DefaultCLIOutput,
		},
		SDK: SDKConfig{
			Repo:              DefaultSDKRepo,
			Npx:               DefaultNpx,
			EntryPoint:        DefaultEntryPoint,
			Plugin:            DefaultPlugin,
			GeneratedDir:      DefaultGeneratedDir,
			SourceName:        DefaultSDKSourceName,
			Output:            DefaultSDKOutput,
			Quickstart:        DefaultQuickstart,
			PreserveThreshold: DefaultPreserveThreshold,
		},
		Output: OutputConfig{
			State: true,
		},
		Cache: CacheConfig{
			Enabled:   DefaultCacheEnabled,
			TTL:       DefaultCacheTTL,
			Directory: CacheDir(),
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Progress: true,
	}
}
