package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quantmind-br/sitedocs-go/internal/config"
)

// ConfigValues holds form values that map to Config struct.
// Numeric and duration fields are stored as strings for form editing.
type ConfigValues struct {
	Root    string
	DocsDir string

	CLIRepo   string
	CLIEntry  string
	CLIPrefix string
	CLIOutput string

	SDKRepo           string
	SDKEntryPoint     string
	SDKPlugin         string
	SDKGeneratedDir   string
	SDKOutput         string
	SDKQuickstart     string
	PreserveThreshold string

	Frontmatter bool
	State       bool
	Progress    bool

	CacheEnabled   bool
	CacheTTL       string
	CacheDirectory string

	LogLevel  string
	LogFormat string

	// base keeps the settings the forms do not edit
	base config.Config
}

// FromConfig converts a Config to ConfigValues for form editing
func FromConfig(cfg *config.Config) *ConfigValues {
	return &ConfigValues{
		Root:    cfg.Paths.Root,
		DocsDir: cfg.Paths.DocsDir,

		CLIRepo:   cfg.CLI.Repo,
		CLIEntry:  cfg.CLI.Entry,
		CLIPrefix: cfg.CLI.Prefix,
		CLIOutput: cfg.CLI.Output,

		SDKRepo:           cfg.SDK.Repo,
		SDKEntryPoint:     cfg.SDK.EntryPoint,
		SDKPlugin:         cfg.SDK.Plugin,
		SDKGeneratedDir:   cfg.SDK.GeneratedDir,
		SDKOutput:         cfg.SDK.Output,
		SDKQuickstart:     cfg.SDK.Quickstart,
		PreserveThreshold: strconv.Itoa(cfg.SDK.PreserveThreshold),

		Frontmatter: cfg.Output.Frontmatter,
		State:       cfg.Output.State,
		Progress:    cfg.Progress,

		CacheEnabled:   cfg.Cache.Enabled,
		CacheTTL:       formatDuration(cfg.Cache.TTL),
		CacheDirectory: cfg.Cache.Directory,

		LogLevel:  cfg.Logging.Level,
		LogFormat: cfg.Logging.Format,

		base: *cfg,
	}
}

// ToConfig converts ConfigValues back to a validated Config
func (v *ConfigValues) ToConfig() (*config.Config, error) {
	threshold, err := parseIntOrDefault(v.PreserveThreshold, config.DefaultPreserveThreshold)
	if err != nil {
		return nil, fmt.Errorf("invalid preserve_threshold: %w", err)
	}

	cacheTTL, err := parseDurationOrDefault(v.CacheTTL, config.DefaultCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid cache_ttl: %w", err)
	}

	cfg := v.base
	cfg.Paths.Root = strings.TrimSpace(v.Root)
	cfg.Paths.DocsDir = strings.TrimSpace(v.DocsDir)

	cfg.CLI.Repo = strings.TrimSpace(v.CLIRepo)
	cfg.CLI.Entry = strings.TrimSpace(v.CLIEntry)
	cfg.CLI.Prefix = v.CLIPrefix
	cfg.CLI.Output = strings.TrimSpace(v.CLIOutput)

	cfg.SDK.Repo = strings.TrimSpace(v.SDKRepo)
	cfg.SDK.EntryPoint = strings.TrimSpace(v.SDKEntryPoint)
	cfg.SDK.Plugin = strings.TrimSpace(v.SDKPlugin)
	cfg.SDK.GeneratedDir = strings.TrimSpace(v.SDKGeneratedDir)
	cfg.SDK.Output = strings.TrimSpace(v.SDKOutput)
	cfg.SDK.Quickstart = strings.TrimSpace(v.SDKQuickstart)
	cfg.SDK.PreserveThreshold = threshold

	cfg.Output.Frontmatter = v.Frontmatter
	cfg.Output.State = v.State
	cfg.Progress = v.Progress

	cfg.Cache.Enabled = v.CacheEnabled
	cfg.Cache.TTL = cacheTTL
	cfg.Cache.Directory = strings.TrimSpace(v.CacheDirectory)

	cfg.Logging.Level = v.LogLevel
	cfg.Logging.Format = v.LogFormat

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.String()
}

func parseDurationOrDefault(s string, defaultVal time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(s)
}

func parseIntOrDefault(s string, defaultVal int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

// Summary is the one-line view of a category's current values shown in the menu
func (v *ConfigValues) Summary(categoryID string) string {
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	switch categoryID {
	case "paths":
		return fmt.Sprintf("%s, docs in %s", v.Root, v.DocsDir)
	case "cli":
		return fmt.Sprintf("%s (%s)", v.CLIRepo, v.CLIPrefix)
	case "sdk":
		return fmt.Sprintf("%s (%s)", v.SDKRepo, v.SDKEntryPoint)
	case "output":
		return fmt.Sprintf("frontmatter %s, state %s", onOff(v.Frontmatter), onOff(v.State))
	case "cache":
		if !v.CacheEnabled {
			return "off"
		}
		return fmt.Sprintf("on, ttl %s", v.CacheTTL)
	case "logging":
		return fmt.Sprintf("%s, %s", v.LogLevel, v.LogFormat)
	default:
		return ""
	}
}
