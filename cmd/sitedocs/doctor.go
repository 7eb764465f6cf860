package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/quantmind-br/sitedocs-go/internal/config"
	"github.com/quantmind-br/sitedocs-go/internal/manifest"
	"github.com/quantmind-br/sitedocs-go/internal/tui"
	"github.com/quantmind-br/sitedocs-go/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// checkResult is the outcome of one doctor check
type checkResult struct {
	Name   string
	OK     bool
	Detail string
	// Critical failures make doctor exit non-zero
	Critical bool
}

var errChecksFailed = errors.New("some checks failed")

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  "Verifies the tools and sibling repositories the pipelines depend on.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		results := runChecks(cfg)
		printChecks(cmd.OutOrStdout(), results)
		if !passed(results) {
			return errChecksFailed
		}
		return nil
	},
}

func runChecks(cfg *config.Config) []checkResult {
	var results []checkResult

	results = append(results, checkTool("node", cfg.CLI.Node))
	results = append(results, checkTool("npx", cfg.SDK.Npx))

	cliRepo := cfg.Resolve(cfg.CLI.Repo)
	results = append(results, checkDir("CLI repository", cliRepo))
	results = append(results, checkFile("CLI entry point", utils.ResolvePath(cliRepo, cfg.CLI.Entry)))

	sdkRepo := cfg.Resolve(cfg.SDK.Repo)
	results = append(results, checkDir("SDK repository", sdkRepo))
	results = append(results, checkFile("SDK entry point", utils.ResolvePath(sdkRepo, cfg.SDK.EntryPoint)))
	results = append(results, checkManifest(filepath.Join(sdkRepo, manifest.FileName)))

	results = append(results, checkWritable(cfg.DocsDir()))
	results = append(results, checkConfigFile())

	if cfg.Cache.Enabled {
		results = append(results, checkCacheDir(utils.ExpandPath(cfg.Cache.Directory)))
	}

	return results
}

func checkTool(name, binary string) checkResult {
	path, err := execLookPath(binary)
	if err != nil {
		return checkResult{Name: name, Detail: fmt.Sprintf("%s not found on PATH", binary), Critical: true}
	}
	return checkResult{Name: name, OK: true, Detail: path}
}

func checkDir(name, path string) checkResult {
	if !utils.DirExists(path) {
		return checkResult{Name: name, Detail: "missing: " + path, Critical: true}
	}
	return checkResult{Name: name, OK: true, Detail: path}
}

func checkFile(name, path string) checkResult {
	if !utils.FileExists(path) {
		return checkResult{Name: name, Detail: "missing: " + path, Critical: true}
	}
	return checkResult{Name: name, OK: true, Detail: path}
}

func checkManifest(path string) checkResult {
	m, err := manifest.NewLoader().Load(path)
	if err != nil {
		return checkResult{Name: "SDK manifest", Detail: err.Error(), Critical: true}
	}
	return checkResult{Name: "SDK manifest", OK: true, Detail: m.Name}
}

func checkWritable(dir string) checkResult {
	if !utils.DirExists(dir) {
		return checkResult{Name: "Docs directory", Detail: "will be created: " + dir}
	}
	if !utils.IsWritableDir(dir) {
		return checkResult{Name: "Docs directory", Detail: "not writable: " + dir, Critical: true}
	}
	return checkResult{Name: "Docs directory", OK: true, Detail: dir}
}

func checkConfigFile() checkResult {
	used := viper.ConfigFileUsed()
	if used == "" {
		return checkResult{Name: "Config file", OK: true, Detail: "none, using defaults"}
	}
	return checkResult{Name: "Config file", OK: true, Detail: used}
}

func checkCacheDir(path string) checkResult {
	if !utils.DirExists(path) {
		return checkResult{Name: "Cache directory", Detail: "will be created on first use: " + path}
	}
	return checkResult{Name: "Cache directory", OK: true, Detail: path}
}

func printChecks(w io.Writer, results []checkResult) {
	fmt.Fprintln(w, tui.TitleStyle.Render("Checking system dependencies..."))

	for _, r := range results {
		mark := tui.CheckOKStyle.Render("OK  ")
		switch {
		case !r.OK && r.Critical:
			mark = tui.CheckFailStyle.Render("FAIL")
		case !r.OK:
			mark = tui.WarnStyle.Render("WARN")
		}
		fmt.Fprintf(w, "  %s %-16s %s\n", mark, r.Name, tui.DescriptionStyle.Render(r.Detail))
	}

	fmt.Fprintln(w)
	if passed(results) {
		fmt.Fprintln(w, tui.SuccessStyle.Render("All critical checks passed!"))
	} else {
		fmt.Fprintln(w, tui.ErrorStyle.Render("Some checks failed. Please resolve the issues above."))
	}
}

func passed(results []checkResult) bool {
	for _, r := range results {
		if !r.OK && r.Critical {
			return false
		}
	}
	return true
}
