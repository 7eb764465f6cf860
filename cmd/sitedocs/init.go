package main

import (
	"fmt"

	"github.com/quantmind-br/sitedocs-go/internal/config"
	"github.com/quantmind-br/sitedocs-go/internal/tui"
	"github.com/quantmind-br/sitedocs-go/internal/utils"
	"github.com/spf13/cobra"
)

var (
	initDefaults   bool
	initAccessible bool

	// Dependencies for testing
	runEditor = tui.Run
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or edit sitedocs.yaml",
	Long: `Opens an interactive editor for the sitedocs configuration and saves it to
./sitedocs.yaml, or to the file given with --config.

With --defaults the default configuration is written without prompting.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initDefaults, "defaults", false, "Write the default configuration without prompting")
	initCmd.Flags().BoolVar(&initAccessible, "accessible", false, "Use accessible forms (screen readers)")
}

func initTarget() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.ConfigFilePath()
}

func runInit(cmd *cobra.Command, args []string) error {
	target := initTarget()
	force, _ := cmd.Flags().GetBool("force")
	exists := utils.FileExists(target)

	if initDefaults {
		if exists && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", target)
		}
		if err := config.Save(config.Default(), target); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.SuccessStyle.Render("Wrote "+target))
		return nil
	}

	// Start from the existing file so the editor shows current values
	cfg := config.Default()
	if exists {
		loaded, err := loadConfig(target)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	saved, err := runEditor(tui.Options{
		Config:     cfg,
		Target:     target,
		Accessible: initAccessible,
		SaveFunc: func(c *config.Config) error {
			return config.Save(c, target)
		},
	})
	if err != nil {
		return err
	}
	if saved {
		fmt.Fprintln(cmd.OutOrStdout(), tui.SuccessStyle.Render("Wrote "+target))
	}
	return nil
}
