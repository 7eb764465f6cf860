package tui

import (
	"github.com/charmbracelet/huh"
)

func CreatePathsForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("root").
				Title("Site Root").
				Description("Documentation site checkout; relative paths resolve here").
				Value(&values.Root).
				Placeholder(".").
				Validate(ValidateRequired),

			huh.NewInput().
				Key("docs_dir").
				Title("Docs Directory").
				Description("Holds the generated pages and the run state file").
				Value(&values.DocsDir).
				Placeholder("docs").
				Validate(ValidateRequired),
		),
	).WithTheme(GetTheme())
}

func CreateCLIForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("repo").
				Title("CLI Repository").
				Description("Path to the built CLI checkout").
				Value(&values.CLIRepo).
				Placeholder("../../cloud-cli").
				Validate(ValidateRequired),

			huh.NewInput().
				Key("entry").
				Title("Entry Point").
				Description("Script run with node to print the help output").
				Value(&values.CLIEntry).
				Placeholder("dist/index.js"),

			huh.NewInput().
				Key("prefix").
				Title("Command Prefix").
				Description("Lines starting with this text begin a command").
				Value(&values.CLIPrefix).
				Placeholder("af "),

			huh.NewInput().
				Key("output").
				Title("Output Page").
				Value(&values.CLIOutput).
				Placeholder("docs/cli/commands.md"),
		),
	).WithTheme(GetTheme())
}

func CreateSDKForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("repo").
				Title("SDK Repository").
				Description("Path to the SDK checkout").
				Value(&values.SDKRepo).
				Placeholder("../package-cloud-sdk").
				Validate(ValidateRequired),

			huh.NewInput().
				Key("entry_point").
				Title("TypeDoc Entry Point").
				Value(&values.SDKEntryPoint).
				Placeholder("src/index.ts"),

			huh.NewInput().
				Key("plugin").
				Title("TypeDoc Plugin").
				Description("Leave empty to convert TypeDoc's HTML output instead").
				Value(&values.SDKPlugin).
				Placeholder("typedoc-plugin-markdown"),

			huh.NewInput().
				Key("generated_dir").
				Title("Generated Directory").
				Description("Where TypeDoc writes its output").
				Value(&values.SDKGeneratedDir).
				Placeholder("docs/sdk/generated"),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("output").
				Title("API Page").
				Value(&values.SDKOutput).
				Placeholder("docs/sdk/api.md"),

			huh.NewInput().
				Key("quickstart").
				Title("Quickstart Page").
				Value(&values.SDKQuickstart).
				Placeholder("docs/sdk/quickstart.md"),

			huh.NewInput().
				Key("preserve_threshold").
				Title("Preserve Threshold").
				Description("Quickstarts longer than this many characters are left alone (0 always regenerates)").
				Value(&values.PreserveThreshold).
				Placeholder("500").
				Validate(ValidateNonNegativeInt),
		),
	).WithTheme(GetTheme())
}

func CreateOutputForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("frontmatter").
				Title("Frontmatter").
				Description("Prepend a YAML block with title, source and revision").
				Value(&values.Frontmatter),

			huh.NewConfirm().
				Key("state").
				Title("Run State").
				Description("Record page hashes in the docs directory").
				Value(&values.State),

			huh.NewConfirm().
				Key("progress").
				Title("Progress").
				Description("Show a spinner while external tools run").
				Value(&values.Progress),
		),
	).WithTheme(GetTheme())
}

func CreateCacheForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("enabled").
				Title("Enable Cache").
				Description("Reuse captured help output while the CLI revision is unchanged").
				Value(&values.CacheEnabled),

			huh.NewInput().
				Key("ttl").
				Title("Cache TTL").
				Description("How long to keep cached output (e.g., 24h, 168h)").
				Value(&values.CacheTTL).
				Placeholder("168h").
				Validate(ValidateDuration),

			huh.NewInput().
				Key("directory").
				Title("Cache Directory").
				Description("Directory for cache storage").
				Value(&values.CacheDirectory).
				Placeholder("~/.sitedocs/cache"),
		),
	).WithTheme(GetTheme())
}

func CreateLoggingForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("level").
				Title("Log Level").
				Description("Minimum log level to display").
				Options(
					huh.NewOption("Debug", "debug"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Warn", "warn"),
					huh.NewOption("Error", "error"),
				).
				Value(&values.LogLevel).
				Validate(ValidateLogLevel),

			huh.NewSelect[string]().
				Key("format").
				Title("Log Format").
				Description("Output format for logs").
				Options(
					huh.NewOption("Pretty (human-readable)", "pretty"),
					huh.NewOption("JSON (structured)", "json"),
				).
				Value(&values.LogFormat).
				Validate(ValidateLogFormat),
		),
	).WithTheme(GetTheme())
}

func GetFormForCategory(category string, values *ConfigValues) *huh.Form {
	switch category {
	case "paths":
		return CreatePathsForm(values)
	case "cli":
		return CreateCLIForm(values)
	case "sdk":
		return CreateSDKForm(values)
	case "output":
		return CreateOutputForm(values)
	case "cache":
		return CreateCacheForm(values)
	case "logging":
		return CreateLoggingForm(values)
	default:
		return nil
	}
}
