package clidoc

import (
	"testing"

	"github.com/quantmind-br/sitedocs-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHelp = `Usage: af [options] [command]

Alternate Futures CLI

Commands:
  af login
    Authenticate with your personal access token
  af agents list
    Lists all agents
    in the current project
    --verbose  Show details
    -o, --output <format>   Output format (json|table)
  af sites deploy <path>
    Deploy a static site
    --prod    Deploy to production
    -- separates extra args
  af help
`

func TestParser_SingleRecord(t *testing.T) {
	p := NewParser("af ")

	records := p.Parse("af agents list\n  Lists all agents\n  --verbose  Show details\n")

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "af agents list", rec.CommandLine)
	assert.Equal(t, "Lists all agents ", rec.Description)
	assert.Equal(t, []domain.Option{{Flag: "--verbose", Description: "Show details"}}, rec.Options)
}

func TestParser_NoPrefixedLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"only blank lines", "\n\n   \n"},
		{"usage without commands", "Usage: af [options]\n  --help  Show help\n"},
		{"prefix without space", "af\nafter\n"},
	}

	p := NewParser("af ")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, p.Parse(tt.input))
		})
	}
}

func TestParser_SampleHelp(t *testing.T) {
	records := NewParser(DefaultPrefix).Parse(sampleHelp)

	require.Len(t, records, 4)

	assert.Equal(t, "af login", records[0].CommandLine)
	assert.Equal(t, "Authenticate with your personal access token ", records[0].Description)
	assert.Empty(t, records[0].Options)

	assert.Equal(t, "af agents list", records[1].CommandLine)
	assert.Equal(t, "Lists all agents in the current project ", records[1].Description)
	assert.Equal(t, []domain.Option{
		{Flag: "--verbose", Description: "Show details"},
		{Flag: "--output", Description: "<format>   Output format (json|table)"},
	}, records[1].Options)

	assert.Equal(t, "af sites deploy <path>", records[2].CommandLine)
	assert.Equal(t, []domain.Option{{Flag: "--prod", Description: "Deploy to production"}}, records[2].Options)
	assert.Equal(t, "Deploy a static site -- separates extra args ", records[2].Description)

	assert.Equal(t, "af help", records[3].CommandLine)
	assert.Empty(t, records[3].Description)
}

func TestParser_MalformedOptionBecomesDescription(t *testing.T) {
	records := NewParser("af ").Parse("af config set\n  --\n  see docs -- for more\n")

	require.Len(t, records, 1)
	assert.Empty(t, records[0].Options)
	assert.Equal(t, "-- see docs -- for more ", records[0].Description)
}

func TestParser_FlagWithoutTrailingText(t *testing.T) {
	records := NewParser("af ").Parse("af storage ls\n  --all\n")

	require.Len(t, records, 1)
	assert.Empty(t, records[0].Options)
	assert.Equal(t, "--all ", records[0].Description)
}

func TestParser_PrefixedLineWithFlagsStartsRecord(t *testing.T) {
	records := NewParser("af ").Parse("af deploy --prod\n  Deploys\n")

	require.Len(t, records, 1)
	assert.Equal(t, "af deploy --prod", records[0].CommandLine)
	assert.Equal(t, "Deploys ", records[0].Description)
}

func TestParser_CRLF(t *testing.T) {
	records := NewParser("af ").Parse("af whoami\r\n  Show the current user\r\n  --json  Print JSON\r\n")

	require.Len(t, records, 1)
	assert.Equal(t, "af whoami", records[0].CommandLine)
	assert.Equal(t, "Show the current user ", records[0].Description)
	assert.Equal(t, "Print JSON", records[0].Options[0].Description)
}

func TestParser_DuplicateFlagsKept(t *testing.T) {
	records := NewParser("af ").Parse("af x\n --a  one\n --a  two\n")

	require.Len(t, records, 1)
	assert.Len(t, records[0].Options, 2)
}

func TestParser_IgnoresLinesBeforeFirstCommand(t *testing.T) {
	records := NewParser("af ").Parse("Options:\n  --version  Print version\nintro text\naf login\n")

	require.Len(t, records, 1)
	assert.Empty(t, records[0].Description)
	assert.Empty(t, records[0].Options)
}

func TestParser_CustomPrefix(t *testing.T) {
	p := NewParser("cloud ")
	assert.Equal(t, "cloud ", p.Prefix())

	records := p.Parse("af login\ncloud login\n  Sign in\n")
	require.Len(t, records, 1)
	assert.Equal(t, "cloud login", records[0].CommandLine)
	assert.Equal(t, "Sign in ", records[0].Description)
}

func TestNewParser_DefaultPrefix(t *testing.T) {
	assert.Equal(t, DefaultPrefix, NewParser("").Prefix())
}
