package clidoc

import (
	"fmt"
	"strings"

	"github.com/quantmind-br/sitedocs-go/internal/domain"
)

const (
	// DocumentTitle is the title of the generated command reference
	DocumentTitle = "CLI Commands"

	// DefaultSourceName names the repository the reference is generated from
	DefaultSourceName = "cloud-cli"
)

// Renderer renders grouped commands as markdown
type Renderer struct {
	sourceName string
}

// NewRenderer creates a renderer whose disclaimer names sourceName
func NewRenderer(sourceName string) *Renderer {
	if sourceName == "" {
		sourceName = DefaultSourceName
	}
	return &Renderer{sourceName: sourceName}
}

// Render produces the markdown document. Buckets are emitted in declaration
// order and empty buckets get no heading.
func (r *Renderer) Render(b *domain.Buckets) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", DocumentTitle)
	fmt.Fprintf(&sb, "> This documentation is auto-generated from the `%s` repository.\n\n", r.sourceName)
	sb.WriteString("## Available Commands\n\n")

	b.Each(func(c domain.Category, recs []domain.CommandRecord) {
		fmt.Fprintf(&sb, "## %s Commands\n\n", c.Title())
		for _, rec := range recs {
			writeCommand(&sb, rec)
		}
	})

	return sb.String()
}

func writeCommand(sb *strings.Builder, rec domain.CommandRecord) {
	fmt.Fprintf(sb, "### `%s`\n\n", rec.CommandLine)

	if desc := strings.TrimSpace(rec.Description); desc != "" {
		fmt.Fprintf(sb, "%s\n\n", desc)
	}

	if len(rec.Options) > 0 {
		sb.WriteString("**Options:**\n\n")
		for _, opt := range rec.Options {
			fmt.Fprintf(sb, "- `%s` - %s\n", opt.Flag, opt.Description)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("---\n\n")
}
