package converter

import (
	"fmt"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/quantmind-br/sitedocs-go/internal/domain"
	"gopkg.in/yaml.v3"
)

var excessBlankLines = regexp.MustCompile(`\n{4,}`)

// MarkdownConverter converts HTML to Markdown
type MarkdownConverter struct{}

// NewMarkdownConverter creates a new Markdown converter
func NewMarkdownConverter() *MarkdownConverter {
	return &MarkdownConverter{}
}

// Convert converts HTML to Markdown
func (c *MarkdownConverter) Convert(html string) (string, error) {
	markdown, err := md.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}
	return cleanMarkdown(markdown), nil
}

// cleanMarkdown collapses runs of blank lines and trims the result
func cleanMarkdown(markdown string) string {
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	markdown = excessBlankLines.ReplaceAllString(markdown, "\n\n\n")
	return strings.TrimSpace(markdown)
}

// StripLeadingHeading removes the first line of content, including its
// newline, when it is a markdown heading. Anything else is returned unchanged.
func StripLeadingHeading(content string) string {
	first, rest, found := strings.Cut(content, "\n")
	if !found || !strings.HasPrefix(first, "#") {
		return content
	}
	return rest
}

// GenerateFrontmatter generates YAML frontmatter for a page
func GenerateFrontmatter(page *domain.Page) (string, error) {
	data, err := yaml.Marshal(page.ToFrontmatter())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("---\n%s---\n\n", string(data)), nil
}

// AddFrontmatter prepends YAML frontmatter to the page content
func AddFrontmatter(page *domain.Page) (string, error) {
	frontmatter, err := GenerateFrontmatter(page)
	if err != nil {
		return "", err
	}
	return frontmatter + page.Content, nil
}
