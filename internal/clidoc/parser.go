// Package clidoc turns the --help output of the platform CLI into a
// categorized markdown command reference.
package clidoc

import (
	"regexp"
	"strings"

	"github.com/quantmind-br/sitedocs-go/internal/domain"
)

// DefaultPrefix is the invocation prefix that starts a command entry
const DefaultPrefix = "af "

// optionPattern captures a leading long flag and the text that follows it.
// It is not anchored, so "-v, --verbose  Show details" yields "--verbose".
var optionPattern = regexp.MustCompile(`(--[\w-]+)\s+(.*)`)

// Parser converts raw help text into command records
type Parser struct {
	prefix string
}

// NewParser creates a parser for commands starting with prefix
func NewParser(prefix string) *Parser {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Parser{prefix: prefix}
}

// Prefix returns the invocation prefix
func (p *Parser) Prefix() string {
	return p.prefix
}

// Parse scans text line by line and returns the commands in encounter order.
// Lines before the first command line are ignored.
func (p *Parser) Parse(text string) []domain.CommandRecord {
	var (
		records []domain.CommandRecord
		current *domain.CommandRecord
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, p.prefix):
			if current != nil {
				records = append(records, *current)
			}
			current = &domain.CommandRecord{CommandLine: trimmed}

		case current == nil || trimmed == "":
			continue

		case strings.Contains(line, "--"):
			if opt, ok := parseOption(line); ok {
				current.Options = append(current.Options, opt)
				continue
			}
			current.Description += trimmed + " "

		default:
			current.Description += trimmed + " "
		}
	}

	if current != nil {
		records = append(records, *current)
	}

	return records
}

func parseOption(line string) (domain.Option, bool) {
	m := optionPattern.FindStringSubmatch(line)
	if m == nil {
		return domain.Option{}, false
	}
	return domain.Option{
		Flag:        m[1],
		Description: strings.TrimRightFunc(m[2], isSpace),
	}, true
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}
