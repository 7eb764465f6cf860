package domain

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Option is a single flag entry parsed from CLI help output
type Option struct {
	Flag        string `json:"flag" yaml:"flag"`
	Description string `json:"description" yaml:"description"`
}

// CommandRecord is the structured help entry of one CLI command.
// Records are built incrementally by the parser and must not be
// modified once appended to its output.
type CommandRecord struct {
	CommandLine string   `json:"command_line" yaml:"command_line"`
	Description string   `json:"description" yaml:"description"`
	Options     []Option `json:"options,omitempty" yaml:"options,omitempty"`
}

// Subcommand returns the second whitespace-separated token of the command
// line, or an empty string when there is none.
func (r CommandRecord) Subcommand() string {
	fields := strings.Fields(r.CommandLine)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

// Category is one of the fixed buckets commands are grouped into
type Category string

// Categories in declaration order. The order is significant: it drives both
// classification priority and rendering order.
const (
	CategoryAuth    Category = "auth"
	CategoryAgents  Category = "agents"
	CategorySites   Category = "sites"
	CategoryStorage Category = "storage"
	CategoryConfig  Category = "config"
	CategoryOther   Category = "other"
)

var categoryOrder = []Category{
	CategoryAuth,
	CategoryAgents,
	CategorySites,
	CategoryStorage,
	CategoryConfig,
	CategoryOther,
}

// Categories returns all categories in declaration order
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Title returns the capitalized category name ("auth" -> "Auth")
func (c Category) Title() string {
	// A Caser holds state and must not be shared between goroutines
	return cases.Title(language.Und).String(string(c))
}

// Valid reports whether c is one of the declared categories
func (c Category) Valid() bool {
	for _, known := range categoryOrder {
		if c == known {
			return true
		}
	}
	return false
}

// Buckets groups command records by category while keeping
// encounter order inside each bucket
type Buckets struct {
	records map[Category][]CommandRecord
}

// NewBuckets creates an empty set of buckets
func NewBuckets() *Buckets {
	return &Buckets{records: make(map[Category][]CommandRecord)}
}

// Add appends a record to the given bucket. Unknown categories go to
// CategoryOther.
func (b *Buckets) Add(c Category, rec CommandRecord) {
	if !c.Valid() {
		c = CategoryOther
	}
	b.records[c] = append(b.records[c], rec)
}

// Get returns the records of a bucket in encounter order
func (b *Buckets) Get(c Category) []CommandRecord {
	return b.records[c]
}

// Len returns the total number of records across all buckets
func (b *Buckets) Len() int {
	n := 0
	for _, recs := range b.records {
		n += len(recs)
	}
	return n
}

// Each calls fn for every non-empty bucket in declaration order
func (b *Buckets) Each(fn func(c Category, recs []CommandRecord)) {
	for _, c := range categoryOrder {
		recs := b.Get(c)
		if len(recs) == 0 {
			continue
		}
		fn(c, recs)
	}
}

// PackageManifest is the subset of an npm package.json the quickstart needs
type PackageManifest struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
}

// SourceInfo describes where a generated page came from
type SourceInfo struct {
	Repository string `json:"repository" yaml:"repository"`
	Revision   string `json:"revision,omitempty" yaml:"revision,omitempty"`
	Branch     string `json:"branch,omitempty" yaml:"branch,omitempty"`
}

// ShortRevision returns the first 12 characters of the revision
func (s SourceInfo) ShortRevision() string {
	if len(s.Revision) > 12 {
		return s.Revision[:12]
	}
	return s.Revision
}

// Page is a generated markdown file ready to be written
type Page struct {
	Path    string
	Title   string
	Content string
	Source  SourceInfo
}

// Frontmatter represents YAML frontmatter for generated pages
type Frontmatter struct {
	Title    string `yaml:"title"`
	Source   string `yaml:"source,omitempty"`
	Revision string `yaml:"revision,omitempty"`
	EditLink bool   `yaml:"editLink"`
}

// ToFrontmatter builds the frontmatter block for a page.
// It carries no timestamps or absolute paths so regenerating an unchanged
// page on any machine is a no-op.
func (p *Page) ToFrontmatter() *Frontmatter {
	fm := &Frontmatter{
		Title:    p.Title,
		Revision: p.Source.ShortRevision(),
	}
	if p.Source.Repository != "" {
		fm.Source = filepath.Base(p.Source.Repository)
	}
	return fm
}

// Command is an external process invocation
type Command struct {
	Name string
	Args []string
	Dir  string
}

// String renders the command the way an operator would type it
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}
