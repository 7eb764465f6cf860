package sdkdoc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/sitedocs-go/internal/converter"
	"github.com/quantmind-br/sitedocs-go/internal/domain"
	"github.com/quantmind-br/sitedocs-go/internal/utils"
)

const (
	// APITitle is the title of the assembled API reference
	APITitle = "SDK API Reference"

	// DefaultSourceName names the repository the reference is generated from
	DefaultSourceName = "cloud-sdk"

	readmeFile = "README.md"
	indexFile  = "index.html"
)

// Assembler builds the single-page API reference from TypeDoc's output
type Assembler struct {
	sourceName string
	html       *converter.Pipeline
	logger     *utils.Logger
}

// AssemblerOptions configures an Assembler
type AssemblerOptions struct {
	SourceName string
	// LinkBase is prepended to relative links when converting TypeDoc HTML,
	// typically the generated directory relative to the reference page
	LinkBase string
	Logger   *utils.Logger
}

// NewAssembler creates a new Assembler
func NewAssembler(opts AssemblerOptions) *Assembler {
	if opts.SourceName == "" {
		opts.SourceName = DefaultSourceName
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}
	return &Assembler{
		sourceName: opts.SourceName,
		html:       converter.NewPipeline(converter.PipelineOptions{LinkBase: opts.LinkBase}),
		logger:     opts.Logger,
	}
}

// Header returns the title and disclaimer every reference starts with
func (a *Assembler) Header() string {
	return fmt.Sprintf("# %s\n\n> This documentation is auto-generated from the `%s` repository using TypeDoc.\n\n",
		APITitle, a.sourceName)
}

// Assemble reads the generated directory and returns the reference content.
// TypeDoc's README.md is preferred; without it the HTML index page is
// converted. With neither, only the header is returned.
func (a *Assembler) Assemble(generatedDir string) (string, error) {
	if !utils.DirExists(generatedDir) {
		return "", domain.NewDependencyError("generated docs directory", generatedDir)
	}

	header := a.Header()

	readme, err := os.ReadFile(filepath.Join(generatedDir, readmeFile))
	if err == nil {
		return header + converter.StripLeadingHeading(string(readme)), nil
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read %s: %w", readmeFile, err)
	}

	indexPath := filepath.Join(generatedDir, indexFile)
	index, err := os.ReadFile(indexPath)
	if os.IsNotExist(err) {
		a.logger.Warn().Str("dir", generatedDir).Msg("TypeDoc produced neither README.md nor index.html")
		return header, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", indexFile, err)
	}

	a.logger.Debug().Str("file", indexPath).Msg("No README.md, converting TypeDoc HTML")
	res, err := a.html.Convert(index, "file://"+filepath.ToSlash(indexPath))
	if err != nil {
		return "", fmt.Errorf("failed to convert %s: %w", indexFile, err)
	}

	body := strings.TrimLeft(converter.StripLeadingHeading(res.Markdown+"\n"), "\n")
	return header + body, nil
}
