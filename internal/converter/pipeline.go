// Package converter turns generated HTML and markdown into the content of
// the assembled reference pages.
package converter

import (
	"strings"
)

// Result is the outcome of converting one HTML page
type Result struct {
	Title    string
	Markdown string
}

// Pipeline orchestrates the HTML to Markdown conversion process
type Pipeline struct {
	extractor   *ContentExtractor
	sanitizer   *Sanitizer
	mdConverter *MarkdownConverter
}

// PipelineOptions contains options for the conversion pipeline
type PipelineOptions struct {
	// ContentSelectors override DefaultContentSelectors
	ContentSelectors []string
	// LinkBase is prepended to relative links
	LinkBase string
}

// NewPipeline creates a new conversion pipeline
func NewPipeline(opts PipelineOptions) *Pipeline {
	return &Pipeline{
		extractor: NewContentExtractor(opts.ContentSelectors...),
		sanitizer: NewSanitizer(SanitizerOptions{
			LinkBase:         opts.LinkBase,
			RemoveNavigation: true,
		}),
		mdConverter: NewMarkdownConverter(),
	}
}

// Convert processes an HTML page into markdown
func (p *Pipeline) Convert(html []byte, sourceURL string) (*Result, error) {
	utf8, err := ConvertToUTF8(html)
	if err != nil {
		return nil, err
	}

	content, title, err := p.extractor.Extract(string(utf8), sourceURL)
	if err != nil {
		return nil, err
	}

	sanitized, err := p.sanitizer.Sanitize(content)
	if err != nil {
		return nil, err
	}

	markdown, err := p.mdConverter.Convert(sanitized)
	if err != nil {
		return nil, err
	}

	return &Result{
		Title:    strings.TrimSpace(title),
		Markdown: markdown,
	}, nil
}
