package converter

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TagsToRemove are HTML tags that never carry reference content
var TagsToRemove = []string{
	"script",
	"style",
	"noscript",
	"iframe",
	"form",
	"input",
	"button",
	"svg",
	"footer",
}

// ChromeSelectors match the navigation and toolbar chrome of a TypeDoc site
var ChromeSelectors = []string{
	"header.tsd-page-toolbar",
	".tsd-navigation",
	".tsd-page-navigation",
	".col-sidebar",
	".site-menu",
	".tsd-generator",
	".tsd-anchor-icon",
	".tsd-breadcrumb",
	"nav",
}

// Sanitizer cleans HTML content for conversion
type Sanitizer struct {
	linkBase         string
	removeNavigation bool
}

// SanitizerOptions contains options for the sanitizer
type SanitizerOptions struct {
	// LinkBase is prepended to relative links, so pages linked from the
	// generated site still resolve from the assembled document
	LinkBase         string
	RemoveNavigation bool
}

// NewSanitizer creates a new sanitizer
func NewSanitizer(opts SanitizerOptions) *Sanitizer {
	return &Sanitizer{
		linkBase:         opts.LinkBase,
		removeNavigation: opts.RemoveNavigation,
	}
}

// Sanitize cleans HTML content
func (s *Sanitizer) Sanitize(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	s.SanitizeSelection(doc.Selection)
	return doc.Html()
}

// SanitizeSelection cleans a selection in place
func (s *Sanitizer) SanitizeSelection(sel *goquery.Selection) {
	for _, tag := range TagsToRemove {
		findWithRoot(sel, tag).Remove()
	}

	if s.removeNavigation {
		for _, selector := range ChromeSelectors {
			findWithRoot(sel, selector).Remove()
		}
	}

	findWithRoot(sel, "[hidden]").Remove()
	findWithRoot(sel, "[style*='display:none']").Remove()
	findWithRoot(sel, "[style*='display: none']").Remove()

	if s.linkBase != "" {
		s.rebaseLinks(sel)
	}

	removeEmptyElements(sel)
}

func (s *Sanitizer) rebaseLinks(sel *goquery.Selection) {
	base, err := url.Parse(s.linkBase)
	if err != nil {
		return
	}
	findWithRoot(sel, "a[href]").Each(func(_ int, node *goquery.Selection) {
		href, _ := node.Attr("href")
		node.SetAttr("href", resolveLink(base, href))
	})
	findWithRoot(sel, "img[src]").Each(func(_ int, node *goquery.Selection) {
		src, _ := node.Attr("src")
		node.SetAttr("src", resolveLink(base, src))
	})
}

// resolveLink resolves a relative reference against base. Fragments,
// absolute URLs and non-navigational schemes are left alone.
func resolveLink(base *url.URL, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "#") ||
		strings.HasPrefix(ref, "javascript:") ||
		strings.HasPrefix(ref, "mailto:") ||
		strings.HasPrefix(ref, "data:") {
		return ref
	}

	refURL, err := url.Parse(ref)
	if err != nil || refURL.IsAbs() || strings.HasPrefix(ref, "/") {
		return ref
	}
	return base.ResolveReference(refURL).String()
}

func removeEmptyElements(sel *goquery.Selection) {
	for _, tag := range []string{"p", "div", "span", "section"} {
		findWithRoot(sel, tag).Each(func(_ int, node *goquery.Selection) {
			if strings.TrimSpace(node.Text()) == "" && node.Children().Length() == 0 {
				node.Remove()
			}
		})
	}
}

// findWithRoot matches selector against sel itself and its descendants
func findWithRoot(sel *goquery.Selection, selector string) *goquery.Selection {
	return sel.Filter(selector).AddSelection(sel.Find(selector))
}
