package converter

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// DefaultContentSelectors locate the main column of a TypeDoc page, most
// specific first
var DefaultContentSelectors = []string{
	".col-content",
	".tsd-panel-group",
	"main",
	"article",
}

// ContentExtractor extracts the main content from an HTML page
type ContentExtractor struct {
	selectors []string
}

// NewContentExtractor creates an extractor that tries selectors in order.
// An empty list uses DefaultContentSelectors.
func NewContentExtractor(selectors ...string) *ContentExtractor {
	if len(selectors) == 0 {
		selectors = DefaultContentSelectors
	}
	return &ContentExtractor{selectors: selectors}
}

// Extract returns the content HTML and the page title. When no selector
// matches, the readability algorithm picks the content, and as a last
// resort the whole body is used.
func (e *ContentExtractor) Extract(html, sourceURL string) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", "", err
	}
	title := extractTitle(doc)

	for _, selector := range e.selectors {
		content := doc.Find(selector).First()
		if content.Length() == 0 {
			continue
		}
		contentHTML, err := content.Html()
		if err != nil {
			return "", "", err
		}
		return contentHTML, title, nil
	}

	if content, articleTitle, ok := extractWithReadability(html, sourceURL); ok {
		if title == "" {
			title = articleTitle
		}
		return content, title, nil
	}

	body, err := doc.Find("body").Html()
	if err != nil || strings.TrimSpace(body) == "" {
		return html, title, nil
	}
	return body, title, nil
}

func extractWithReadability(html, sourceURL string) (string, string, bool) {
	parsedURL, err := url.Parse(sourceURL)
	if err != nil || sourceURL == "" {
		parsedURL = &url.URL{Scheme: "file", Path: "/index.html"}
	}

	article, err := readability.FromReader(strings.NewReader(html), parsedURL)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		return "", "", false
	}
	return article.Content, article.Title, true
}

// extractTitle prefers the first h1, then the <title> tag
func extractTitle(doc *goquery.Document) string {
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	// TypeDoc titles read "Name | Package"
	if name, _, found := strings.Cut(title, " | "); found {
		return strings.TrimSpace(name)
	}
	return title
}
