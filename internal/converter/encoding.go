package converter

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DetectEncoding detects the character encoding of HTML content
func DetectEncoding(content []byte) string {
	head := strings.ToLower(string(content[:min(1024, len(content))]))
	if enc := extractCharsetFromMeta(head); enc != "" {
		return enc
	}

	if _, name, _ := charset.DetermineEncoding(content, "text/html"); name != "" {
		return name
	}
	return "utf-8"
}

// extractCharsetFromMeta extracts charset from a lowercased meta tag
func extractCharsetFromMeta(html string) string {
	idx := strings.Index(html, "charset=")
	if idx == -1 {
		return ""
	}
	start := idx + len("charset=")
	if start < len(html) && (html[start] == '"' || html[start] == '\'') {
		start++
	}
	end := start
	for end < len(html) && !strings.ContainsRune("\"'; >", rune(html[end])) {
		end++
	}
	return strings.TrimSpace(html[start:end])
}

// ConvertToUTF8 converts content from its detected encoding to UTF-8.
// Unknown encodings are returned as-is.
func ConvertToUTF8(content []byte) ([]byte, error) {
	enc := DetectEncoding(content)
	if enc == "utf-8" || enc == "utf8" {
		return content, nil
	}

	e, err := htmlindex.Get(enc)
	if err != nil {
		return content, nil
	}
	return io.ReadAll(transform.NewReader(bytes.NewReader(content), e.NewDecoder()))
}
