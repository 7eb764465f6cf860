package converter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const typedocIndex = `<!DOCTYPE html>
<html class="default" lang="en">
<head><meta charset="utf-8"/><title>@af/cloud-sdk</title>
<script>window.searchData = "x";</script></head>
<body>
<header class="tsd-page-toolbar"><a href="index.html" class="title">@af/cloud-sdk</a></header>
<div class="container container-main">
  <div class="col-content">
    <div class="tsd-page-title"><h1>@af/cloud-sdk</h1></div>
    <section class="tsd-panel">
      <h2>Classes</h2>
      <p><a href="classes/AlternateFuturesSdk.html">AlternateFuturesSdk</a></p>
      <p><a href="#anchor">Jump</a> and <a href="https://example.com/docs">docs</a></p>
    </section>
  </div>
  <div class="col-sidebar"><nav class="tsd-navigation"><a href="modules.html">Modules</a></nav></div>
</div>
<footer><p class="tsd-generator">Generated using TypeDoc</p></footer>
</body></html>`

func TestPipeline_ConvertTypeDocPage(t *testing.T) {
	p := NewPipeline(PipelineOptions{LinkBase: "generated/"})

	res, err := p.Convert([]byte(typedocIndex), "")
	require.NoError(t, err)

	assert.Equal(t, "@af/cloud-sdk", res.Title)
	assert.Contains(t, res.Markdown, "## Classes")
	assert.Contains(t, res.Markdown, "[AlternateFuturesSdk](generated/classes/AlternateFuturesSdk.html)")
	assert.Contains(t, res.Markdown, "[Jump](#anchor)")
	assert.Contains(t, res.Markdown, "[docs](https://example.com/docs)")
	assert.NotContains(t, res.Markdown, "Modules")
	assert.NotContains(t, res.Markdown, "Generated using TypeDoc")
	assert.NotContains(t, res.Markdown, "searchData")
}

func TestPipeline_ConvertWithoutLinkBase(t *testing.T) {
	res, err := NewPipeline(PipelineOptions{}).Convert([]byte(typedocIndex), "")
	require.NoError(t, err)
	assert.Contains(t, res.Markdown, "(classes/AlternateFuturesSdk.html)")
}

func TestPipeline_CustomSelector(t *testing.T) {
	html := `<html><body><div id="api"><h2>API</h2><p>Body text</p></div><p>Outside</p></body></html>`

	res, err := NewPipeline(PipelineOptions{ContentSelectors: []string{"#api"}}).Convert([]byte(html), "")
	require.NoError(t, err)

	assert.Contains(t, res.Markdown, "## API")
	assert.NotContains(t, res.Markdown, "Outside")
}

func TestContentExtractor_FallsBackToBody(t *testing.T) {
	html := `<html><head><title>Plain | pkg</title></head><body><p>Short</p></body></html>`

	content, title, err := NewContentExtractor(".missing").Extract(html, "")
	require.NoError(t, err)

	assert.Equal(t, "Plain", title)
	assert.Contains(t, content, "Short")
}

func TestResolveLink(t *testing.T) {
	base, err := url.Parse("generated/")
	require.NoError(t, err)

	tests := []struct {
		ref      string
		expected string
	}{
		{"classes/Sdk.html", "generated/classes/Sdk.html"},
		{"#top", "#top"},
		{"https://example.com/x", "https://example.com/x"},
		{"/abs/path.html", "/abs/path.html"},
		{"mailto:dev@example.com", "mailto:dev@example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveLink(base, tt.ref))
		})
	}
}

func TestSanitizer_Sanitize(t *testing.T) {
	s := NewSanitizer(SanitizerOptions{RemoveNavigation: true})

	got, err := s.Sanitize(`<div><script>alert(1)</script><nav>menu</nav><p hidden>secret</p><p></p><p>Keep</p></div>`)
	require.NoError(t, err)

	assert.Contains(t, got, "Keep")
	assert.NotContains(t, got, "alert")
	assert.NotContains(t, got, "menu")
	assert.NotContains(t, got, "secret")
}

func TestSanitizer_KeepsNavigationWhenDisabled(t *testing.T) {
	got, err := NewSanitizer(SanitizerOptions{}).Sanitize(`<div><nav>menu</nav><p>Keep</p></div>`)
	require.NoError(t, err)
	assert.Contains(t, got, "menu")
}

func TestDetectEncoding(t *testing.T) {
	assert.Equal(t, "utf-8", DetectEncoding([]byte(`<meta charset="UTF-8">`)))
	assert.Equal(t, "iso-8859-1", DetectEncoding([]byte(`<meta charset='iso-8859-1'>`)))
	assert.NotEmpty(t, DetectEncoding(nil))
}

func TestConvertToUTF8(t *testing.T) {
	latin1 := append([]byte(`<meta charset="iso-8859-1"><p>caf`), 0xe9, '<', '/', 'p', '>')

	got, err := ConvertToUTF8(latin1)
	require.NoError(t, err)
	assert.Contains(t, string(got), "café")

	utf8 := []byte(`<meta charset="utf-8"><p>café</p>`)
	got, err = ConvertToUTF8(utf8)
	require.NoError(t, err)
	assert.Equal(t, utf8, got)
}
