package render

import (
	"strings"

	"ssg/internal/domain/content"
)

// RenderListing folds metas into one HTML fragment, one entry per post, in
// the order given. siteRoot is stripped from each URL so links are
// root-relative. Text is emitted as-is; front matter is trusted input.
func RenderListing(metas []content.Metadata, siteRoot string) string {
	var b strings.Builder
	for _, m := range metas {
		writeListingEntry(&b, m, siteRoot)
	}
	return b.String()
}

func writeListingEntry(b *strings.Builder, m content.Metadata, siteRoot string) {
	href := m.URL
	if siteRoot != "" {
		href = strings.TrimPrefix(href, siteRoot)
	}

	b.WriteString(`<div class="post-preview">` + "\n")
	b.WriteString(`<a href="` + href + `" title="` + m.Title + `">` + "\n")
	b.WriteString(`<h2 class="post-title">` + m.Title + "</h2>\n")
	b.WriteString(`<h3 class="post-subtitle">` + m.Meta.Description + "</h3>\n")
	b.WriteString("</a>\n")
	b.WriteString(`<p class="post-meta">` + m.Published + "</p>\n")
	b.WriteString("</div>\n")
}
