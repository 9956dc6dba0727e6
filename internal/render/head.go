package render

import (
	"strings"

	"ssg/internal/domain/content"
)

// RenderHeadTags builds the <title> and <meta> tags for a post page. Social
// tags absent from the front matter are left out.
func RenderHeadTags(m content.Metadata) string {
	var b strings.Builder
	b.WriteString("<title>" + m.Title + "</title>")
	writeMeta(&b, "description", m.Meta.Description)
	writeMeta(&b, "keywords", m.Meta.Keywords)

	og := m.Meta.OpenGraph
	writeOptionalMeta(&b, "og:url", og.URL)
	writeOptionalMeta(&b, "og:type", og.Type)
	writeOptionalMeta(&b, "og:title", og.Title)
	writeOptionalMeta(&b, "og:image", og.Image)
	writeOptionalMeta(&b, "og:description", og.Description)

	tw := m.Meta.Twitter
	writeOptionalMeta(&b, "twitter:card", tw.Card)
	writeOptionalMeta(&b, "twitter:image", tw.Image)
	writeOptionalMeta(&b, "twitter:title", tw.Title)
	writeOptionalMeta(&b, "twitter:description", tw.Description)
	return b.String()
}

func writeMeta(b *strings.Builder, name, value string) {
	b.WriteString("\n<meta name=\"" + name + "\" content=\"" + value + "\">")
}

func writeOptionalMeta(b *strings.Builder, name string, f content.Field) {
	if f.Present {
		writeMeta(b, name, f.Value)
	}
}
