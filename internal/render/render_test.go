package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ssg/internal/domain/config"
	"ssg/internal/domain/content"
	domainerr "ssg/internal/domain/errors"
)

func meta(title, url, desc, published string) content.Metadata {
	return content.Metadata{
		Title:     title,
		URL:       url,
		Published: published,
		Meta:      content.Meta{Description: desc},
	}
}

func TestRenderListing_Empty(t *testing.T) {
	require.Equal(t, "", RenderListing(nil, "https://example.com"))
}

func TestRenderListing_OrderAndPrefix(t *testing.T) {
	out := RenderListing([]content.Metadata{
		meta("Zeta", "https://example.com/posts/zeta", "last letter", "2020-01-01"),
		meta("Alpha", "alpha", "first <b>letter</b>", "2021-01-01"),
	}, "https://example.com")

	want := `<div class="post-preview">
<a href="/posts/zeta" title="Zeta">
<h2 class="post-title">Zeta</h2>
<h3 class="post-subtitle">last letter</h3>
</a>
<p class="post-meta">2020-01-01</p>
</div>
<div class="post-preview">
<a href="alpha" title="Alpha">
<h2 class="post-title">Alpha</h2>
<h3 class="post-subtitle">first <b>letter</b></h3>
</a>
<p class="post-meta">2021-01-01</p>
</div>
`
	require.Equal(t, want, out)
}

func TestRenderListing_OneFragmentPerEntry(t *testing.T) {
	metas := make([]content.Metadata, 5)
	for i := range metas {
		metas[i] = meta("same", "same", "same", "same")
	}
	out := RenderListing(metas, "")
	require.Equal(t, 5, strings.Count(out, `<div class="post-preview">`))
}

func TestRenderHeadTags(t *testing.T) {
	m := meta("T", "t", "D", "P")
	m.Meta.Keywords = "K"
	m.Meta.OpenGraph.Title = content.Some("OG T")
	m.Meta.Twitter.Card = content.Some("summary")

	require.Equal(t, `<title>T</title>
<meta name="description" content="D">
<meta name="keywords" content="K">
<meta name="og:title" content="OG T">
<meta name="twitter:card" content="summary">`, RenderHeadTags(m))
}

func TestComposite(t *testing.T) {
	lines := []string{
		"<html>",
		"   <body>  ",
		"\t{{POST_LIST}}",
		"<p>{{SITE_TITLE}} / {{SITE_TITLE}}</p>",
		"   </body>",
		"</html>",
	}
	out := Composite(lines,
		Replacement{Token: TokenPostList, Fragment: "  <li>{{SITE_TITLE}}</li>  "},
		Replacement{Token: TokenSiteTitle, Fragment: "Blog"},
	)

	require.Equal(t, "<html>\n<body>\n  <li>{{SITE_TITLE}}</li>  \n<p>Blog / Blog</p>\n</body>\n</html>\n", out)
}

func TestCompositeFile(t *testing.T) {
	dir := t.TempDir()
	tpl := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(tpl, []byte("  <ul>\n  {{POST_LIST}}\n  </ul>\n"), 0o644))
	out := filepath.Join(dir, "dist", "nested", "index.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(out), 0o755))
	require.NoError(t, os.WriteFile(out, []byte("stale content that is much longer than the result"), 0o644))

	require.NoError(t, CompositeFile(tpl, out, Replacement{Token: TokenPostList, Fragment: "<li>x</li>"}))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "<ul>\n<li>x</li>\n</ul>\n", string(got))
}

func TestLoadTemplate_Missing(t *testing.T) {
	_, err := LoadTemplate(filepath.Join(t.TempDir(), "nope.html"))
	require.True(t, errors.Is(err, domainerr.ErrIO))
}

func TestWriteOutput_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := WriteOutput(filepath.Join(blocker, "index.html"), []byte("x"))
	require.True(t, errors.Is(err, domainerr.ErrIO))
}

func TestMarkdownRenderer_Strikethrough(t *testing.T) {
	out, err := NewMarkdownRenderer(Features{}).Render([]byte("~~gone~~ kept"))
	require.NoError(t, err)
	require.Contains(t, string(out), "<del>gone</del> kept")
}

func TestPlaceholderRenderer(t *testing.T) {
	dir := t.TempDir()
	idx := filepath.Join(dir, "index.html")
	post := filepath.Join(dir, "post.html")
	require.NoError(t, os.WriteFile(idx, []byte("<h1>{{SITE_TITLE}}</h1>\n{{POST_LIST}}\n"), 0o644))
	require.NoError(t, os.WriteFile(post, []byte("<head>\n  {{HEAD}}\n</head>\n<article>\n  {{CONTENT}}\n</article>\n"), 0o644))

	r, err := NewPlaceholderRenderer(idx, post, nil)
	require.NoError(t, err)
	require.True(t, r.HasPostTemplate())

	site := config.SiteConfig{Title: "Blog", SiteURL: "https://example.com"}
	ctx := context.Background()

	page, err := r.RenderIndex(ctx, IndexPage{Site: site, Posts: []content.Metadata{meta("A", "https://example.com/a", "d", "p")}})
	require.NoError(t, err)
	require.Contains(t, string(page), "<h1>Blog</h1>")
	require.Contains(t, string(page), `<a href="/a" title="A">`)

	p := content.Post{Meta: meta("A", "a", "d", "p"), Body: "before\n\n+++\n\n~~x~~"}
	page, err = r.RenderPost(ctx, PostPage{Site: site, Post: p})
	require.NoError(t, err)
	require.Contains(t, string(page), "<title>A</title>")
	require.Contains(t, string(page), "<p>+++</p>")
	require.Contains(t, string(page), "<del>x</del>")
}

func TestPlaceholderRenderer_NoPostTemplate(t *testing.T) {
	dir := t.TempDir()
	idx := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(idx, []byte("{{POST_LIST}}"), 0o644))

	r, err := NewPlaceholderRenderer(idx, "", nil)
	require.NoError(t, err)
	require.False(t, r.HasPostTemplate())

	_, err = r.RenderPost(context.Background(), PostPage{})
	require.ErrorIs(t, err, ErrNoPostTemplate)
}
