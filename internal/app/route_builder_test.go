package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ssg/internal/domain/content"
	"ssg/internal/domain/site"
)

func postWithTitle(src, title string) content.Post {
	return content.Post{Source: src, Meta: content.Metadata{Title: title, Slug: content.DeriveSlug(title)}}
}

func TestBuildPostRoutes(t *testing.T) {
	var rb RouteBuilder
	routes, collisions := rb.BuildPostRoutes([]content.Post{
		postWithTitle("a.md", "Hello World"),
		postWithTitle("b.md", "../Escape/Attempt"),
		postWithTitle("c.md", "hello world"),
		postWithTitle("d.md", ".."),
	})

	require.Equal(t, []site.Route{
		{Kind: site.RoutePost, Slug: "hello_world", Source: "a.md", OutPath: filepath.Join("hello_world", "index.html")},
		{Kind: site.RoutePost, Slug: "../escape/attempt", Source: "b.md", OutPath: filepath.Join("..-escape-attempt", "index.html")},
		{Kind: site.RoutePost, Slug: "..", Source: "d.md", OutPath: filepath.Join("untitled", "index.html")},
	}, routes)
	require.Equal(t, []Collision{{Slug: "hello_world", Source: "c.md", Kept: "a.md"}}, collisions)
}

func TestIndexRoute(t *testing.T) {
	r := RouteBuilder{}.IndexRoute()
	require.Equal(t, "index out=index.html", r.String())
}
