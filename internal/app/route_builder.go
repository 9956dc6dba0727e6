package app

import (
	"path/filepath"
	"strings"

	"ssg/internal/domain/content"
	"ssg/internal/domain/site"
)

// Collision is a post whose slug was already taken by an earlier post.
type Collision struct {
	Slug   string
	Source string
	Kept   string
}

type RouteBuilder struct{}

func (rb RouteBuilder) IndexRoute() site.Route {
	return site.Route{Kind: site.RouteIndex, OutPath: "index.html"}
}

// BuildPostRoutes maps each post to <slug>/index.html, relative to the
// output directory. The first post to claim a slug wins.
func (rb RouteBuilder) BuildPostRoutes(posts []content.Post) ([]site.Route, []Collision) {
	var routes []site.Route
	var collisions []Collision
	taken := make(map[string]string, len(posts))
	for _, p := range posts {
		seg := safePathSegment(p.Meta.Slug)
		if kept, ok := taken[seg]; ok {
			collisions = append(collisions, Collision{Slug: seg, Source: p.Source, Kept: kept})
			continue
		}
		taken[seg] = p.Source
		routes = append(routes, site.Route{
			Kind:    site.RoutePost,
			Slug:    p.Meta.Slug,
			Source:  p.Source,
			OutPath: filepath.Join(seg, "index.html"),
		})
	}
	return routes, collisions
}

// safePathSegment keeps a slug inside the output directory.
func safePathSegment(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '-'
		}
		return r
	}, s)
	if s == "" || s == "." || s == ".." {
		return "untitled"
	}
	return s
}
