package site

import (
	"strings"
)

type RouteKind string

const (
	RouteIndex RouteKind = "index"
	RoutePost  RouteKind = "post"
)

type Route struct {
	Kind RouteKind
	Slug string
	// Source is the content file behind a post route.
	Source  string
	OutPath string
}

func (r Route) String() string {
	var parts []string
	parts = append(parts, string(r.Kind))
	if r.Slug != "" {
		parts = append(parts, "slug="+r.Slug)
	}
	if r.OutPath != "" {
		parts = append(parts, "out="+r.OutPath)
	}
	return strings.Join(parts, " ")
}
