package render

import (
	"ssg/internal/domain/config"
	"ssg/internal/domain/content"
)

type IndexPage struct {
	Site  config.SiteConfig
	Posts []content.Metadata
}

type PostPage struct {
	Site config.SiteConfig
	Post content.Post
}
