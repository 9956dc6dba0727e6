package render

import (
	"context"
	"errors"

	domainerr "ssg/internal/domain/errors"
)

type Renderer interface {
	RenderIndex(ctx context.Context, page IndexPage) ([]byte, error)
	RenderPost(ctx context.Context, page PostPage) ([]byte, error)
}

var ErrNoPostTemplate = errors.New("render: no post template configured")

// PlaceholderRenderer fills token placeholders in line-based templates.
type PlaceholderRenderer struct {
	index *Template
	post  *Template
	md    *MarkdownRenderer
}

// NewPlaceholderRenderer loads the index template and, when postPath is not
// empty, the post template.
func NewPlaceholderRenderer(indexPath, postPath string, md *MarkdownRenderer) (*PlaceholderRenderer, error) {
	idx, err := LoadTemplate(indexPath)
	if err != nil {
		return nil, err
	}
	r := &PlaceholderRenderer{index: idx, md: md}
	if postPath != "" {
		if r.post, err = LoadTemplate(postPath); err != nil {
			return nil, err
		}
	}
	if r.md == nil {
		r.md = NewMarkdownRenderer(DefaultFeatures())
	}
	return r, nil
}

func (r *PlaceholderRenderer) HasPostTemplate() bool {
	return r.post != nil
}

func (r *PlaceholderRenderer) RenderIndex(ctx context.Context, page IndexPage) ([]byte, error) {
	out := r.index.Composite(
		Replacement{Token: TokenPostList, Fragment: RenderListing(page.Posts, page.Site.SiteURL)},
		Replacement{Token: TokenSiteTitle, Fragment: page.Site.Title},
	)
	return []byte(out), nil
}

func (r *PlaceholderRenderer) RenderPost(ctx context.Context, page PostPage) ([]byte, error) {
	if r.post == nil {
		return nil, ErrNoPostTemplate
	}
	body, err := r.md.Render([]byte(page.Post.Body))
	if err != nil {
		return nil, domainerr.WithPath(err, page.Post.Source)
	}
	out := r.post.Composite(
		Replacement{Token: TokenHead, Fragment: RenderHeadTags(page.Post.Meta)},
		Replacement{Token: TokenContent, Fragment: string(body)},
		Replacement{Token: TokenTitle, Fragment: page.Post.Meta.Title},
		Replacement{Token: TokenSiteTitle, Fragment: page.Site.Title},
	)
	return []byte(out), nil
}
