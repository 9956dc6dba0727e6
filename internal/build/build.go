package build

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"ssg/internal/app"
	"ssg/internal/domain/config"
	"ssg/internal/domain/content"
	domainerr "ssg/internal/domain/errors"
	"ssg/internal/index"
	"ssg/internal/ingest"
	"ssg/internal/logfields"
	"ssg/internal/metrics"
	"ssg/internal/render"
)

type Builder struct {
	Cfg     config.Config
	Logger  *slog.Logger
	Metrics metrics.Recorder
	// Index, when set, is rebuilt from the run's metadata after the pages
	// are written.
	Index *index.Store

	mu sync.Mutex
}

type Result struct {
	Posts    []content.Post
	Written  []string
	Duration time.Duration
}

// Run performs one generation pass. Files are processed one at a time and
// the first failure aborts the run; pages already written stay on disk.
func (b *Builder) Run(ctx context.Context) (res *Result, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	log := b.logger()
	rec := b.recorder()
	start := time.Now()
	defer func() {
		d := time.Since(start)
		rec.ObserveBuildDuration(d)
		switch {
		case err == nil:
			rec.IncBuildOutcome(metrics.OutcomeSuccess)
			res.Duration = d
		case errors.Is(err, context.Canceled):
			rec.IncBuildOutcome(metrics.OutcomeCanceled)
		default:
			rec.IncBuildOutcome(metrics.OutcomeFailed)
		}
		if ferr := rec.Flush(); ferr != nil {
			log.Warn("failed to write metrics", logfields.Error(ferr))
		}
	}()

	if err = b.Cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	bc := b.Cfg.Build
	var posts []content.Post
	err = b.stage("ingest", func() error {
		var ierr error
		posts, ierr = ingest.Ingest(ctx, ingest.Options{
			SourceDir: bc.PostsDir,
			Discover:  ingest.DiscoverOptions{Ext: bc.ContentExt, Strict: bc.StrictExtensions},
			Schema:    bc.Schema,
			Logger:    log,
		})
		return ierr
	})
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	rec.IncPostsParsed(len(posts))
	log.Info("ingested posts", logfields.Dir(bc.PostsDir), logfields.Count(len(posts)))

	SortPosts(posts, bc.SortMode)

	tpl, err := b.loadRenderer(log)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	res = &Result{Posts: posts}
	err = b.stage("render", func() error {
		return b.writePages(ctx, tpl, posts, res)
	})
	if err != nil {
		return nil, err
	}

	if b.Index != nil {
		err = b.stage("index", func() error {
			return b.Index.Rebuild(posts, index.RebuildOptions{BuiltAt: start})
		})
		if err != nil {
			return nil, fmt.Errorf("rebuild index: %w", err)
		}
	}

	log.Info("build complete", logfields.Output(bc.DistDir), slog.Int("pages", len(res.Written)))
	return res, nil
}

func (b *Builder) writePages(ctx context.Context, tpl *render.PlaceholderRenderer, posts []content.Post, res *Result) error {
	log := b.logger()
	rec := b.recorder()
	outDir := b.Cfg.Build.DistDir
	var rb app.RouteBuilder

	metas := make([]content.Metadata, len(posts))
	for i, p := range posts {
		metas[i] = p.Meta
	}
	page, err := tpl.RenderIndex(ctx, render.IndexPage{Site: b.Cfg.Site, Posts: metas})
	if err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	out := filepath.Join(outDir, rb.IndexRoute().OutPath)
	if err := render.WriteOutput(out, page); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	res.Written = append(res.Written, out)
	rec.IncPagesWritten(string(rb.IndexRoute().Kind))
	log.Debug("wrote page", logfields.Output(out))

	if !tpl.HasPostTemplate() {
		return nil
	}

	routes, collisions := rb.BuildPostRoutes(posts)
	for _, c := range collisions {
		log.Warn("slug already taken, post page skipped",
			logfields.Slug(c.Slug), logfields.Path(c.Source), slog.String("kept", c.Kept))
	}
	bySource := make(map[string]content.Post, len(posts))
	for _, p := range posts {
		bySource[p.Source] = p
	}
	for _, r := range routes {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := bySource[r.Source]
		if dir := filepath.ToSlash(filepath.Dir(r.OutPath)); linkPath(p.Meta.URL, b.Cfg.Site.SiteURL) != dir {
			log.Warn("listing link does not point at the post page",
				logfields.Slug(r.Slug), logfields.Path(r.Source), slog.String("url", p.Meta.URL), logfields.Output(dir))
		}
		page, err := tpl.RenderPost(ctx, render.PostPage{Site: b.Cfg.Site, Post: p})
		if err != nil {
			return fmt.Errorf("render post(%s): %w", r.Slug, err)
		}
		out := filepath.Join(outDir, r.OutPath)
		if err := render.WriteOutput(out, page); err != nil {
			return fmt.Errorf("write post(%s): %w", r.Slug, err)
		}
		res.Written = append(res.Written, out)
		rec.IncPagesWritten(string(r.Kind))
		log.Debug("wrote page", logfields.Output(out), logfields.Slug(r.Slug))
	}
	return nil
}

// loadRenderer loads the index template and the post template. A post
// template that does not exist disables post pages.
func (b *Builder) loadRenderer(log *slog.Logger) (*render.PlaceholderRenderer, error) {
	bc := b.Cfg.Build
	md := render.NewMarkdownRenderer(render.DefaultFeatures())

	postPath := bc.PostTemplatePath()
	tpl, err := render.NewPlaceholderRenderer(bc.IndexTemplatePath(), postPath, md)
	if err != nil && postPath != "" && isMissing(err, postPath) {
		log.Info("post template not found, skipping post pages", logfields.Path(postPath))
		return render.NewPlaceholderRenderer(bc.IndexTemplatePath(), "", md)
	}
	return tpl, err
}

// linkPath reduces a listing URL to the directory it resolves to under the
// output root, the same way the listing strips siteRoot.
func linkPath(url, siteRoot string) string {
	if siteRoot != "" {
		url = strings.TrimPrefix(url, siteRoot)
	}
	return strings.Trim(url, "/")
}

func isMissing(err error, path string) bool {
	var e *domainerr.Error
	return errors.As(err, &e) && e.Path == path && errors.Is(err, fs.ErrNotExist)
}

func (b *Builder) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	d := time.Since(start)
	b.recorder().ObserveStageDuration(name, d)
	b.logger().Debug("stage finished", logfields.Stage(name), logfields.DurationMS(float64(d.Microseconds())/1000))
	return err
}

// SortPosts orders posts in place. SortPublished puts the newest first;
// posts with equal or unparseable dates keep their directory order.
func SortPosts(posts []content.Post, mode config.SortMode) {
	if mode != config.SortPublished {
		return
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Meta.PublishedTime().After(posts[j].Meta.PublishedTime())
	})
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

func (b *Builder) recorder() metrics.Recorder {
	if b.Metrics != nil {
		return b.Metrics
	}
	return metrics.NoopRecorder{}
}
