package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"ssg/internal/build"
	"ssg/internal/domain/config"
	"ssg/internal/index"
	"ssg/internal/logfields"
	"ssg/internal/metrics"
	"ssg/internal/serve"
)

const defaultIndexPath = ".ssg/index.db"

// Global carries process state shared by every subcommand.
type Global struct {
	Ctx context.Context
}

type CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"site.yaml" env:"SSG_CONFIG"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Posts           string `help:"Override build.posts_dir" env:"SSG_POSTS_DIR"`
	Templates       string `help:"Override build.template_dir"`
	Dist            string `help:"Override build.dist_dir" env:"SSG_DIST_DIR"`
	MetricsTextfile string `name:"metrics-textfile" help:"Write build metrics to this file in Prometheus text format"`

	Build BuildCmd `cmd:"" default:"1" help:"Generate the site once"`
	Serve ServeCmd `cmd:"" help:"Serve the output directory and rebuild on changes"`
	List  ListCmd  `cmd:"" help:"List the posts recorded by the last build"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig reads the config file, falling back to defaults when it does
// not exist, then applies the flag overrides.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.LoadOrDefault(c.Config)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", c.Config, err)
	}
	if c.Posts != "" {
		cfg.Build.PostsDir = c.Posts
	}
	if c.Templates != "" {
		cfg.Build.TemplateDir = c.Templates
	}
	if c.Dist != "" {
		cfg.Build.DistDir = c.Dist
	}
	if cfg.Build.IndexPath == "" {
		cfg.Build.IndexPath = defaultIndexPath
	}
	return cfg, cfg.Validate()
}

// newBuilder wires a Builder with logging, metrics and the index store.
// The returned func releases the store.
func (c *CLI) newBuilder(cfg config.Config) (*build.Builder, func(), error) {
	st, err := index.Open(index.OpenOptions{Path: cfg.Build.IndexPath})
	if err != nil {
		return nil, nil, fmt.Errorf("open index %s: %w", cfg.Build.IndexPath, err)
	}
	var rec metrics.Recorder = metrics.NoopRecorder{}
	if c.MetricsTextfile != "" {
		rec = metrics.NewPrometheusRecorder(nil, c.MetricsTextfile)
	}
	b := &build.Builder{
		Cfg:     cfg,
		Logger:  slog.Default(),
		Metrics: rec,
		Index:   st,
	}
	return b, func() { _ = st.Close() }, nil
}

type BuildCmd struct{}

func (BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	b, closeFn, err := root.newBuilder(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := b.Run(g.Ctx)
	if err != nil {
		return err
	}
	slog.Info("site generated",
		logfields.Count(len(res.Posts)),
		slog.Int("pages", len(res.Written)),
		logfields.Output(cfg.Build.DistDir),
		logfields.DurationMS(float64(res.Duration.Microseconds())/1000))
	return nil
}

type ServeCmd struct {
	Addr string `short:"a" help:"Listen address" default:":8080"`
}

func (s ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	b, closeFn, err := root.newBuilder(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	srv := serve.New(b, slog.Default())
	defer srv.Close()
	return srv.ListenAndServe(g.Ctx, s.Addr)
}

type ListCmd struct {
	Order string `short:"o" help:"Listing order" enum:"directory,published" default:"directory"`
	Limit int    `short:"n" help:"Maximum number of posts; 0 lists all"`

	out io.Writer
}

func (l ListCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfg.Build.IndexPath); err != nil {
		return fmt.Errorf("no index at %s, run 'ssg build' first: %w", cfg.Build.IndexPath, err)
	}
	st, err := index.Open(index.OpenOptions{Path: cfg.Build.IndexPath, ReadOnly: true})
	if err != nil {
		return fmt.Errorf("open index %s: %w", cfg.Build.IndexPath, err)
	}
	defer st.Close()

	entries, err := st.List(index.ListOptions{Order: index.Order(l.Order), Limit: l.Limit})
	if err != nil {
		return err
	}
	out := l.out
	if out == nil {
		out = os.Stdout
	}
	return writeEntries(out, entries)
}

func writeEntries(out io.Writer, entries []index.Entry) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PUBLISHED\tSLUG\tTITLE\tSOURCE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Meta.Published, e.Meta.Slug, e.Meta.Title, filepath.Base(e.Source))
	}
	return tw.Flush()
}
