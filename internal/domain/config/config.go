package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"ssg/internal/domain/content"
	domainerr "ssg/internal/domain/errors"
)

type Config struct {
	Site  SiteConfig  `yaml:"site"`
	Build BuildConfig `yaml:"build"`
}

type SiteConfig struct {
	Title string `yaml:"title"`
	// SiteURL is the root prefix stripped from post URLs in the listing.
	SiteURL string `yaml:"site_url"`
}

type SortMode string

const (
	SortDirectory SortMode = "directory"
	SortPublished SortMode = "published"
)

type BuildConfig struct {
	PostsDir      string         `yaml:"posts_dir"`
	TemplateDir   string         `yaml:"template_dir"`
	IndexTemplate string         `yaml:"index_template"`
	PostTemplate  string         `yaml:"post_template"`
	DistDir       string         `yaml:"dist_dir"`
	ContentExt    string         `yaml:"content_ext"`
	Schema        content.Schema `yaml:"schema"`
	SortMode      SortMode       `yaml:"sort_mode"`
	// StrictExtensions makes a directory entry without an extension fatal
	// instead of skipping it.
	StrictExtensions bool   `yaml:"strict_extensions"`
	IndexPath        string `yaml:"index_path"`
}

func Default() Config {
	return Config{
		Site: SiteConfig{
			Title: "ssg",
		},
		Build: BuildConfig{
			PostsDir:      "posts",
			TemplateDir:   "templates",
			IndexTemplate: "index.html",
			PostTemplate:  "post.html",
			DistDir:       "dist",
			ContentExt:    "md",
			Schema:        content.SchemaFull,
			SortMode:      SortDirectory,
		},
	}
}

// IndexTemplatePath resolves the index template against TemplateDir.
func (b BuildConfig) IndexTemplatePath() string {
	return b.templatePath(b.IndexTemplate)
}

// PostTemplatePath resolves the post template against TemplateDir. It is
// empty when per-post pages are disabled.
func (b BuildConfig) PostTemplatePath() string {
	if strings.TrimSpace(b.PostTemplate) == "" {
		return ""
	}
	return b.templatePath(b.PostTemplate)
}

func (b BuildConfig) templatePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(b.TemplateDir, name)
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if s := strings.TrimSpace(c.Site.SiteURL); s != "" && !isValidAbsURL(s) {
		ve.Add("site.site_url", "must be a valid absolute URL")
	}

	if strings.TrimSpace(c.Build.PostsDir) == "" {
		ve.Add("build.posts_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Build.DistDir) == "" {
		ve.Add("build.dist_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Build.IndexTemplate) == "" {
		ve.Add("build.index_template", "must not be empty")
	}
	ext := strings.TrimSpace(c.Build.ContentExt)
	if ext == "" {
		ve.Add("build.content_ext", "must not be empty")
	} else if strings.HasPrefix(ext, ".") {
		ve.Add("build.content_ext", "must not start with '.'")
	}

	if s := c.Build.Schema; s != "" && !s.Known() {
		ve.Add("build.schema", "must be 'full' or 'reduced'")
	}

	switch c.Build.SortMode {
	case "", SortDirectory, SortPublished:
	default:
		ve.Add("build.sort_mode", "must be 'directory' or 'published'")
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

func isValidAbsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	// fields present in the file override Default, the rest keep it
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil && os.IsNotExist(err) {
		cfg = Default()
		return cfg, cfg.Validate()
	}
	return cfg, err
}
