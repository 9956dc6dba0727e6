package content

import (
	"strings"
	"time"
)

// Schema selects which metadata keys are required.
type Schema string

const (
	// SchemaFull requires every social-sharing tag.
	SchemaFull Schema = "full"
	// SchemaReduced requires only title, date, description and keywords.
	SchemaReduced Schema = "reduced"
)

// Known reports whether s names a schema; the empty schema is not known.
func (s Schema) Known() bool {
	return s == SchemaFull || s == SchemaReduced
}

// Field is a string value that may be absent from the front matter.
type Field struct {
	Value   string
	Present bool
}

func Some(v string) Field { return Field{Value: v, Present: true} }

func (f Field) String() string { return f.Value }

// Or returns the value when present and def otherwise.
func (f Field) Or(def string) string {
	if f.Present {
		return f.Value
	}
	return def
}

type OpenGraph struct {
	URL         Field
	Type        Field
	Title       Field
	Image       Field
	Description Field
}

type Twitter struct {
	Card        Field
	Image       Field
	Title       Field
	Description Field
}

type Meta struct {
	Description string
	Keywords    string
	OpenGraph   OpenGraph
	Twitter     Twitter
}

type Metadata struct {
	Title      string
	Published  string
	LastUpdate Field

	// URL is meta.og_url when given, otherwise the derived Slug.
	URL  string
	Slug string

	Meta Meta
}

// Post is one decoded content file.
type Post struct {
	Source string
	Meta   Metadata
	Body   string
}

// DeriveSlug lowercases title and replaces each space with an underscore.
func DeriveSlug(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "_")
}

// Updated returns LastUpdate, falling back to Published.
func (m Metadata) Updated() string {
	return m.LastUpdate.Or(m.Published)
}

// PublishedTime parses Published; see ParseDate.
func (m Metadata) PublishedTime() time.Time {
	return ParseDate(m.Published)
}

// ParseDate reads a published/last_update value. Unparseable values yield
// the zero time.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339,
		time.DateOnly,
		"2006-01-02 15:04",
		time.DateTime,
		"January 2, 2006",
		"2 January 2006",
	} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}
