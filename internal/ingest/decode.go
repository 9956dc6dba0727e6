package ingest

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"ssg/internal/domain/content"
	domainerr "ssg/internal/domain/errors"
)

type fieldSpec struct {
	key string
	// alias is tried when key is absent, reduced schema only
	alias    string
	required map[content.Schema]bool
	set      func(m *content.Metadata, f content.Field)
}

var (
	always   = map[content.Schema]bool{content.SchemaFull: true, content.SchemaReduced: true}
	fullOnly = map[content.Schema]bool{content.SchemaFull: true}
)

var metadataFields = []fieldSpec{
	{key: "title", required: always, set: func(m *content.Metadata, f content.Field) { m.Title = f.Value }},
	{key: "published", alias: "date", required: always, set: func(m *content.Metadata, f content.Field) { m.Published = f.Value }},
	{key: "last_update", required: fullOnly, set: func(m *content.Metadata, f content.Field) { m.LastUpdate = f }},

	{key: "meta.description", required: always, set: func(m *content.Metadata, f content.Field) { m.Meta.Description = f.Value }},
	{key: "meta.keywords", required: always, set: func(m *content.Metadata, f content.Field) { m.Meta.Keywords = f.Value }},

	{key: "meta.og_url", required: fullOnly, set: func(m *content.Metadata, f content.Field) { m.Meta.OpenGraph.URL = f }},
	{key: "meta.og_type", required: fullOnly, set: func(m *content.Metadata, f content.Field) { m.Meta.OpenGraph.Type = f }},
	{key: "meta.og_title", required: fullOnly, set: func(m *content.Metadata, f content.Field) { m.Meta.OpenGraph.Title = f }},
	{key: "meta.og_image", required: fullOnly, set: func(m *content.Metadata, f content.Field) { m.Meta.OpenGraph.Image = f }},
	{key: "meta.og_description", required: fullOnly, set: func(m *content.Metadata, f content.Field) { m.Meta.OpenGraph.Description = f }},

	{key: "meta.twitter_card", required: fullOnly, set: func(m *content.Metadata, f content.Field) { m.Meta.Twitter.Card = f }},
	{key: "meta.twitter_image", required: fullOnly, set: func(m *content.Metadata, f content.Field) { m.Meta.Twitter.Image = f }},
	{key: "meta.twitter_title", required: fullOnly, set: func(m *content.Metadata, f content.Field) { m.Meta.Twitter.Title = f }},
	{key: "meta.twitter_description", required: fullOnly, set: func(m *content.Metadata, f content.Field) { m.Meta.Twitter.Description = f }},
}

// DecodeMetadata parses a TOML metadata block into a validated record.
// Any failure is a domainerr.ErrMetadataInvalid naming the offending key;
// on failure the returned Metadata is always the zero value.
func DecodeMetadata(text string, schema content.Schema) (content.Metadata, error) {
	if schema == "" {
		schema = content.SchemaFull
	}
	if !schema.Known() {
		return content.Metadata{}, fmt.Errorf("%w: unknown metadata schema %q", domainerr.ErrInvalid, schema)
	}

	var doc map[string]any
	if err := toml.Unmarshal([]byte(text), &doc); err != nil {
		e := domainerr.MetadataInvalid("", "decode front matter")
		e.Err = err
		return content.Metadata{}, e
	}

	var m content.Metadata
	for _, fs := range metadataFields {
		key := fs.key
		v, ok, err := lookup(doc, key)
		if !ok && err == nil && fs.alias != "" && schema == content.SchemaReduced {
			v, ok, err = lookup(doc, fs.alias)
			if ok || err != nil {
				key = fs.alias
			}
		}
		if err != nil {
			return content.Metadata{}, err
		}
		if !ok {
			if fs.required[schema] {
				return content.Metadata{}, domainerr.MetadataInvalid(fs.key, "missing required key")
			}
			continue
		}
		s, isString := v.(string)
		if !isString {
			return content.Metadata{}, domainerr.MetadataInvalid(key, fmt.Sprintf("must be a string, got %T", v))
		}
		fs.set(&m, content.Some(s))
	}

	m.Slug = content.DeriveSlug(m.Title)
	m.URL = m.Meta.OpenGraph.URL.Or(m.Slug)
	return m, nil
}

// lookup walks a dotted key through nested tables.
func lookup(doc map[string]any, key string) (any, bool, error) {
	parts := strings.Split(key, ".")
	cur := doc
	for i, p := range parts {
		v, ok := cur[p]
		if !ok {
			return nil, false, nil
		}
		if i == len(parts)-1 {
			return v, true, nil
		}
		next, isTable := v.(map[string]any)
		if !isTable {
			return nil, false, domainerr.MetadataInvalid(strings.Join(parts[:i+1], "."), "must be a table")
		}
		cur = next
	}
	return nil, false, nil
}
