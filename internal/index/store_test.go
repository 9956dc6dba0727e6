package index

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ssg/internal/domain/content"
)

func post(title, published string) content.Post {
	return content.Post{
		Source: "posts/" + content.DeriveSlug(title) + ".md",
		Meta: content.Metadata{
			Title:     title,
			Published: published,
			Slug:      content.DeriveSlug(title),
			URL:       content.DeriveSlug(title),
			Meta: content.Meta{
				OpenGraph: content.OpenGraph{Image: content.Some("cover.png")},
			},
		},
	}
}

func openStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(OpenOptions{Path: filepath.Join(t.TempDir(), "nested", "index.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func titles(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Meta.Title)
	}
	return out
}

func TestStore_RebuildAndList(t *testing.T) {
	st := openStore(t)
	builtAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, st.Rebuild([]content.Post{
		post("Old", "2019-01-01"),
		post("Undated", "someday"),
		post("New", "2023-06-01"),
		post("Also New", "2023-06-01"),
		post("Old", "2024-01-01"),
	}, RebuildOptions{BuiltAt: builtAt}))

	dir, err := st.List(ListOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"Old", "Undated", "New", "Also New"}, titles(dir))

	pub, err := st.List(ListOptions{Order: OrderPublished})
	require.NoError(t, err)
	require.Equal(t, []string{"New", "Also New", "Old", "Undated"}, titles(pub))

	limited, err := st.List(ListOptions{Order: OrderPublished, Limit: 1})
	require.NoError(t, err)
	require.Equal(t, []string{"New"}, titles(limited))

	info, err := st.Info()
	require.NoError(t, err)
	require.Equal(t, 4, info.Count)
	require.True(t, builtAt.Equal(info.BuiltAt))
}

func TestStore_Get(t *testing.T) {
	st := openStore(t)
	require.NoError(t, st.Rebuild([]content.Post{post("Hello World", "2020-01-01")}, RebuildOptions{}))

	e, err := st.Get("hello_world")
	require.NoError(t, err)
	require.Equal(t, "posts/hello_world.md", e.Source)
	require.Equal(t, content.Some("cover.png"), e.Meta.Meta.OpenGraph.Image)

	_, err = st.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = st.Get("  ")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_RebuildReplaces(t *testing.T) {
	st := openStore(t)
	require.NoError(t, st.Rebuild([]content.Post{post("A", ""), post("B", "")}, RebuildOptions{}))
	require.NoError(t, st.Rebuild([]content.Post{post("C", "")}, RebuildOptions{}))

	all, err := st.List(ListOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"C"}, titles(all))
	_, err = st.Get("a")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_EmptyIndex(t *testing.T) {
	st := openStore(t)

	all, err := st.List(ListOptions{})
	require.NoError(t, err)
	require.Empty(t, all)

	_, err = st.Info()
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOpen_MissingPath(t *testing.T) {
	_, err := Open(OpenOptions{})
	require.Error(t, err)
}

func TestStore_PublishedOrderBefore1970(t *testing.T) {
	st := openStore(t)
	require.NoError(t, st.Rebuild([]content.Post{
		post("Moon", "1969-07-20"),
		post("Undated", ""),
		post("Modern", "2020-01-01"),
		post("Sputnik", "1957-10-04"),
		post("Epoch", "1970-01-01T00:00:00Z"),
	}, RebuildOptions{}))

	pub, err := st.List(ListOptions{Order: OrderPublished})
	require.NoError(t, err)
	require.Equal(t, []string{"Modern", "Epoch", "Moon", "Sputnik", "Undated"}, titles(pub))
}

func TestMakePublishedKey_Ordering(t *testing.T) {
	newer := makePublishedKey(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 0)
	older := makePublishedKey(time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC), 0)
	undated := makePublishedKey(time.Time{}, 0)

	require.Negative(t, bytes.Compare(newer, older))
	require.Negative(t, bytes.Compare(older, undated))
}
