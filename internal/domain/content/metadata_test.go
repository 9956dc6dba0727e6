package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeriveSlug(t *testing.T) {
	cases := map[string]string{
		"Hello World":        "hello_world",
		"Go  Two Spaces":     "go__two_spaces",
		"already_lower":      "already_lower",
		"Tabs\tare not here": "tabs\tare_not_here",
	}
	for in, want := range cases {
		require.Equal(t, want, DeriveSlug(in), in)
	}
}

func TestMetadata_UpdatedFallsBackToPublished(t *testing.T) {
	m := Metadata{Published: "2020-01-01"}
	require.Equal(t, "2020-01-01", m.Updated())

	m.LastUpdate = Some("2021-02-02")
	require.Equal(t, "2021-02-02", m.Updated())
}

func TestField_EmptyButPresent(t *testing.T) {
	f := Some("")

	require.True(t, f.Present)
	require.Equal(t, "", f.Or("fallback"))
	require.Equal(t, "fallback", Field{}.Or("fallback"))
}

func TestParseDate(t *testing.T) {
	require.True(t, ParseDate("").IsZero())
	require.True(t, ParseDate("yesterday").IsZero())
	require.Equal(t, 2021, ParseDate("2021-05-06").Year())
	require.Equal(t, time.March, ParseDate("March 3, 2022").Month())
	require.Equal(t, 7, ParseDate("2020-01-02T07:00:00Z").UTC().Hour())
	require.Equal(t, 2019, Metadata{Published: " 2019-12-31 "}.PublishedTime().Year())
}

func TestSchema_Known(t *testing.T) {
	require.True(t, SchemaFull.Known())
	require.True(t, SchemaReduced.Known())
	require.False(t, Schema("").Known())
	require.False(t, Schema("Full").Known())
}
