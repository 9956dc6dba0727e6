package logfields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAttrs(t *testing.T) {
	require.Equal(t, "posts/a.md", Path("posts/a.md").Value.String())
	require.Equal(t, KeySlug, Slug("x").Key)
	require.Equal(t, int64(3), Count(3).Value.Int64())
	require.Equal(t, "boom", Error(errors.New("boom")).Value.String())
	require.Equal(t, "", Error(nil).Value.String())
}
