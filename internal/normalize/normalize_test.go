// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/depositor/pkg/types"
)

func records(n int) []types.ArticleRecord {
	out := make([]types.ArticleRecord, n)
	for i := range out {
		out[i] = types.ArticleRecord{
			TitleTranslated: "TITLE",
			Pages:           types.PageRange{Start: i + 1, End: i + 1},
		}
	}
	return out
}

func TestApply(t *testing.T) {
	in := records(2)
	pages := []types.PageRange{{Start: 5, End: 9}, {Start: 10, End: 12}}

	out, err := Apply(in, pages, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, pages[0], out[0].Pages)
	assert.Equal(t, pages[1], out[1].Pages)
	assert.Equal(t, types.PageRange{Start: 1, End: 1}, in[0].Pages, "input must not be mutated")
}

func TestApplyMismatch(t *testing.T) {
	pages := make([]types.PageRange, 4)
	_, err := Apply(records(5), pages, nil)

	var mismatch *PageCountMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 5, mismatch.Articles)
	assert.Equal(t, 4, mismatch.Pages)
	assert.Contains(t, err.Error(), "(5)")
}

func TestResolve(t *testing.T) {
	scanned := []types.PageRange{{Start: 1, End: 7}, {Start: 8, End: 8}}
	scanner := ScannerFunc(func() ([]types.PageRange, error) { return scanned, nil })

	t.Run("cumulative keeps ranges", func(t *testing.T) {
		in := records(2)
		out, err := Resolve(types.PagesCumulative, in, scanner, nil)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("marker scan replaces ranges", func(t *testing.T) {
		out, err := Resolve(types.PagesMarkerScan, records(2), scanner, nil)
		require.NoError(t, err)
		assert.Equal(t, scanned[0], out[0].Pages)
		assert.Equal(t, scanned[1], out[1].Pages)
	})

	t.Run("marker scan count mismatch", func(t *testing.T) {
		_, err := Resolve(types.PagesMarkerScan, records(3), scanner, nil)
		var mismatch *PageCountMismatchError
		assert.ErrorAs(t, err, &mismatch)
	})

	t.Run("scanner error", func(t *testing.T) {
		failing := ScannerFunc(func() ([]types.PageRange, error) { return nil, errors.New("marker not found") })
		_, err := Resolve(types.PagesMarkerScan, records(1), failing, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "marker not found")
	})

	t.Run("marker scan without scanner", func(t *testing.T) {
		_, err := Resolve(types.PagesMarkerScan, records(1), nil, nil)
		assert.Error(t, err)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := Resolve("guess", records(1), scanner, nil)
		assert.Error(t, err)
	})
}
