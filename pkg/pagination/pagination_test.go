package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaults(t *testing.T) {
	p, ok := Params{}.Normalize()
	require.True(t, ok)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, 0, p.CurrentCount)
}

func TestNormalizeClampsSmallPerPage(t *testing.T) {
	p, ok := Params{Page: 2, PerPage: 3}.Normalize()
	require.True(t, ok)
	assert.Equal(t, DefaultPerPage, p.PerPage)
}

func TestNormalizeRejectsOversizedPerPage(t *testing.T) {
	_, ok := Params{Page: 1, PerPage: 51}.Normalize()
	assert.False(t, ok)
}

func TestWindowFirstPage(t *testing.T) {
	p, ok := Params{Page: 1, PerPage: 10}.Normalize()
	require.True(t, ok)

	w := NewWindow(p, 25)
	assert.Equal(t, 10, w.CurrentCount)
	assert.Equal(t, 25, w.TotalCount)
	assert.Equal(t, 3, w.TotalPages)
	assert.Equal(t, StatusInProgress, w.Status)

	lo, hi := w.Bounds()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 10, hi)
}

func TestWindowLastPartialPage(t *testing.T) {
	p, ok := Params{Page: 3, PerPage: 10, CurrentCount: 20}.Normalize()
	require.True(t, ok)

	w := NewWindow(p, 25)
	assert.Equal(t, 25, w.CurrentCount)
	assert.Equal(t, StatusComplete, w.Status)
	assert.False(t, w.Beyond())

	lo, hi := w.Bounds()
	assert.Equal(t, 20, lo)
	assert.Equal(t, 25, hi)
}

func TestWindowExactBoundary(t *testing.T) {
	p, ok := Params{Page: 2, PerPage: 10, CurrentCount: 10}.Normalize()
	require.True(t, ok)

	w := NewWindow(p, 20)
	assert.Equal(t, 20, w.CurrentCount)
	assert.Equal(t, 2, w.TotalPages)
	assert.Equal(t, StatusComplete, w.Status)

	lo, hi := w.Bounds()
	assert.Equal(t, 10, lo)
	assert.Equal(t, 20, hi)
}

func TestWindowBeyondLastPage(t *testing.T) {
	p, ok := Params{Page: 5, PerPage: 10, CurrentCount: 25}.Normalize()
	require.True(t, ok)

	w := NewWindow(p, 25)
	assert.True(t, w.Beyond())
	assert.Equal(t, 25, w.CurrentCount)

	lo, hi := w.Bounds()
	assert.Equal(t, 25, lo)
	assert.Equal(t, 25, hi)
	assert.Empty(t, make([]int, 25)[lo:hi])
}
