package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectIntersects(t *testing.T) {
	a := Rect{2, 2, 3, 3}
	assert.True(t, a.Intersects(Rect{4, 4, 2, 2}))
	assert.False(t, a.Intersects(Rect{5, 2, 2, 2}), "touching edges must not intersect")
	assert.False(t, a.Intersects(Rect{0, 0, 2, 2}))
	assert.Equal(t, Rect{4, 4, 1, 1}, a.Intersect(Rect{4, 4, 2, 2}))
	assert.True(t, a.Intersect(Rect{9, 9, 1, 1}).Empty())
}

func TestRectIncludeLoc(t *testing.T) {
	r := Rect{}
	r = r.IncludeLoc(Loc{3, 4})
	assert.Equal(t, Rect{3, 4, 1, 1}, r)
	r = r.IncludeLoc(Loc{1, 5})
	assert.Equal(t, Rect{1, 4, 3, 2}, r)
	r = r.IncludeLoc(Loc{2, 4})
	assert.Equal(t, Rect{1, 4, 3, 2}, r, "including an interior tile never shrinks")
}

func TestRectSides(t *testing.T) {
	r := Rect{1, 2, 3, 4}
	assert.Equal(t, 2, r.Side(Up))
	assert.Equal(t, 6, r.Side(Down))
	assert.Equal(t, 1, r.Side(Left))
	assert.Equal(t, 4, r.Side(Right))

	lo, hi := r.Span(Horizontal)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 4, hi)
	assert.Equal(t, r, FromSpans(Vertical, 2, 6, 1, 4))
	assert.Equal(t, r, FromSpans(Horizontal, 1, 4, 2, 6))
}

func TestDirections(t *testing.T) {
	for _, d := range Dirs() {
		assert.True(t, d.IsValid())
		assert.Equal(t, d, d.Opposite().Opposite())
		assert.Equal(t, Loc{}, d.Delta().Add(d.Opposite().Delta()))
	}
	assert.False(t, Dir4(7).IsValid())
	assert.Equal(t, Vertical, Up.Axis())
	assert.Equal(t, Horizontal, Left.Axis())
	assert.Equal(t, Horizontal, Vertical.Orth())
}
