package parking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectBasics(t *testing.T) {
	r := Rect{X1: 10, Y1: 20, X2: 110, Y2: 70}

	assert.Equal(t, 100.0, r.Width())
	assert.Equal(t, 50.0, r.Height())
	assert.Equal(t, 5000.0, r.Area())
	assert.Equal(t, 2.0, r.Aspect())

	cx, cy := r.Center()
	assert.Equal(t, 60.0, cx)
	assert.Equal(t, 45.0, cy)
}

func TestRectDegenerate(t *testing.T) {
	assert.Equal(t, 0.0, Rect{X1: 50, Y1: 0, X2: 40, Y2: 100}.Area())
	assert.Equal(t, 0.0, Rect{X1: 0, Y1: 0, X2: 100, Y2: 0}.Aspect())
}

func TestRectClip(t *testing.T) {
	r := Rect{X1: -20, Y1: 10, X2: 700, Y2: 500}.Clip(640, 480)

	assert.Equal(t, Rect{X1: 0, Y1: 10, X2: 640, Y2: 480}, r)
}

func TestCenterDistance(t *testing.T) {
	a := Rect{X1: 0, Y1: 0, X2: 10, Y2: 10}
	b := Rect{X1: 30, Y1: 40, X2: 40, Y2: 50}

	// Centers (5,5) and (35,45): a 3-4-5 triangle scaled by 10.
	assert.InDelta(t, 50.0, CenterDistance(a, b), 1e-9)
	assert.Equal(t, 0.0, CenterDistance(a, a))
}

func TestIoU(t *testing.T) {
	a := Rect{X1: 0, Y1: 0, X2: 100, Y2: 100}

	assert.Equal(t, 1.0, IoU(a, a))
	assert.Equal(t, 0.0, IoU(a, Rect{X1: 200, Y1: 200, X2: 300, Y2: 300}))

	// Shared edge only: zero-area intersection.
	assert.Equal(t, 0.0, IoU(a, Rect{X1: 100, Y1: 0, X2: 200, Y2: 100}))

	// Half overlap: intersection 5000, union 15000.
	b := Rect{X1: 50, Y1: 0, X2: 150, Y2: 100}
	assert.InDelta(t, 1.0/3.0, IoU(a, b), 1e-9)
}

func TestIoUSymmetric(t *testing.T) {
	a := Rect{X1: 0, Y1: 0, X2: 80, Y2: 60}
	b := Rect{X1: 40, Y1: 20, X2: 120, Y2: 90}

	assert.Equal(t, IoU(a, b), IoU(b, a))
}
