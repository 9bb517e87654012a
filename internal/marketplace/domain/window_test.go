package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceWindow_EvictsOldestBeyondCapacity(t *testing.T) {
	var w PriceWindow
	for _, p := range []float64{1, 2, 3, 4, 5} {
		w.Append(p)
	}

	assert.Equal(t, 3, w.Len())
	assert.Equal(t, []float64{3, 4, 5}, w.Prices())
}

func TestPriceWindow_RecentNewestFirst(t *testing.T) {
	w := NewPriceWindow(10.0, 12.0, 9.0)

	assert.Equal(t, []float64{9.0, 12.0, 10.0}, w.Recent(3))
	assert.Equal(t, []float64{9.0}, w.Recent(1))
	assert.Equal(t, []float64{9.0, 12.0, 10.0}, w.Recent(10))
}

func TestPriceWindow_RecentNonPositiveLimit(t *testing.T) {
	w := NewPriceWindow(10.0)

	assert.Empty(t, w.Recent(0))
	assert.Empty(t, w.Recent(-1))
}

func TestPriceWindow_PricesReturnsCopy(t *testing.T) {
	w := NewPriceWindow(1.0, 2.0)
	got := w.Prices()
	got[0] = 99.0

	assert.Equal(t, []float64{1.0, 2.0}, w.Prices())
}

func TestNewPriceWindow_DropsOverflowingSeed(t *testing.T) {
	w := NewPriceWindow(1, 2, 3, 4)

	assert.Equal(t, []float64{2, 3, 4}, w.Prices())
}
