package indicator

import (
	"math"
	"testing"

	"github.com/peterldowns/testy/assert"
)

func TestBollinger(t *testing.T) {
	engine := setupEngine(t)

	// Ensure the bands straddle the average by a multiple of the population
	// standard deviation.
	candles := closingCandles(1, 2, 3, 4, 5)
	got := engine.Bollinger(candles, 5, 2)
	assert.Equal(t, got.Middle, float64(3))
	assert.Equal(t, got.Upper, float64(5.82843))
	assert.Equal(t, got.Lower, float64(0.17157))

	width := 2 * 2 * math.Sqrt(2)
	assert.True(t, math.Abs((got.Upper-got.Lower)-width) < 1e-4)

	// Ensure flat closes collapse the bands onto the average.
	got = engine.Bollinger(closingCandles(10, 10, 10, 10, 10), 5, 2)
	assert.Equal(t, got.Upper, float64(10))
	assert.Equal(t, got.Middle, float64(10))
	assert.Equal(t, got.Lower, float64(10))

	// Ensure short histories yield a zero value.
	assert.Equal(t, engine.Bollinger(closingCandles(1, 2), 5, 2), BollingerBands{})
	assert.Equal(t, engine.Bollinger(candles, 0, 2), BollingerBands{})
}
