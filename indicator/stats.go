package indicator

import (
	"math"

	"github.com/consolesell/Lomu/shared"
)

// mean averages the provided values.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for idx := range values {
		sum += values[idx]
	}

	return sum / float64(len(values))
}

// populationStdDev calculates the population standard deviation of the
// provided values.
func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	avg := mean(values)
	var sum float64
	for idx := range values {
		diff := values[idx] - avg
		sum += diff * diff
	}

	return math.Sqrt(sum / float64(len(values)))
}

// roundTo rounds the provided value to the provided number of decimal places.
func roundTo(value float64, places int) float64 {
	factor := math.Pow10(places)
	return math.Round(value*factor) / factor
}

// typicalPrice averages the high, low and close of the provided candle.
func typicalPrice(candle *shared.Candlestick) float64 {
	return (candle.High + candle.Low + candle.Close) / 3
}

// closeSeries extracts the close prices of the provided candles.
func closeSeries(candles []*shared.Candlestick) []float64 {
	closes := make([]float64, len(candles))
	for idx := range candles {
		closes[idx] = candles[idx].Close
	}

	return closes
}

// trueRange calculates the true range of a candle given its predecessor.
func trueRange(current *shared.Candlestick, previous *shared.Candlestick) float64 {
	highLow := current.High - current.Low
	highClose := math.Abs(current.High - previous.Close)
	lowClose := math.Abs(current.Low - previous.Close)

	return math.Max(highLow, math.Max(highClose, lowClose))
}
