package indicator

import (
	"math"
	"slices"

	"github.com/consolesell/Lomu/shared"
)

// Pair represents an unordered market pair.
type Pair struct {
	// First is the lexicographically smaller market name.
	First string
	// Second is the lexicographically larger market name.
	Second string
}

// NewPair initializes a normalized market pair.
func NewPair(first string, second string) Pair {
	if second < first {
		first, second = second, first
	}

	return Pair{
		First:  first,
		Second: second,
	}
}

// CalculateCorrelation calculates the pearson correlation coefficient of
// the two provided close series, over at most the configured correlation
// length. Samples shorter than the minimum candle count yield 0.
func (e *Engine) CalculateCorrelation(series1 []float64, series2 []float64) float64 {
	e.mtx.RLock()
	length := e.cfg.CorrelationLength
	minimum := e.cfg.MinCandles
	e.mtx.RUnlock()

	n := len(series1)
	if len(series2) < n {
		n = len(series2)
	}
	if length < n {
		n = length
	}
	if n < minimum {
		e.logger.Warn().Msgf("insufficient closes for correlation: %d/%d", n, minimum)
		return 0
	}

	first := series1[len(series1)-n:]
	second := series2[len(series2)-n:]
	firstMean := mean(first)
	secondMean := mean(second)

	var covariance, firstVariance, secondVariance float64
	for idx := 0; idx < n; idx++ {
		firstDiff := first[idx] - firstMean
		secondDiff := second[idx] - secondMean
		covariance += firstDiff * secondDiff
		firstVariance += firstDiff * firstDiff
		secondVariance += secondDiff * secondDiff
	}

	denominator := math.Sqrt(firstVariance) * math.Sqrt(secondVariance)
	if denominator == 0 {
		return 0
	}

	return roundTo(covariance/denominator, 2)
}

// UpdateCorrelations recomputes the correlation table for every unordered
// pair of the provided market histories. The previous table is discarded
// wholesale.
func (e *Engine) UpdateCorrelations(histories map[string][]*shared.Candlestick) {
	names := make([]string, 0, len(histories))
	for name := range histories {
		names = append(names, name)
	}
	slices.Sort(names)

	closes := make(map[string][]float64, len(names))
	for _, name := range names {
		closes[name] = closeSeries(histories[name])
	}

	next := make(map[Pair]float64)
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			pair := NewPair(names[i], names[j])
			next[pair] = e.CalculateCorrelation(closes[names[i]], closes[names[j]])
		}
	}

	e.mtx.Lock()
	e.correlations = next
	e.mtx.Unlock()
}

// Correlations returns a copy of the current correlation table.
func (e *Engine) Correlations() map[Pair]float64 {
	e.mtx.RLock()
	defer e.mtx.RUnlock()

	correlations := make(map[Pair]float64, len(e.correlations))
	for pair, value := range e.correlations {
		correlations[pair] = value
	}

	return correlations
}
