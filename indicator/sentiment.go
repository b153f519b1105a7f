package indicator

import "github.com/consolesell/Lomu/shared"

// Sentiment grades the balance of bullish bodied candles over the provided
// period, from -50 for all bearish to 50 for all bullish.
func (e *Engine) Sentiment(candles []*shared.Candlestick, period int) float64 {
	if period <= 0 || len(candles) < period {
		e.logger.Warn().Msgf("insufficient candles for sentiment: %d/%d", len(candles), period)
		return 0
	}

	recent := candles[len(candles)-period:]
	var bullish int
	for idx := range recent {
		if recent[idx].Close > recent[idx].Open {
			bullish++
		}
	}

	fraction := float64(bullish) / float64(period)
	return roundTo((fraction-0.5)*100, 2)
}
