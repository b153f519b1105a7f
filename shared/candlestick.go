package shared

import (
	"math"
	"time"
)

// Sentiment represents the candlestick sentiment.
type Sentiment int

const (
	Neutral Sentiment = iota
	Bullish
	Bearish
)

// String stringifies the provided sentiment.
func (s Sentiment) String() string {
	switch s {
	case Bullish:
		return "bullish"
	case Bearish:
		return "bearish"
	default:
		return "neutral"
	}
}

// Candlestick represents a unit candlestick for a market.
type Candlestick struct {
	Open   float64
	Low    float64
	High   float64
	Close  float64
	Volume float64

	// Start is the start of the candle's bucket, aligned to the timeframe
	// used to aggregate it.
	Start time.Time

	// Metadata fields.
	Market string
}

// FetchSentiment returns the provided candlestick's sentiment.
func (c *Candlestick) FetchSentiment() Sentiment {
	sentiment := c.Close - c.Open
	switch {
	case sentiment < 0:
		return Bearish
	case sentiment > 0:
		return Bullish
	default:
		return Neutral
	}
}

// Body returns the absolute size of the candlestick's body.
func (c *Candlestick) Body() float64 {
	return math.Abs(c.Close - c.Open)
}

// Range returns the full price range covered by the candlestick.
func (c *Candlestick) Range() float64 {
	return c.High - c.Low
}

// UpperShadow returns the distance from the top of the body to the high.
func (c *Candlestick) UpperShadow() float64 {
	return c.High - math.Max(c.Open, c.Close)
}

// LowerShadow returns the distance from the bottom of the body to the low.
func (c *Candlestick) LowerShadow() float64 {
	return math.Min(c.Open, c.Close) - c.Low
}
