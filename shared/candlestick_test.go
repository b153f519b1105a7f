package shared

import (
	"testing"
)

func TestFetchSentiment(t *testing.T) {
	tests := []struct {
		name   string
		candle Candlestick
		want   Sentiment
	}{
		{
			name: "neutral candle",
			candle: Candlestick{
				Open:  5,
				Close: 5,
				High:  9,
				Low:   1,
			},
			want: Neutral,
		},
		{
			name: "bullish candle",
			candle: Candlestick{
				Open:  5,
				Close: 15,
				High:  20,
				Low:   1,
			},
			want: Bullish,
		},
		{
			name: "bearish candle",
			candle: Candlestick{
				Open:  15,
				Close: 5,
				High:  20,
				Low:   1,
			},
			want: Bearish,
		},
	}

	for _, test := range tests {
		sentiment := test.candle.FetchSentiment()
		if sentiment != test.want {
			t.Errorf("%s: expected %s sentiment, got %s",
				test.name, test.want.String(), sentiment.String())
		}
	}
}

func TestCandleMeasures(t *testing.T) {
	tests := []struct {
		name        string
		candle      Candlestick
		body        float64
		priceRange  float64
		upperShadow float64
		lowerShadow float64
	}{
		{
			name: "bullish candle",
			candle: Candlestick{
				Open:  10,
				Close: 12,
				High:  13,
				Low:   9,
			},
			body:        2,
			priceRange:  4,
			upperShadow: 1,
			lowerShadow: 1,
		},
		{
			name: "bearish candle",
			candle: Candlestick{
				Open:  12,
				Close: 10,
				High:  13,
				Low:   9,
			},
			body:        2,
			priceRange:  4,
			upperShadow: 1,
			lowerShadow: 1,
		},
		{
			name: "flat candle",
			candle: Candlestick{
				Open:  10,
				Close: 10,
				High:  11,
				Low:   9,
			},
			body:        0,
			priceRange:  2,
			upperShadow: 1,
			lowerShadow: 1,
		},
		{
			name: "lopsided shadows",
			candle: Candlestick{
				Open:  10,
				Close: 10.5,
				High:  10.75,
				Low:   8,
			},
			body:        0.5,
			priceRange:  2.75,
			upperShadow: 0.25,
			lowerShadow: 2,
		},
	}

	for _, test := range tests {
		if body := test.candle.Body(); body != test.body {
			t.Errorf("%s: expected body %v, got %v", test.name, test.body, body)
		}
		if priceRange := test.candle.Range(); priceRange != test.priceRange {
			t.Errorf("%s: expected range %v, got %v", test.name, test.priceRange, priceRange)
		}
		if upper := test.candle.UpperShadow(); upper != test.upperShadow {
			t.Errorf("%s: expected upper shadow %v, got %v", test.name, test.upperShadow, upper)
		}
		if lower := test.candle.LowerShadow(); lower != test.lowerShadow {
			t.Errorf("%s: expected lower shadow %v, got %v", test.name, test.lowerShadow, lower)
		}
	}
}

func TestSentimentString(t *testing.T) {
	tests := []struct {
		name      string
		sentiment Sentiment
		want      string
	}{
		{
			"bullish",
			Bullish,
			"bullish",
		},
		{
			"bearish",
			Bearish,
			"bearish",
		},
		{
			"neutral",
			Neutral,
			"neutral",
		},
	}

	for _, test := range tests {
		str := test.sentiment.String()
		if str != test.want {
			t.Errorf("%s: expected %v, got %v", test.name, test.want, str)
		}
	}
}
