package indicator

import (
	"testing"

	"github.com/consolesell/Lomu/shared"
)

func TestSentiment(t *testing.T) {
	engine := setupEngine(t)

	tests := []struct {
		name    string
		candles []*shared.Candlestick
		period  int
		want    float64
	}{
		{
			name: "mostly bullish",
			candles: []*shared.Candlestick{
				newCandle(10, 11.2, 9.9, 11, 1),
				newCandle(10, 11.2, 9.9, 11, 1),
				newCandle(10, 11.2, 9.9, 11, 1),
				newCandle(11, 11.2, 9.9, 10, 1),
			},
			period: 4,
			want:   25,
		},
		{
			name: "all bearish",
			candles: []*shared.Candlestick{
				newCandle(11, 11.2, 9.9, 10, 1),
				newCandle(11, 11.2, 9.9, 10, 1),
				newCandle(11, 11.2, 9.9, 10, 1),
				newCandle(11, 11.2, 9.9, 10, 1),
			},
			period: 4,
			want:   -50,
		},
		{
			name: "evenly split",
			candles: []*shared.Candlestick{
				newCandle(10, 11.2, 9.9, 11, 1),
				newCandle(11, 11.2, 9.9, 10, 1),
			},
			period: 2,
			want:   0,
		},
		{
			name: "flat bodies count as bearish",
			candles: []*shared.Candlestick{
				newCandle(10, 10.2, 9.9, 10, 1),
				newCandle(10, 10.2, 9.9, 10, 1),
			},
			period: 2,
			want:   -50,
		},
		{
			name: "insufficient candles",
			candles: []*shared.Candlestick{
				newCandle(10, 11.2, 9.9, 11, 1),
			},
			period: 4,
			want:   0,
		},
	}

	for _, test := range tests {
		got := engine.Sentiment(test.candles, test.period)
		if got != test.want {
			t.Errorf("%s: expected sentiment %v, got %v", test.name, test.want, got)
		}
	}
}
