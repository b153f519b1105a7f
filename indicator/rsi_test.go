package indicator

import (
	"testing"
)

func TestRSI(t *testing.T) {
	engine := setupEngine(t)

	tests := []struct {
		name   string
		closes []float64
		period int
		want   float64
	}{
		{
			name:   "gain only history maxes out",
			closes: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
			period: 14,
			want:   100,
		},
		{
			name:   "flat history yields zero",
			closes: []float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10},
			period: 14,
			want:   0,
		},
		{
			name:   "mixed gains and losses",
			closes: []float64{11, 12, 11.5, 12.5},
			period: 3,
			want:   80,
		},
		{
			name:   "equal sized loss",
			closes: []float64{10, 11, 12, 11},
			period: 3,
			want:   66.67,
		},
		{
			name:   "insufficient candles",
			closes: []float64{1, 2, 3},
			period: 14,
			want:   0,
		},
		{
			name:   "zero period",
			closes: []float64{1, 2, 3},
			period: 0,
			want:   0,
		},
	}

	for _, test := range tests {
		got := engine.RSI(closingCandles(test.closes...), test.period)
		if got != test.want {
			t.Errorf("%s: expected rsi %v, got %v", test.name, test.want, got)
		}
	}
}
