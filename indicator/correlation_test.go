package indicator

import (
	"testing"

	"github.com/consolesell/Lomu/shared"
	"github.com/google/go-cmp/cmp"
	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog/log"
)

func TestNewPair(t *testing.T) {
	// Ensure pairs are normalized regardless of argument order.
	assert.Equal(t, NewPair("^GSPC", "^AAPL"), Pair{First: "^AAPL", Second: "^GSPC"})
	assert.Equal(t, NewPair("^AAPL", "^GSPC"), Pair{First: "^AAPL", Second: "^GSPC"})
}

func TestCalculateCorrelation(t *testing.T) {
	engine, err := NewEngine(&EngineConfig{
		MinCandles: 3,
		Logger:     &log.Logger,
	})
	assert.NoError(t, err)

	tests := []struct {
		name    string
		series1 []float64
		series2 []float64
		want    float64
	}{
		{
			name:    "identical series",
			series1: []float64{1, 2, 3, 4, 5},
			series2: []float64{1, 2, 3, 4, 5},
			want:    1,
		},
		{
			name:    "inverse series",
			series1: []float64{1, 2, 3, 4, 5},
			series2: []float64{5, 4, 3, 2, 1},
			want:    -1,
		},
		{
			name:    "affine series",
			series1: []float64{1, 2, 3},
			series2: []float64{3, 5, 7},
			want:    1,
		},
		{
			name:    "short series",
			series1: []float64{1, 2},
			series2: []float64{1, 2},
			want:    0,
		},
		{
			name:    "sample bound by the shorter series",
			series1: []float64{0, 0, 0, 0, 0, 1, 2, 3, 4, 5},
			series2: []float64{2, 4, 6, 8, 10},
			want:    1,
		},
		{
			name:    "flat series has no correlation",
			series1: []float64{1, 1, 1, 1},
			series2: []float64{1, 2, 3, 4},
			want:    0,
		},
	}

	for _, test := range tests {
		got := engine.CalculateCorrelation(test.series1, test.series2)
		if got != test.want {
			t.Errorf("%s: expected correlation %v, got %v", test.name, test.want, got)
		}
	}

	// Ensure the sample is bound by the configured correlation length,
	// discarding the older closes.
	bounded, err := NewEngine(&EngineConfig{
		MinCandles:        3,
		CorrelationLength: 3,
		Logger:            &log.Logger,
	})
	assert.NoError(t, err)

	got := bounded.CalculateCorrelation(
		[]float64{1, 2, 3, 100, 101, 102},
		[]float64{1, 2, 3, 9, 8, 7},
	)
	assert.Equal(t, got, float64(-1))
}

func TestUpdateCorrelations(t *testing.T) {
	engine, err := NewEngine(&EngineConfig{
		MinCandles: 3,
		Logger:     &log.Logger,
	})
	assert.NoError(t, err)

	histories := map[string][]*shared.Candlestick{
		"^AAPL": closingCandles(1, 2, 3),
		"^GSPC": closingCandles(2, 4, 6),
		"^DJI":  closingCandles(3, 2, 1),
	}

	// Ensure every unordered pair is graded.
	engine.UpdateCorrelations(histories)
	correlations := engine.Correlations()
	want := map[Pair]float64{
		NewPair("^AAPL", "^GSPC"): float64(1),
		NewPair("^AAPL", "^DJI"):  float64(-1),
		NewPair("^GSPC", "^DJI"):  float64(-1),
	}
	if !cmp.Equal(correlations, want) {
		t.Errorf("mismatching correlations, got %v", cmp.Diff(correlations, want))
	}

	// Ensure the table is replaced wholesale on the next update.
	delete(histories, "^DJI")
	engine.UpdateCorrelations(histories)
	correlations = engine.Correlations()
	assert.Equal(t, len(correlations), 1)
	assert.Equal(t, correlations[NewPair("^AAPL", "^GSPC")], float64(1))

	// Ensure mutating the returned table does not affect the engine.
	correlations[NewPair("^AAPL", "^GSPC")] = float64(0)
	assert.Equal(t, engine.Correlations()[NewPair("^AAPL", "^GSPC")], float64(1))
}
