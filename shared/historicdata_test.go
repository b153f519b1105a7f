package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{
			name: "epoch seconds",
			raw:  `1700000000`,
			want: time.Unix(1700000000, 0).UTC(),
		},
		{
			name: "fractional epoch seconds",
			raw:  `1700000000.5`,
			want: time.Unix(1700000000, 500000000).UTC(),
		},
		{
			name: "rfc3339 string",
			raw:  `"2023-11-14T22:13:20Z"`,
			want: time.Unix(1700000000, 0).UTC(),
		},
		{
			name: "date layout string",
			raw:  `"2023-11-14 22:13:20"`,
			want: time.Unix(1700000000, 0).UTC(),
		},
		{
			name:    "unparseable string",
			raw:     `"next tuesday"`,
			wantErr: true,
		},
		{
			name:    "unsupported value",
			raw:     `true`,
			wantErr: true,
		},
	}

	for _, test := range tests {
		at, err := ParseTimestamp(gjson.Parse(test.raw))
		if test.wantErr {
			if err == nil {
				t.Errorf("%s: expected an error, got none", test.name)
			}
			continue
		}

		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if !at.Equal(test.want) {
			t.Errorf("%s: expected %v, got %v", test.name, test.want, at)
		}
	}
}

type replayedTick struct {
	market string
	price  float64
	volume float64
	at     time.Time
}

func setupHistoricData(t *testing.T, filePath string) (*HistoricData, *[]replayedTick, error) {
	replayed := make([]replayedTick, 0)
	processTick := func(market string, price float64, volume float64, timestamp gjson.Result) error {
		at, err := ParseTimestamp(timestamp)
		if err != nil {
			return err
		}

		replayed = append(replayed, replayedTick{
			market: market,
			price:  price,
			volume: volume,
			at:     at,
		})
		return nil
	}

	cfg := &HistoricDataConfig{
		FilePath:    filePath,
		ProcessTick: processTick,
		Logger:      &log.Logger,
	}

	historicData, err := NewHistoricData(cfg)
	return historicData, &replayed, err
}

func TestHistoricData(t *testing.T) {
	// Ensure historic data can be initialized from file.
	historicData, replayed, err := setupHistoricData(t, "../testdata/historicdata.json")
	assert.NoError(t, err)

	// Ensure the market and covered time range are reported.
	assert.Equal(t, historicData.FetchMarket(), "^GSPC")
	assert.Equal(t, historicData.FetchStartTime(), time.Unix(1700000000, 0).UTC())
	assert.Equal(t, historicData.FetchEndTime(), time.Unix(1700000145, 0).UTC())

	// Ensure replaying processes every tick in file order.
	err = historicData.ProcessHistoricData()
	assert.NoError(t, err)
	assert.Equal(t, len(*replayed), 8)

	first := (*replayed)[0]
	assert.Equal(t, first.market, "^GSPC")
	assert.Equal(t, first.price, 4500.25)
	assert.Equal(t, first.volume, float64(2))
	assert.Equal(t, first.at, time.Unix(1700000000, 0).UTC())

	// Ensure a missing volume is relayed as zero, defaulting is left to
	// the aggregation layer.
	third := (*replayed)[2]
	assert.Equal(t, third.price, 4499.75)
	assert.Equal(t, third.volume, float64(0))

	// Ensure date string timestamps are parsed.
	fourth := (*replayed)[3]
	assert.Equal(t, fourth.at, time.Unix(1700000070, 0).UTC())
}

func TestHistoricDataMalformedFile(t *testing.T) {
	dir := t.TempDir()

	// Ensure a missing file errors.
	_, _, err := setupHistoricData(t, filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	// Ensure data without a market errors.
	noMarket := filepath.Join(dir, "nomarket.json")
	err = os.WriteFile(noMarket, []byte(`{"ticks":[{"price":1,"timestamp":1700000000}]}`), 0o644)
	assert.NoError(t, err)
	_, _, err = setupHistoricData(t, noMarket)
	assert.Error(t, err)

	// Ensure data without ticks errors.
	noTicks := filepath.Join(dir, "noticks.json")
	err = os.WriteFile(noTicks, []byte(`{"market":"^GSPC","ticks":[]}`), 0o644)
	assert.NoError(t, err)
	_, _, err = setupHistoricData(t, noTicks)
	assert.Error(t, err)

	// Ensure a tick with an unparseable timestamp errors.
	badTimestamp := filepath.Join(dir, "badtimestamp.json")
	err = os.WriteFile(badTimestamp, []byte(`{"market":"^GSPC","ticks":[{"price":1,"timestamp":"soon"}]}`), 0o644)
	assert.NoError(t, err)
	_, _, err = setupHistoricData(t, badTimestamp)
	assert.Error(t, err)

	// Ensure a tick without a price fails the replay.
	noPrice := filepath.Join(dir, "noprice.json")
	err = os.WriteFile(noPrice, []byte(`{"market":"^GSPC","ticks":[{"timestamp":1700000000}]}`), 0o644)
	assert.NoError(t, err)
	historicData, _, err := setupHistoricData(t, noPrice)
	assert.NoError(t, err)
	err = historicData.ProcessHistoricData()
	assert.Error(t, err)
}
