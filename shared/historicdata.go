package shared

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const (
	// DateLayout is the fallback format layout for parsing tick timestamps.
	DateLayout = "2006-01-02 15:04:05"
)

// ParseTimestamp converts a raw historic tick timestamp into an instant.
// Numeric timestamps are treated as epoch seconds, string timestamps are
// parsed as RFC3339 and then the date layout.
func ParseTimestamp(value gjson.Result) (time.Time, error) {
	switch value.Type {
	case gjson.Number:
		secs := value.Float()
		return time.Unix(int64(secs), int64((secs-float64(int64(secs)))*float64(time.Second))).UTC(), nil
	case gjson.String:
		str := value.String()
		at, err := time.Parse(time.RFC3339, str)
		if err == nil {
			return at.UTC(), nil
		}

		at, err = time.Parse(DateLayout, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing timestamp '%s': %v", str, err)
		}

		return at.UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp value: %s", value.Raw)
	}
}

// HistoricDataConfig represents the historic data source configuration.
type HistoricDataConfig struct {
	// FilePath is the filepath to the historic tick data.
	FilePath string
	// ProcessTick replays the provided raw historic tick for aggregation.
	ProcessTick func(market string, price float64, volume float64, timestamp gjson.Result) error
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// HistoricData represents historic tick data for a market.
type HistoricData struct {
	cfg       *HistoricDataConfig
	market    string
	ticks     []gjson.Result
	startTime time.Time
	endTime   time.Time
}

// loadHistoricData loads the historic data bytes from the provided file path.
func loadHistoricData(filepath string) (*gjson.Result, error) {
	readb, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading historic data from file with path '%s': %v", filepath, err)
	}

	b := gjson.ParseBytes(readb)

	return &b, nil
}

// NewHistoricData initializes a new historic data source.
func NewHistoricData(cfg *HistoricDataConfig) (*HistoricData, error) {
	b, err := loadHistoricData(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("loading historic data: %v", err)
	}

	market := b.Get("market").String()
	if market == "" {
		return nil, fmt.Errorf("historic data has no market")
	}

	ticks := b.Get("ticks").Array()
	if len(ticks) == 0 {
		return nil, fmt.Errorf("historic data has no ticks for %s", market)
	}

	historicData := HistoricData{
		cfg:    cfg,
		market: market,
		ticks:  ticks,
	}

	// Ticks are intentionally left in file order, they may arrive out of
	// order and the aggregator is expected to handle that. The covered time
	// range is still tracked for reporting.
	for idx := range ticks {
		at, err := ParseTimestamp(ticks[idx].Get("timestamp"))
		if err != nil {
			return nil, fmt.Errorf("parsing historic tick %d: %v", idx, err)
		}

		if historicData.startTime.IsZero() || at.Before(historicData.startTime) {
			historicData.startTime = at
		}
		if at.After(historicData.endTime) {
			historicData.endTime = at
		}
	}

	return &historicData, nil
}

// ProcessHistoricData replays historic ticks for a market.
func (h *HistoricData) ProcessHistoricData() error {
	timeDiffInHours := h.endTime.Sub(h.startTime).Hours()
	h.cfg.Logger.Info().Msgf("processing %d historic ticks for %s covering %.2f hours, from %s, to %s",
		len(h.ticks), h.market, timeDiffInHours, h.startTime.Format(time.RFC1123), h.endTime.Format(time.RFC1123))

	for idx := range h.ticks {
		tick := h.ticks[idx]
		price := tick.Get("price")
		if !price.Exists() {
			return fmt.Errorf("historic tick %d has no price", idx)
		}

		// Process historic ticks synchronously.
		err := h.cfg.ProcessTick(h.market, price.Float(), tick.Get("volume").Float(), tick.Get("timestamp"))
		if err != nil {
			return fmt.Errorf("processing historic tick %d: %v", idx, err)
		}
	}

	return nil
}

// FetchStartTime returns the start time of the loaded historic data.
func (h *HistoricData) FetchStartTime() time.Time {
	return h.startTime
}

// FetchEndTime returns the end time of the loaded historic data.
func (h *HistoricData) FetchEndTime() time.Time {
	return h.endTime
}

// FetchMarket returns the historic data market.
func (h *HistoricData) FetchMarket() string {
	return h.market
}
