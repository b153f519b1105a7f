package shared

import (
	"fmt"
	"time"
)

// Timeframe represents the width of a candle bucket in seconds.
type Timeframe int64

const (
	OneMinute     Timeframe = 60
	FiveMinute    Timeframe = 300
	FifteenMinute Timeframe = 900
	OneHour       Timeframe = 3600
)

// String stringifies the provided timeframe.
func (t Timeframe) String() string {
	switch t {
	case OneMinute:
		return "1m"
	case FiveMinute:
		return "5m"
	case FifteenMinute:
		return "15m"
	case OneHour:
		return "1H"
	default:
		return fmt.Sprintf("%ds", int64(t))
	}
}

// Seconds returns the timeframe as a number of seconds.
func (t Timeframe) Seconds() int64 {
	return int64(t)
}

// Align returns the start of the bucket the provided time falls into,
// truncated down to a multiple of the timeframe.
func (t Timeframe) Align(at time.Time) time.Time {
	secs := int64(t)
	bucket := at.Unix() / secs * secs
	return time.Unix(bucket, 0).UTC()
}
