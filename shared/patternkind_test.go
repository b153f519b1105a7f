package shared

import (
	"testing"
)

func TestPatternKindString(t *testing.T) {
	tests := []struct {
		name string
		kind PatternKind
		want string
	}{
		{
			"bullish engulfing",
			BullishEngulfing,
			"bullish engulfing",
		},
		{
			"bearish engulfing",
			BearishEngulfing,
			"bearish engulfing",
		},
		{
			"doji",
			Doji,
			"doji",
		},
		{
			"hammer",
			Hammer,
			"hammer",
		},
		{
			"hanging man",
			HangingMan,
			"hanging man",
		},
		{
			"shooting star",
			ShootingStar,
			"shooting star",
		},
		{
			"inverted hammer",
			InvertedHammer,
			"inverted hammer",
		},
		{
			"morning star",
			MorningStar,
			"morning star",
		},
		{
			"evening star",
			EveningStar,
			"evening star",
		},
		{
			"unknown",
			PatternKind(99),
			"unknown",
		},
	}

	for _, test := range tests {
		str := test.kind.String()
		if str != test.want {
			t.Errorf("%s: expected %v, got %v", test.name, test.want, str)
		}
	}
}
