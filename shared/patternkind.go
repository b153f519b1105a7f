package shared

// PatternKind represents a candlestick pattern classification.
type PatternKind int

const (
	BullishEngulfing PatternKind = iota
	BearishEngulfing
	Doji
	Hammer
	HangingMan
	ShootingStar
	InvertedHammer
	MorningStar
	EveningStar
)

// String stringifies the provided pattern kind.
func (k PatternKind) String() string {
	switch k {
	case BullishEngulfing:
		return "bullish engulfing"
	case BearishEngulfing:
		return "bearish engulfing"
	case Doji:
		return "doji"
	case Hammer:
		return "hammer"
	case HangingMan:
		return "hanging man"
	case ShootingStar:
		return "shooting star"
	case InvertedHammer:
		return "inverted hammer"
	case MorningStar:
		return "morning star"
	case EveningStar:
		return "evening star"
	default:
		return "unknown"
	}
}
