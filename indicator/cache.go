package indicator

import "sync"

// Kind identifies the family of a cached indicator computation.
type Kind int

const (
	EMAKind Kind = iota
	MACDKind
)

// String stringifies the provided kind.
func (k Kind) String() string {
	switch k {
	case EMAKind:
		return "ema"
	case MACDKind:
		return "macd"
	default:
		return "unknown"
	}
}

// Key identifies a memoized intermediate value. The cycle component keeps
// values from different update cycles apart, two histories sharing a
// sample length would otherwise alias.
type Key struct {
	Kind   Kind
	Period int
	Length int
	Cycle  uint64
}

// Cache memoizes intermediate indicator values for the duration of an
// update cycle.
type Cache struct {
	values    map[Key]float64
	valuesMtx sync.Mutex
	cycle     uint64
}

// NewCache initializes a new computation cache.
func NewCache() *Cache {
	return &Cache{
		values: make(map[Key]float64),
	}
}

// Cycle returns the current update cycle identifier.
func (c *Cache) Cycle() uint64 {
	c.valuesMtx.Lock()
	defer c.valuesMtx.Unlock()

	return c.cycle
}

// NextCycle advances the cache to a new update cycle, discarding the
// values of the previous one. The returned identifier stays fixed for
// the update it was issued to, concurrent updates each hold their own.
func (c *Cache) NextCycle() uint64 {
	c.valuesMtx.Lock()
	defer c.valuesMtx.Unlock()

	c.cycle++
	clear(c.values)

	return c.cycle
}

// Get fetches the memoized value for the provided key.
func (c *Cache) Get(key Key) (float64, bool) {
	c.valuesMtx.Lock()
	defer c.valuesMtx.Unlock()

	value, ok := c.values[key]
	return value, ok
}

// Put memoizes the provided value for the provided key.
func (c *Cache) Put(key Key, value float64) {
	c.valuesMtx.Lock()
	defer c.valuesMtx.Unlock()

	c.values[key] = value
}

// Reset discards all memoized values.
func (c *Cache) Reset() {
	c.valuesMtx.Lock()
	defer c.valuesMtx.Unlock()

	clear(c.values)
}
