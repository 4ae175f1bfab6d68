package selection

// Mulberry32 is a small deterministic 32-bit generator. The same seed always
// yields the same sequence on every platform, since all state is integer.
type Mulberry32 struct {
	state uint32
}

// NewMulberry32 seeds a generator. Seed 0 is valid: the additive step keeps
// the state from ever reaching a fixed point.
func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Uint32 returns the next raw 32-bit output
func (m *Mulberry32) Uint32() uint32 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next value in [0, 1)
func (m *Mulberry32) Float64() float64 {
	return float64(m.Uint32()) / 4294967296
}

// Intn returns a value in [0, n) scaled from Float64. n <= 0 returns 0.
func (m *Mulberry32) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(m.Float64() * float64(n))
}
