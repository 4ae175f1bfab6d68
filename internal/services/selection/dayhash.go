package selection

import (
	"hash/fnv"
	"time"
)

// FallbackDaySeed replaces a day hash of zero
const FallbackDaySeed uint32 = 0x9E3779B9

const dayLayout = "2006-01-02"

// DayString formats t as YYYY-MM-DD in t's own location
func DayString(t time.Time) string {
	return t.Format(dayLayout)
}

// DayHash is the FNV-1a 32-bit hash of a day string
func DayHash(day string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(day))
	if sum := h.Sum32(); sum != 0 {
		return sum
	}
	return FallbackDaySeed
}
