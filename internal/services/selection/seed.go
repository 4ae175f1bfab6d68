package selection

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FallbackSeed replaces a derived seed of zero
const FallbackSeed uint32 = 123456789

// NameValue sums A=1 .. Z=26 over the upper-cased name. Full case mapping
// applies, so ß counts as SS. Anything outside A-Z contributes nothing.
func NameValue(name string) int {
	total := 0
	for _, r := range cases.Upper(language.Und).String(name) {
		if r >= 'A' && r <= 'Z' {
			total += int(r-'A') + 1
		}
	}
	return total
}

// DigitalRoot repeatedly sums the decimal digits of |n| until one digit is
// left. A result of 0 becomes 1.
func DigitalRoot(n int) int {
	if n < 0 {
		n = -n
	}
	for n > 9 {
		sum := 0
		for n > 0 {
			sum += n % 10
			n /= 10
		}
		n = sum
	}
	if n == 0 {
		return 1
	}
	return n
}

// MakeSeed mixes a player's name with a millisecond timestamp. The result
// varies per draw and is never zero.
func MakeSeed(first, last string, tsMillis int64) uint32 {
	a := NameValue(first)
	b := NameValue(last)
	base := uint32(a + 31*b + 997*DigitalRoot(a+b))
	seed := base ^ uint32(tsMillis)
	if seed == 0 {
		return FallbackSeed
	}
	return seed
}
