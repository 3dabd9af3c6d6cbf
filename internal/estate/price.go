// Package estate holds the core domain model: prices and price ranges,
// the canonical tag registry, persons with their property preferences,
// and listings. Entities reference each other by stable IDs (tag names,
// listing IDs, preference IDs, phone numbers) rather than pointers; the
// ID sets double as reverse-lookup indexes.
package estate

import (
	"fmt"
	"strconv"
)

// Price is a whole-currency amount. Listings and preferences only ever
// deal in whole figures, so there is no fractional component.
type Price int64

// ParsePrice parses a plain numeric string into a Price.
func ParsePrice(s string) (Price, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing price %q: %w", s, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("parsing price %q: negative amount", s)
	}
	return Price(v), nil
}

func (p Price) String() string {
	return strconv.FormatInt(int64(p), 10)
}
