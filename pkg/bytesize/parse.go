// Package bytesize parses and formats human-friendly byte sizes.
package bytesize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	KiB int64 = 1 << (10 * (iota + 1))
	MiB
	GiB
	TiB
)

// suffixes are checked longest first so "MB" is not read as "B".
var suffixes = []struct {
	unit       string
	multiplier int64
}{
	{"TIB", TiB}, {"GIB", GiB}, {"MIB", MiB}, {"KIB", KiB},
	{"TB", TiB}, {"GB", GiB}, {"MB", MiB}, {"KB", KiB},
	{"B", 1},
}

// Parse reads sizes such as "512", "100KB", "64MiB" or "1.5GB". Units are
// case-insensitive and 1024-based; a bare number is a byte count.
func Parse(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty size")
	}

	multiplier := int64(1)
	number := s
	for _, sfx := range suffixes {
		if strings.HasSuffix(s, sfx.unit) {
			multiplier = sfx.multiplier
			number = strings.TrimSpace(strings.TrimSuffix(s, sfx.unit))
			break
		}
	}
	if number == "" {
		return 0, fmt.Errorf("invalid size %q: no number", s)
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("invalid size %q: negative", s)
	}

	bytes := value * float64(multiplier)
	if bytes >= math.MaxInt64 {
		return 0, fmt.Errorf("size %q overflows int64", s)
	}
	return int64(bytes), nil
}

// Format renders n with the largest unit that keeps the value >= 1.
func Format(n int64) string {
	units := []struct {
		name string
		size int64
	}{{"TiB", TiB}, {"GiB", GiB}, {"MiB", MiB}, {"KiB", KiB}}

	for _, u := range units {
		if n >= u.size {
			v := float64(n) / float64(u.size)
			return strconv.FormatFloat(v, 'f', -1, 64) + " " + u.name
		}
	}
	return strconv.FormatInt(n, 10) + " B"
}
