package transit

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortMethod selects the key used by SortBuses.
type SortMethod int

const (
	SortNone SortMethod = iota
	SortTime
	SortLine
	SortRoute
	SortLineRoute
	SortTimeLine
	SortTimeRoute
	SortTimeLineRoute
)

var sortNames = []string{"none", "time", "line", "route", "line_route", "time_line", "time_route", "time_line_route"}

func (m SortMethod) String() string {
	if int(m) >= 0 && int(m) < len(sortNames) {
		return sortNames[m]
	}
	return fmt.Sprintf("sort(%d)", int(m))
}

// ParseSortMethod parses a sort name ("time", "line_route", ...). An empty name is SortNone.
func ParseSortMethod(name string) (SortMethod, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return SortNone, nil
	}
	for i, n := range sortNames {
		if n == name {
			return SortMethod(i), nil
		}
	}
	return SortNone, fmt.Errorf("unknown sort method %q", name)
}

// SortBuses sorts buses in place with a stable sort. Reverse inverts every key, so
// equal elements keep their original order in both directions. Buses without time
// are placed after timed buses either way. SortNone leaves the list untouched and
// ignores reverse.
func SortBuses(buses []*Bus, method SortMethod, reverse bool) {
	if method == SortNone {
		return
	}
	slices.SortStableFunc(buses, comparator(method, reverse))
}

func comparator(method SortMethod, reverse bool) func(a, b *Bus) int {
	dir := 1
	if reverse {
		dir = -1
	}
	byTime := func(a, b *Bus) int { return compareTime(a.Time, b.Time, dir) }
	byLine := func(a, b *Bus) int { return dir * cmp.Compare(a.Line, b.Line) }
	byRoute := func(a, b *Bus) int { return dir * cmp.Compare(a.Route, b.Route) }

	var keys []func(a, b *Bus) int
	switch method {
	case SortTime:
		keys = append(keys, byTime)
	case SortLine:
		keys = append(keys, byLine)
	case SortRoute:
		keys = append(keys, byRoute)
	case SortLineRoute:
		keys = append(keys, byLine, byRoute)
	case SortTimeLine:
		keys = append(keys, byTime, byLine)
	case SortTimeRoute:
		keys = append(keys, byTime, byRoute)
	case SortTimeLineRoute:
		keys = append(keys, byTime, byLine, byRoute)
	}

	return func(a, b *Bus) int {
		for _, key := range keys {
			if c := key(a, b); c != 0 {
				return c
			}
		}
		return 0
	}
}

// compareTime orders nil after any value regardless of dir.
func compareTime(a, b *float64, dir int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return dir * cmp.Compare(*a, *b)
}
