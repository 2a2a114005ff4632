package transit_test

import (
	"testing"

	"transit-manager/core/transit"

	"github.com/stretchr/testify/assert"
)

func bus(line, route string, time *float64) *transit.Bus {
	b := transit.NewBus(line, route)
	b.Time = time
	return b
}

func lines(buses []*transit.Bus) []string {
	out := make([]string, len(buses))
	for i, b := range buses {
		out[i] = b.Line
	}
	return out
}

func TestSortBuses(t *testing.T) {
	newList := func() []*transit.Bus {
		return []*transit.Bus{
			bus("L3", "B", transit.Float(30)),
			bus("L1", "C", transit.Float(5)),
			bus("L2", "A", transit.Float(15)),
		}
	}

	tests := []struct {
		name    string
		method  transit.SortMethod
		reverse bool
		want    []string
	}{
		{"None keeps order", transit.SortNone, false, []string{"L3", "L1", "L2"}},
		{"None ignores reverse", transit.SortNone, true, []string{"L3", "L1", "L2"}},
		{"Time ascending", transit.SortTime, false, []string{"L1", "L2", "L3"}},
		{"Time descending", transit.SortTime, true, []string{"L3", "L2", "L1"}},
		{"Line", transit.SortLine, false, []string{"L1", "L2", "L3"}},
		{"Route", transit.SortRoute, false, []string{"L2", "L3", "L1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buses := newList()
			transit.SortBuses(buses, tt.method, tt.reverse)
			assert.Equal(t, tt.want, lines(buses))
		})
	}
}

func TestSortBuses_StableAndNilTimes(t *testing.T) {
	buses := []*transit.Bus{
		bus("A", "x", nil),
		bus("B", "x", transit.Float(5)),
		bus("C", "x", transit.Float(5)),
		bus("D", "x", transit.Float(1)),
	}
	transit.SortBuses(buses, transit.SortTime, false)
	assert.Equal(t, []string{"D", "B", "C", "A"}, lines(buses))

	// Ties keep their original relative order and untimed buses stay last when reversed
	transit.SortBuses(buses, transit.SortTime, true)
	assert.Equal(t, []string{"B", "C", "D", "A"}, lines(buses))
}

func TestSortBuses_Composite(t *testing.T) {
	buses := []*transit.Bus{
		bus("L2", "B", transit.Float(5)),
		bus("L1", "B", transit.Float(5)),
		bus("L1", "A", transit.Float(5)),
	}
	transit.SortBuses(buses, transit.SortTimeLineRoute, false)
	assert.Equal(t, "L1", buses[0].Line)
	assert.Equal(t, "A", buses[0].Route)
	assert.Equal(t, "L2", buses[2].Line)
}

func TestParseSortMethod(t *testing.T) {
	m, err := transit.ParseSortMethod("TIME_line")
	assert.NoError(t, err)
	assert.Equal(t, transit.SortTimeLine, m)

	m, err = transit.ParseSortMethod("")
	assert.NoError(t, err)
	assert.Equal(t, transit.SortNone, m)

	_, err = transit.ParseSortMethod("arrival")
	assert.Error(t, err)
}
