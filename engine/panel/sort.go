package panel

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-spread/common"
)

// NameSuffix extracts the trailing decimal number of an element name, e.g. 7 for "Card_07".
//
// Parameters:
//   - name: the element name
//
// Returns:
//   - int: the parsed suffix
//   - bool: false if the name has no trailing digits
func NameSuffix(name string) (int, bool) {
	end := len(name)
	start := end
	for start > 0 && name[start-1] >= '0' && name[start-1] <= '9' {
		start--
	}
	if start == end {
		return 0, false
	}
	n, err := strconv.Atoi(name[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// SortByNameSuffix returns the elements ordered by ascending numeric name suffix.
// The input slice is not modified.
//
// Parameters:
//   - elements: the unsorted elements
//
// Returns:
//   - []*common.Element: a new slice in spread order
//   - error: *RegistryBuildError if a name has no suffix or two names share one
func SortByNameSuffix(elements []*common.Element) ([]*common.Element, error) {
	type keyed struct {
		key int
		el  *common.Element
	}
	keys := make([]keyed, 0, len(elements))
	seen := make(map[int]string, len(elements))
	for i, el := range elements {
		if el == nil {
			return nil, buildError(i, "nil element")
		}
		n, ok := NameSuffix(el.Name)
		if !ok {
			return nil, buildError(i, "element %q has no numeric name suffix", el.Name)
		}
		if prev, dup := seen[n]; dup {
			return nil, buildError(i, "elements %q and %q share suffix %d", prev, el.Name, n)
		}
		seen[n] = el.Name
		keys = append(keys, keyed{key: n, el: el})
	}

	sort.SliceStable(keys, func(a, b int) bool { return keys[a].key < keys[b].key })

	out := make([]*common.Element, len(keys))
	for i, k := range keys {
		out[i] = k.el
	}
	return out, nil
}

// IndexByName finds the position of the element with the given name, ignoring case.
//
// Parameters:
//   - elements: the sorted elements
//   - name: the name to look for
//
// Returns:
//   - int: the index of the element, or -1 if absent
func IndexByName(elements []*common.Element, name string) int {
	for i, el := range elements {
		if el != nil && strings.EqualFold(el.Name, name) {
			return i
		}
	}
	return -1
}
