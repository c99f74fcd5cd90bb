// Package pagination computes the page strip shown under a result
// collection: which page numbers are listed, where gaps are collapsed
// into an ellipsis, and which navigation moves are allowed.
package pagination

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// DefaultMaxVisible is the number of entries in the strip when the caller
	// does not choose one.
	DefaultMaxVisible = 7

	// MinVisible is the smallest strip that can still show the first page,
	// the current page and the last page with a gap on each side.
	MinVisible = 5

	// Ellipsis is the label used for a collapsed range of pages.
	Ellipsis = "..."
)

// ErrPageOutOfRange is returned when a requested page is outside 1..total.
var ErrPageOutOfRange = errors.New("page out of range")

// Item is one entry of the page strip: either a page number or a gap.
type Item struct {
	Page int
	Gap  bool
}

// Label returns the text shown for the item.
func (i Item) Label() string {
	if i.Gap {
		return Ellipsis
	}
	return strconv.Itoa(i.Page)
}

// IsCurrent reports whether the item is the given page.
func (i Item) IsCurrent(current int) bool {
	return !i.Gap && i.Page == current
}

// Window returns the page strip for the current page.
//
// The first and last pages are always present. Pages next to the current
// one are listed, and any range that does not fit is collapsed into a gap.
// When every page fits, every page is listed.
func Window(current, total, maxVisible int) []Item {
	if total <= 0 {
		return nil
	}
	if maxVisible < MinVisible {
		maxVisible = MinVisible
	}
	current = clamp(current, 1, total)

	if total <= maxVisible {
		return pageRange(1, total, make([]Item, 0, total))
	}

	siblings := (maxVisible - MinVisible) / 2
	left := max(current-siblings, 2)
	right := min(current+siblings, total-1)

	gapLeft := left > 2
	gapRight := right < total-1
	edge := maxVisible - 2

	items := make([]Item, 0, maxVisible)

	switch {
	case !gapLeft && gapRight:
		items = pageRange(1, edge, items)
		items = append(items, Item{Gap: true}, Item{Page: total})
	case gapLeft && !gapRight:
		items = append(items, Item{Page: 1}, Item{Gap: true})
		items = pageRange(total-edge+1, total, items)
	case gapLeft && gapRight:
		items = append(items, Item{Page: 1}, Item{Gap: true})
		items = pageRange(left, right, items)
		items = append(items, Item{Gap: true}, Item{Page: total})
	default:
		// Unreachable while total > maxVisible, kept so the strip is never empty.
		items = pageRange(1, total, items)
	}

	return items
}

// Labels renders a window as its labels, mostly useful for logging and tests.
func Labels(items []Item) []string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label()
	}
	return labels
}

// HasPrevious reports whether a previous page exists.
func HasPrevious(current int) bool {
	return current > 1
}

// HasNext reports whether a next page exists.
func HasNext(current, total int) bool {
	return current < total
}

// Previous returns the page before current, or false on the first page.
func Previous(current int) (int, bool) {
	if !HasPrevious(current) {
		return current, false
	}
	return current - 1, true
}

// Next returns the page after current, or false on the last page.
func Next(current, total int) (int, bool) {
	if !HasNext(current, total) {
		return current, false
	}
	return current + 1, true
}

// Jump validates a page typed by the user.
func Jump(page, total int) (int, error) {
	if page < 1 || page > total {
		return 0, fmt.Errorf("%w: %d (valid pages are 1-%d)", ErrPageOutOfRange, page, total)
	}
	return page, nil
}

func pageRange(from, to int, items []Item) []Item {
	for p := from; p <= to; p++ {
		items = append(items, Item{Page: p})
	}
	return items
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
