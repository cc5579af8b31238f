// Package pagination implements the bounded page-number window shown by
// paginated listings.
package pagination

import "sort"

// Window returns the sorted, duplicate-free sequence of page numbers to
// display around the current page. Starting from current, the window expands
// alternately one step right then one step left, up to half steps in each
// direction, clamped to [1, total]. Out-of-range inputs (total <= 0,
// half <= 0, current outside [1, total]) yield an empty window.
func Window(total, half, current int) []int {
	if total <= 0 || half <= 0 || current < 1 || current > total {
		return nil
	}

	pages := []int{current}
	lo, hi := current, current
	for step := 0; step < half; step++ {
		if hi < total {
			hi++
			pages = append(pages, hi)
		}
		if lo > 1 {
			lo--
			pages = append(pages, lo)
		}
	}

	sort.Ints(pages)
	return pages
}
