package listing

import "math"

// visibleThreshold is the page count above which the page-number strip
// collapses to a window with ellipses.
const visibleThreshold = 5

// PageEntry is one slot of the rendered page-number strip: either a page
// number or an ellipsis.
type PageEntry struct {
	Page     int
	Ellipsis bool
}

func page(n int) PageEntry { return PageEntry{Page: n} }
func ellipsis() PageEntry  { return PageEntry{Ellipsis: true} }

// TotalPages computes the page count for a total record count and page
// size. A non-positive limit yields a single page.
func TotalPages(totalItems, limit int) int {
	if limit <= 0 {
		return 1
	}
	return int(math.Ceil(float64(totalItems) / float64(limit)))
}

// PageNumbers renders the windowed page-number strip for the given
// current page. Up to the visible threshold every page is shown; beyond
// it the strip shows the first four pages and the last when current is
// near the start, the symmetric shape near the end, and otherwise a
// sliding current-1..current+1 window with ellipses on both sides.
func PageNumbers(current, total int) []PageEntry {
	if total <= visibleThreshold {
		entries := make([]PageEntry, 0, total)
		for i := 1; i <= total; i++ {
			entries = append(entries, page(i))
		}
		return entries
	}

	switch {
	case current <= 3:
		return []PageEntry{page(1), page(2), page(3), page(4), ellipsis(), page(total)}
	case current >= total-2:
		return []PageEntry{
			page(1), ellipsis(),
			page(total - 3), page(total - 2), page(total - 1), page(total),
		}
	default:
		return []PageEntry{
			page(1), ellipsis(),
			page(current - 1), page(current), page(current + 1),
			ellipsis(), page(total),
		}
	}
}
