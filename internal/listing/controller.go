package listing

import (
	"sort"
	"sync"
	"time"
)

// defaultSearchDelay bounds request volume while the user is typing a
// search term. It is not a correctness requirement.
const defaultSearchDelay = 500 * time.Millisecond

// Controller owns the list state of one view: the query parameters that
// drive fetches, the debounced search term, and the row selection of the
// currently displayed page.
type Controller struct {
	mu         sync.Mutex
	params     Params
	totalItems int

	rowCount int
	selected map[int]bool

	searchDelay   time.Duration
	pendingSearch string
	searchTimer   *time.Timer

	// onChange fires after every params mutation that should trigger a
	// refetch.
	onChange func(Params)
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithSearchDelay overrides the debounce quiet period.
func WithSearchDelay(d time.Duration) ControllerOption {
	return func(c *Controller) { c.searchDelay = d }
}

// NewController builds a controller with default parameters. onChange,
// when non-nil, is invoked (without the lock held) each time the
// parameters change in a way that requires refetching.
func NewController(onChange func(Params), opts ...ControllerOption) *Controller {
	c := &Controller{
		params:      DefaultParams(),
		selected:    make(map[int]bool),
		searchDelay: defaultSearchDelay,
		onChange:    onChange,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Params returns the current query parameters.
func (c *Controller) Params() Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

// SetParams shallow-merges patch into the current parameters and fires
// the change callback. Resetting the page on search or sort changes is
// the caller's convention, not enforced here.
func (c *Controller) SetParams(patch Patch) {
	c.mu.Lock()
	c.params = c.params.Merge(patch)
	params := c.params
	c.mu.Unlock()
	c.notify(params)
}

// ResetParams restores the default parameters on view teardown.
func (c *Controller) ResetParams() {
	c.mu.Lock()
	if c.searchTimer != nil {
		c.searchTimer.Stop()
		c.searchTimer = nil
	}
	c.params = DefaultParams()
	c.pendingSearch = ""
	c.mu.Unlock()
}

// SetTotal records the backend-reported total item count.
func (c *Controller) SetTotal(totalItems int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totalItems = totalItems
}

// TotalPages returns the page count for the current limit.
func (c *Controller) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return TotalPages(c.totalItems, c.params.Limit)
}

// PageNumbers renders the page strip for the current page.
func (c *Controller) PageNumbers() []PageEntry {
	c.mu.Lock()
	current, total := c.params.Page, TotalPages(c.totalItems, c.params.Limit)
	c.mu.Unlock()
	return PageNumbers(current, total)
}

// SetPage navigates to page n. Pages outside [1, TotalPages] are a
// no-op.
func (c *Controller) SetPage(n int) {
	c.mu.Lock()
	if n < 1 || n > TotalPages(c.totalItems, c.params.Limit) || n == c.params.Page {
		c.mu.Unlock()
		return
	}
	c.params.Page = n
	params := c.params
	c.mu.Unlock()
	c.notify(params)
}

// SearchTerm returns the term as typed so far, which may not have been
// applied to the parameters yet.
func (c *Controller) SearchTerm() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.searchTimer != nil {
		return c.pendingSearch
	}
	return c.params.Search
}

// SetSearch records a keystroke of the search term. The parameters (and
// therefore the fetch) only change after the quiet period elapses with
// no further keystrokes; applying the term resets the page to 1.
func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	c.pendingSearch = term
	if c.searchTimer != nil {
		c.searchTimer.Stop()
	}
	c.searchTimer = time.AfterFunc(c.searchDelay, func() {
		c.mu.Lock()
		c.searchTimer = nil
		c.params.Search = c.pendingSearch
		c.params.Page = 1
		params := c.params
		c.mu.Unlock()
		c.notify(params)
	})
	c.mu.Unlock()
}

// ToggleSort handles a click on a sortable column header: sorting by a
// new column starts ascending, clicking the active column flips the
// order.
func (c *Controller) ToggleSort(column string) {
	c.mu.Lock()
	if c.params.SortBy == column {
		if c.params.SortOrder == Ascending {
			c.params.SortOrder = Descending
		} else {
			c.params.SortOrder = Ascending
		}
	} else {
		c.params.SortBy = column
		c.params.SortOrder = Ascending
	}
	params := c.params
	c.mu.Unlock()
	c.notify(params)
}

// SetRowCount records how many rows the current page displays. Selection
// is relative to these rows and is cleared on every reload.
func (c *Controller) SetRowCount(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rowCount = n
	c.selected = make(map[int]bool)
}

// ToggleRow flips the selection of the row at index. Out-of-range
// indexes are ignored.
func (c *Controller) ToggleRow(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= c.rowCount {
		return
	}
	if c.selected[index] {
		delete(c.selected, index)
	} else {
		c.selected[index] = true
	}
}

// ToggleAll selects every currently loaded row, or clears the selection
// when every row is already selected.
func (c *Controller) ToggleAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.selected) == c.rowCount && c.rowCount > 0 {
		c.selected = make(map[int]bool)
		return
	}
	for i := 0; i < c.rowCount; i++ {
		c.selected[i] = true
	}
}

// Selected returns the selected row indexes in ascending order.
func (c *Controller) Selected() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	indexes := make([]int, 0, len(c.selected))
	for i := range c.selected {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	return indexes
}

// ClearSelection drops the current selection.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = make(map[int]bool)
}

func (c *Controller) notify(params Params) {
	if c.onChange != nil {
		c.onChange(params)
	}
}
