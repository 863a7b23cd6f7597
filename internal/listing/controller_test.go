package listing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// changeRecorder collects params snapshots fired by the controller.
type changeRecorder struct {
	mu      sync.Mutex
	changes []Params
}

func (r *changeRecorder) record(p Params) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, p)
}

func (r *changeRecorder) all() []Params {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Params, len(r.changes))
	copy(out, r.changes)
	return out
}

func TestController_Defaults(t *testing.T) {
	c := NewController(nil)

	assert.Equal(t, Params{Page: 1, Limit: 10}, c.Params())
}

func TestController_SetParamsMerges(t *testing.T) {
	c := NewController(nil)

	limit := 25
	c.SetParams(Patch{Limit: &limit})

	// Other fields are untouched by a partial update.
	assert.Equal(t, Params{Page: 1, Limit: 25}, c.Params())
}

func TestController_ResetParams(t *testing.T) {
	c := NewController(nil)
	limit := 25
	page := 3
	c.SetParams(Patch{Limit: &limit, Page: &page})

	c.ResetParams()

	assert.Equal(t, DefaultParams(), c.Params())
}

func TestController_ToggleSort(t *testing.T) {
	c := NewController(nil)

	c.ToggleSort("name")
	assert.Equal(t, "name", c.Params().SortBy)
	assert.Equal(t, Ascending, c.Params().SortOrder)

	// Clicking the active column flips the order.
	c.ToggleSort("name")
	assert.Equal(t, Descending, c.Params().SortOrder)

	// Clicking another column resets to ascending.
	c.ToggleSort("email")
	assert.Equal(t, "email", c.Params().SortBy)
	assert.Equal(t, Ascending, c.Params().SortOrder)
}

func TestController_DebouncedSearch(t *testing.T) {
	rec := &changeRecorder{}
	c := NewController(rec.record, WithSearchDelay(20*time.Millisecond))
	page := 4
	c.SetParams(Patch{Page: &page})

	// Rapid keystrokes collapse into a single fetch with the final term.
	c.SetSearch("j")
	c.SetSearch("jo")
	c.SetSearch("john")
	assert.Equal(t, "john", c.SearchTerm())
	assert.Empty(t, c.Params().Search, "search must not apply before the quiet period")

	require.Eventually(t, func() bool {
		return c.Params().Search == "john"
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, c.Params().Page, "applying a search resets to page 1")

	changes := rec.all()
	searchFires := 0
	for _, p := range changes {
		if p.Search == "john" {
			searchFires++
		}
	}
	assert.Equal(t, 1, searchFires)
}

func TestController_SetPageBounds(t *testing.T) {
	rec := &changeRecorder{}
	c := NewController(rec.record)
	c.SetTotal(35) // 4 pages at limit 10

	c.SetPage(0)
	c.SetPage(5)
	assert.Equal(t, 1, c.Params().Page, "out-of-range pages are a no-op")
	assert.Empty(t, rec.all())

	c.SetPage(4)
	assert.Equal(t, 4, c.Params().Page)
	require.Len(t, rec.all(), 1)
}

func TestController_Selection(t *testing.T) {
	c := NewController(nil)
	c.SetRowCount(3)

	c.ToggleRow(0)
	c.ToggleRow(2)
	c.ToggleRow(9) // out of range, ignored
	assert.Equal(t, []int{0, 2}, c.Selected())

	c.ToggleRow(0)
	assert.Equal(t, []int{2}, c.Selected())

	c.ToggleAll()
	assert.Equal(t, []int{0, 1, 2}, c.Selected())

	// Toggling again with everything selected clears it.
	c.ToggleAll()
	assert.Empty(t, c.Selected())
}

func TestController_SelectionClearedOnReload(t *testing.T) {
	c := NewController(nil)
	c.SetRowCount(5)
	c.ToggleRow(1)
	c.ToggleRow(3)

	// A data reload re-reports the row count; selection does not persist.
	c.SetRowCount(5)
	assert.Empty(t, c.Selected())
}

func TestBulkDelete_PartialFailure(t *testing.T) {
	boom := errors.New("boom")
	result := BulkDelete(context.Background(), []string{"1", "2", "3"}, func(ctx context.Context, id string) error {
		if id == "2" {
			return boom
		}
		return nil
	})

	assert.ElementsMatch(t, []string{"1", "3"}, result.Deleted)
	require.Len(t, result.Failed, 1)
	assert.ErrorIs(t, result.Failed["2"], boom)
	assert.ErrorIs(t, result.Err(), boom)
}

func TestBulkDelete_AllSucceed(t *testing.T) {
	result := BulkDelete(context.Background(), []string{"a", "b"}, func(ctx context.Context, id string) error {
		return nil
	})

	assert.ElementsMatch(t, []string{"a", "b"}, result.Deleted)
	assert.Empty(t, result.Failed)
	assert.NoError(t, result.Err())
}

func TestBulkDelete_EveryIDReported(t *testing.T) {
	ids := []string{"1", "2", "3", "4", "5"}
	result := BulkDelete(context.Background(), ids, func(ctx context.Context, id string) error {
		if id == "1" || id == "4" {
			return errors.New(id)
		}
		return nil
	})

	assert.Equal(t, len(ids), len(result.Deleted)+len(result.Failed))
}
