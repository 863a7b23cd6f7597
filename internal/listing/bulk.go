package listing

import (
	"context"
	"sync"

	"go.uber.org/multierr"
)

// BulkResult reports the outcome of a bulk deletion per requested ID.
// Every requested ID appears in exactly one of Deleted or Failed.
type BulkResult struct {
	// Deleted holds the IDs whose delete call succeeded.
	Deleted []string
	// Failed maps each failed ID to its error.
	Failed map[string]error
}

// Err returns the combined error of all failed deletions, or nil when
// everything succeeded.
func (r BulkResult) Err() error {
	var err error
	for _, itemErr := range r.Failed {
		err = multierr.Append(err, itemErr)
	}
	return err
}

// BulkDelete issues one delete call per ID, concurrently and in no
// particular order, and attributes each outcome back to its ID. A
// partial failure is therefore distinguishable from a full one, unlike
// the all-or-nothing first-failure reporting this replaces.
func BulkDelete(ctx context.Context, ids []string, deleteFn func(ctx context.Context, id string) error) BulkResult {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result = BulkResult{Failed: make(map[string]error)}
	)

	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			err := deleteFn(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed[id] = err
				return
			}
			result.Deleted = append(result.Deleted, id)
		}(id)
	}

	wg.Wait()
	return result
}
