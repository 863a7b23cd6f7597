// Package listing implements the per-view controller behind every
// paginated table: query parameters, debounced search, sorting, row
// selection, and bulk deletion.
package listing

import (
	"net/url"
	"strconv"
)

// SortOrder is the direction of a column sort.
type SortOrder string

const (
	// Ascending sorts lowest first.
	Ascending SortOrder = "ASC"
	// Descending sorts highest first.
	Descending SortOrder = "DESC"
)

// Params are the query parameters of a list request.
type Params struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder SortOrder
}

// DefaultParams returns the initial parameters of every list view.
func DefaultParams() Params {
	return Params{Page: 1, Limit: 10}
}

// Values renders the parameters as URL query values. Empty optional
// fields are omitted.
func (p Params) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(p.Page))
	v.Set("limit", strconv.Itoa(p.Limit))
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.SortBy != "" {
		v.Set("sortBy", p.SortBy)
		v.Set("sortOrder", string(p.SortOrder))
	}
	return v
}

// Patch is a partial Params update; nil fields are left unchanged by
// Merge.
type Patch struct {
	Page      *int
	Limit     *int
	Search    *string
	SortBy    *string
	SortOrder *SortOrder
}

// Merge shallow-merges patch into p and returns the result.
func (p Params) Merge(patch Patch) Params {
	if patch.Page != nil {
		p.Page = *patch.Page
	}
	if patch.Limit != nil {
		p.Limit = *patch.Limit
	}
	if patch.Search != nil {
		p.Search = *patch.Search
	}
	if patch.SortBy != nil {
		p.SortBy = *patch.SortBy
	}
	if patch.SortOrder != nil {
		p.SortOrder = *patch.SortOrder
	}
	return p
}
