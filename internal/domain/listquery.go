package domain

import (
	"fmt"
	"net/url"
	"strconv"
)

// FilterAll is the reserved filter value meaning "no constraint". A filter at
// this value is equivalent to the filter being absent from the request.
const FilterAll = "all"

const (
	DefaultPerPage = 15
	MaxPerPage     = 100

	SortAscending  = "asc"
	SortDescending = "desc"
)

// ListQuery is the canonical set of list parameters shared by every
// collection endpoint: free-text search, named filters, an optional column
// sort, and pagination.
type ListQuery struct {
	Search        string
	Filters       map[string]string
	SortField     string
	SortDirection string
	PerPage       int
	Page          int
}

// ListSchema declares the filters and sortable columns a resource accepts.
// Requests referencing anything outside the schema are rejected.
type ListSchema struct {
	FilterNames []string
	SortFields  []string
}

func (schema ListSchema) allowsSort(field string) bool {
	for _, allowed := range schema.SortFields {
		if allowed == field {
			return true
		}
	}
	return false
}

// ParseListQuery extracts a ListQuery from request query parameters,
// applying defaults and clamping per_page into [1, MaxPerPage].
func ParseListQuery(query url.Values, schema ListSchema) (lq ListQuery, errs FieldErrors) {
	errs = FieldErrors{}
	lq = ListQuery{
		Filters: make(map[string]string, len(schema.FilterNames)),
		PerPage: DefaultPerPage,
		Page:    1,
	}

	lq.Search = query.Get("search")

	for _, name := range schema.FilterNames {
		value := query.Get(name)
		if value == "" || value == FilterAll {
			lq.Filters[name] = FilterAll
			continue
		}
		lq.Filters[name] = value
	}

	sortField := query.Get("sort_field")
	if sortField != "" {
		if !schema.allowsSort(sortField) {
			errs.Add("sort_field", fmt.Sprintf("cannot sort by %q", sortField))
		} else {
			lq.SortField = sortField
			lq.SortDirection = SortAscending
		}
	}
	sortDirection := query.Get("sort_direction")
	if sortDirection != "" {
		if sortDirection != SortAscending && sortDirection != SortDescending {
			errs.Add("sort_direction", "must be asc or desc")
		} else if lq.SortField == "" {
			errs.Add("sort_direction", "sort_direction requires sort_field")
		} else {
			lq.SortDirection = sortDirection
		}
	}

	if raw := query.Get("per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil || perPage <= 0 {
			errs.Add("per_page", "must be a positive integer")
		} else {
			if perPage > MaxPerPage {
				perPage = MaxPerPage
			}
			lq.PerPage = perPage
		}
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page <= 0 {
			errs.Add("page", "must be a positive integer")
		} else {
			lq.Page = page
		}
	}

	if len(errs) == 0 {
		errs = nil
	}
	return
}

// Clone returns a copy whose filter map is independent of the original.
func (lq ListQuery) Clone() ListQuery {
	clone := lq
	clone.Filters = make(map[string]string, len(lq.Filters))
	for name, value := range lq.Filters {
		clone.Filters[name] = value
	}
	return clone
}

// Encode serializes the query back into URL parameters. Filters at their
// "all"/empty defaults are omitted so that equivalent queries produce
// identical URLs; page is always present.
func (lq ListQuery) Encode() url.Values {
	values := url.Values{}
	if lq.Search != "" {
		values.Set("search", lq.Search)
	}
	for name, value := range lq.Filters {
		if value == "" || value == FilterAll {
			continue
		}
		values.Set(name, value)
	}
	if lq.SortField != "" {
		values.Set("sort_field", lq.SortField)
		direction := lq.SortDirection
		if direction == "" {
			direction = SortAscending
		}
		values.Set("sort_direction", direction)
	}
	if lq.PerPage != 0 && lq.PerPage != DefaultPerPage {
		values.Set("per_page", strconv.Itoa(lq.PerPage))
	}
	page := lq.Page
	if page <= 0 {
		page = 1
	}
	values.Set("page", strconv.Itoa(page))
	return values
}

// Echo reports the query as the envelope's echoed filter state.
func (lq ListQuery) Echo() FilterEcho {
	perPage := lq.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	page := lq.Page
	if page <= 0 {
		page = 1
	}
	return FilterEcho{
		Search:        lq.Search,
		Filters:       lq.Filters,
		SortField:     lq.SortField,
		SortDirection: lq.SortDirection,
		PerPage:       perPage,
		Page:          page,
	}
}

// Offset converts the 1-based page into a row offset.
func (lq ListQuery) Offset() int {
	perPage := lq.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	page := lq.Page
	if page <= 0 {
		page = 1
	}
	return (page - 1) * perPage
}

// LastPage reports the highest page number that still holds rows, or 1 when
// the collection is empty.
func (lq ListQuery) LastPage(total int64) int {
	perPage := lq.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if total <= 0 {
		return 1
	}
	last := int((total + int64(perPage) - 1) / int64(perPage))
	if last < 1 {
		last = 1
	}
	return last
}
