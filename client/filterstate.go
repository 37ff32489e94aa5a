// Package client implements the consumer side of the list-filter-mutate
// protocol the praxis API speaks: filter state, collection fetching, table
// rendering, mutation dispatch, and modal form assembly.
package client

import (
	"net/url"

	"github.com/praxislegal/praxis/internal/domain"
)

// FilterState holds a page's list controls in two layers: staged values the
// user is editing, and applied values that drive the current fetch. Staged
// edits only affect requests once promoted with Apply.
type FilterState struct {
	schema  domain.ListSchema
	staged  domain.ListQuery
	applied domain.ListQuery
}

// NewFilterState returns a state at the resource's defaults: every filter at
// "all", empty search, no sort, the standard page size, page 1.
func NewFilterState(schema domain.ListSchema) *FilterState {
	return &FilterState{
		schema:  schema,
		staged:  defaultQuery(schema),
		applied: defaultQuery(schema),
	}
}

func defaultQuery(schema domain.ListSchema) domain.ListQuery {
	filters := make(map[string]string, len(schema.FilterNames))
	for _, name := range schema.FilterNames {
		filters[name] = domain.FilterAll
	}
	return domain.ListQuery{
		Filters: filters,
		PerPage: domain.DefaultPerPage,
		Page:    1,
	}
}

// SetSearch stages a new search term.
func (s *FilterState) SetSearch(term string) {
	s.staged.Search = term
}

// SetFilter stages value for the named filter. An empty value stages the
// "all" sentinel. Names outside the schema are ignored.
func (s *FilterState) SetFilter(name string, value string) {
	if _, known := s.staged.Filters[name]; !known {
		return
	}
	if value == "" {
		value = domain.FilterAll
	}
	s.staged.Filters[name] = value
}

// SetSort stages a column sort. An empty field stages "no sort".
func (s *FilterState) SetSort(field string, direction string) {
	s.staged.SortField = field
	s.staged.SortDirection = direction
	if field == "" {
		s.staged.SortDirection = ""
	} else if direction == "" {
		s.staged.SortDirection = domain.SortAscending
	}
}

// SetPerPage stages a new page size, clamped into [1, MaxPerPage].
func (s *FilterState) SetPerPage(perPage int) {
	if perPage < 1 {
		perPage = 1
	}
	if perPage > domain.MaxPerPage {
		perPage = domain.MaxPerPage
	}
	s.staged.PerPage = perPage
}

// Apply promotes every staged value into the applied layer and rewinds to
// page 1, since the result window under the old page number is meaningless
// against new criteria.
func (s *FilterState) Apply() {
	s.applied = s.staged.Clone()
	s.applied.Page = 1
	s.staged.Page = 1
}

// Reset discards both layers back to the resource defaults.
func (s *FilterState) Reset() {
	s.staged = defaultQuery(s.schema)
	s.applied = defaultQuery(s.schema)
}

// HasActiveFilters reports whether any applied value constrains the result
// set beyond the defaults.
func (s *FilterState) HasActiveFilters() bool {
	return s.ActiveFilterCount() > 0
}

// ActiveFilterCount counts the applied constraints: each filter away from
// "all", plus the search term when present.
func (s *FilterState) ActiveFilterCount() int {
	count := 0
	if s.applied.Search != "" {
		count++
	}
	for _, value := range s.applied.Filters {
		if value != domain.FilterAll {
			count++
		}
	}
	return count
}

// Applied returns a copy of the applied query.
func (s *FilterState) Applied() domain.ListQuery {
	return s.applied.Clone()
}

// Query serializes the applied state for the requested page. Values at their
// defaults are omitted so two states with the same effective criteria always
// produce the same string.
func (s *FilterState) Query(page int) url.Values {
	query := s.applied.Clone()
	if page < 1 {
		page = 1
	}
	query.Page = page
	return query.Encode()
}

// Reconcile adopts the server's echoed understanding of the request into the
// applied layer, so a clamped page or normalized filter immediately becomes
// the client's truth instead of drifting.
func (s *FilterState) Reconcile(echo domain.FilterEcho) {
	s.applied.Search = echo.Search
	for name := range s.applied.Filters {
		if value, ok := echo.Filters[name]; ok && value != "" {
			s.applied.Filters[name] = value
		} else {
			s.applied.Filters[name] = domain.FilterAll
		}
	}
	s.applied.SortField = echo.SortField
	s.applied.SortDirection = echo.SortDirection
	if echo.PerPage > 0 {
		s.applied.PerPage = echo.PerPage
	}
	if echo.Page > 0 {
		s.applied.Page = echo.Page
	}
}
