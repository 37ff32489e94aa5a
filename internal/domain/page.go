package domain

// Page is the repository-level slice of a collection query.
type Page[T any] struct {
	Items []T
	Total int64
}

// PageLink is one navigable reference in an envelope's links sequence:
// a previous link, a numbered page, or a next link.
type PageLink struct {
	URL    string `json:"url"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// FilterEcho is the server's understanding of the request's filter state,
// returned verbatim so clients can resynchronize after a navigation that
// changed server-side defaults (e.g. a clamped page number).
type FilterEcho struct {
	Search        string            `json:"search"`
	Filters       map[string]string `json:"filters,omitempty"`
	SortField     string            `json:"sort_field,omitempty"`
	SortDirection string            `json:"sort_direction,omitempty"`
	PerPage       int               `json:"per_page"`
	Page          int               `json:"page"`
}

// Envelope is the paginated response shape of every collection endpoint.
// Invariant: 0 <= From <= To <= Total, with From == 0 iff Data is empty.
type Envelope[T any] struct {
	Data    []T        `json:"data"`
	From    int        `json:"from"`
	To      int        `json:"to"`
	Total   int64      `json:"total"`
	Links   []PageLink `json:"links"`
	Filters FilterEcho `json:"filters"`
}
