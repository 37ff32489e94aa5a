package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/praxislegal/praxis/internal/domain"
)

const linkWindow = 3

// pageNumbers picks the pages worth linking: every page when the collection
// is small, otherwise the first and last pages plus a window around the
// current one.
func pageNumbers(current int, last int) []int {
	if last <= 2*linkWindow+4 {
		pages := make([]int, last)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	start := current - linkWindow
	if start < 2 {
		start = 2
	}
	end := current + linkWindow
	if end > last-1 {
		end = last - 1
	}

	pages := []int{1}
	for page := start; page <= end; page++ {
		pages = append(pages, page)
	}
	return append(pages, last)
}

// pageLinks builds the ordered previous / numbered / next references for an
// envelope, each carrying the full target query derived from the request URL.
// Gaps in the numbered window appear as unlinked "..." entries.
func pageLinks(baseURL domain.URL, query domain.ListQuery, total int64) []domain.PageLink {
	last := query.LastPage(total)
	current := query.Page
	if current <= 0 {
		current = 1
	}

	urlFor := func(page int) string {
		pageQuery := query
		pageQuery.Page = page
		return baseURL.WithQuery(pageQuery.Encode()).String()
	}

	var links []domain.PageLink

	prev := domain.PageLink{Label: "Previous"}
	if current > 1 {
		prev.URL = urlFor(current - 1)
	}
	links = append(links, prev)

	previous := 0
	for _, page := range pageNumbers(current, last) {
		if page > previous+1 {
			links = append(links, domain.PageLink{Label: "..."})
		}
		links = append(links, domain.PageLink{
			URL:    urlFor(page),
			Label:  strconv.Itoa(page),
			Active: page == current,
		})
		previous = page
	}

	next := domain.PageLink{Label: "Next"}
	if current < last {
		next.URL = urlFor(current + 1)
	}
	links = append(links, next)

	return links
}

// envelope assembles the full page envelope for a repository page result.
// from/to are 1-based inclusive; an empty slice reports from = to = 0.
func envelope[T any](baseURL domain.URL, query domain.ListQuery, page domain.Page[T]) domain.Envelope[T] {
	data := page.Items
	if data == nil {
		data = []T{}
	}
	from, to := 0, 0
	if len(data) > 0 {
		from = query.Offset() + 1
		to = query.Offset() + len(data)
	}
	return domain.Envelope[T]{
		Data:    data,
		From:    from,
		To:      to,
		Total:   page.Total,
		Links:   pageLinks(baseURL, query, page.Total),
		Filters: query.Echo(),
	}
}

// writeJSON renders without HTML escaping: the default json.Marshal escapes
// '&', which corrupts the query strings inside page links.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(payload); err != nil {
		panic(fmt.Sprintf("failed to encode response: %s", err))
	}
}
