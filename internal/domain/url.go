package domain

import "net/url"

// URL wraps net/url.URL with non-mutating query edits, used when deriving
// page links from the request URL.
type URL struct {
	*url.URL
}

// ParseURL parses raw into a wrapped URL.
func ParseURL(raw string) (URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return URL{}, err
	}
	return URL{parsed}, nil
}

func (u URL) String() string {
	if u.URL == nil {
		return ""
	}
	return u.URL.String()
}

func (u URL) Clone() URL {
	if u.URL == nil {
		return URL{}
	}
	inner := *u.URL
	return URL{&inner}
}

// WithQuery returns a copy of the URL whose query string is replaced
// wholesale by the provided values.
func (u URL) WithQuery(values url.Values) URL {
	clone := u.Clone()
	clone.RawQuery = values.Encode()
	return clone
}

// ModifyQuery returns a copy of the URL with its existing query edited in
// place by mod.
func (u URL) ModifyQuery(mod func(query *url.Values)) URL {
	clone := u.Clone()
	query := clone.Query()
	mod(&query)
	clone.RawQuery = query.Encode()
	return clone
}
