package domain

import (
	"net/url"
	"strings"
)

// SearchParams are the filters of the hotel search page. Every field is a raw
// string as typed by the user; the remote service does the parsing.
type SearchParams struct {
	Destination string
	CheckIn     string
	CheckOut    string
	AdultCount  string
	ChildCount  string
	Page        string
	MaxPrice    string
	SortOption  string

	Facilities []string
	Types      []string
	Stars      []string
}

// Query encodes p in a fixed order: the six core fields always (empty when
// unset), then maxPrice and sortOption when set, then one entry per facility,
// type and star in slice order.
func (p SearchParams) Query() string {
	var q query
	q.add("destination", p.Destination)
	q.add("checkIn", p.CheckIn)
	q.add("checkOut", p.CheckOut)
	q.add("adultCount", p.AdultCount)
	q.add("childCount", p.ChildCount)
	q.add("page", p.Page)
	if p.MaxPrice != "" {
		q.add("maxPrice", p.MaxPrice)
	}
	if p.SortOption != "" {
		q.add("sortOption", p.SortOption)
	}
	for _, f := range p.Facilities {
		q.add("facilities", f)
	}
	for _, t := range p.Types {
		q.add("types", t)
	}
	for _, s := range p.Stars {
		q.add("stars", s)
	}
	return q.String()
}

// query keeps insertion order; url.Values.Encode sorts by key.
type query struct{ b strings.Builder }

func (q *query) add(k, v string) {
	if q.b.Len() > 0 {
		q.b.WriteByte('&')
	}
	q.b.WriteString(url.QueryEscape(k))
	q.b.WriteByte('=')
	q.b.WriteString(url.QueryEscape(v))
}

func (q *query) String() string { return q.b.String() }
