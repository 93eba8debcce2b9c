package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit    = 9
	DefaultMaxPrice = 100000
	AllCategories   = "All"
)

var ErrInvalidFilter = errors.New("invalid filter")

// Bands offered by the price dropdown.
var Bands = []string{"0-499", "500-999", "1000-1999", "2000-4999", "5000+"}

// Band is an inclusive price interval. Max < 0 means unbounded.
type Band struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (b Band) Contains(price float64) bool {
	return price >= b.Min && (b.Max < 0 || price <= b.Max)
}

func (b Band) String() string {
	low := strconv.FormatFloat(b.Min, 'f', -1, 64)
	if b.Max < 0 {
		return low + "+"
	}
	return low + "-" + strconv.FormatFloat(b.Max, 'f', -1, 64)
}

// ParseBand reads "min-max" or "min+".
func ParseBand(s string) (b Band, err error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "+") {
		b.Min, err = strconv.ParseFloat(strings.TrimSuffix(s, "+"), 64)
		b.Max = -1
	} else {
		parts := strings.SplitN(s, "-", 2)
		if len(parts) != 2 {
			return b, fmt.Errorf("%w: price band %q", ErrInvalidFilter, s)
		}
		if b.Min, err = strconv.ParseFloat(parts[0], 64); err == nil {
			b.Max, err = strconv.ParseFloat(parts[1], 64)
		}
	}
	if err != nil {
		return b, fmt.Errorf("%w: price band %q", ErrInvalidFilter, s)
	}
	if b.Min < 0 || (b.Max >= 0 && b.Max < b.Min) {
		return b, fmt.Errorf("%w: price band %q is out of order", ErrInvalidFilter, s)
	}
	return b, nil
}

// Filter composes the listing predicates. Every predicate left empty
// matches all products.
type Filter struct {
	Categories []string `json:"categories,omitempty"`
	Brands     []string `json:"brands,omitempty"`
	Range      *Band    `json:"range,omitempty"`
	Band       *Band    `json:"band,omitempty"`
	Search     string   `json:"search,omitempty"`
	Limit      int      `json:"limit,omitempty"`
}

func (f Filter) Match(p Product) bool {
	return f.matchCategory(p) &&
		f.matchBrand(p) &&
		(f.Range == nil || f.Range.Contains(p.Price)) &&
		(f.Band == nil || f.Band.Contains(p.Price)) &&
		f.matchSearch(p)
}

func (f Filter) matchCategory(p Product) bool {
	if len(f.Categories) == 0 {
		return true
	}
	for _, c := range f.Categories {
		if c == AllCategories || c == p.Category {
			return true
		}
	}
	return false
}

func (f Filter) matchBrand(p Product) bool {
	if len(f.Brands) == 0 {
		return true
	}
	maker := p.Maker()
	for _, b := range f.Brands {
		if b == maker {
			return true
		}
	}
	return false
}

func (f Filter) matchSearch(p Product) bool {
	term := strings.TrimSpace(f.Search)
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), strings.ToLower(term))
}

// ParseFilter reads listing filters from query parameters:
// category and brand (repeated), price ("min-max" slider, defaults to
// 0-100000), dropdown (one of Bands), q and limit.
func ParseFilter(query url.Values) (f Filter, err error) {
	f.Categories = nonEmpty(query["category"])
	f.Brands = nonEmpty(query["brand"])
	f.Search = strings.TrimSpace(query.Get("q"))

	price := query.Get("price")
	if price == "" {
		price = fmt.Sprintf("0-%d", DefaultMaxPrice)
	}
	r, err := ParseBand(price)
	if err != nil {
		return f, err
	}
	f.Range = &r

	if dropdown := query.Get("dropdown"); dropdown != "" {
		b, err := ParseBand(dropdown)
		if err != nil {
			return f, err
		}
		f.Band = &b
	}

	if limit := query.Get("limit"); limit != "" {
		f.Limit, err = strconv.Atoi(limit)
		if err != nil || f.Limit < 0 {
			return f, fmt.Errorf("%w: limit %q", ErrInvalidFilter, limit)
		}
	}
	return f, nil
}

func nonEmpty(values []string) []string {
	list := []string{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			list = append(list, v)
		}
	}
	return list
}

// Page is one listing result: the matched products up to the limit and
// how many matched overall.
type Page struct {
	List  Products `json:"data"`
	Total int      `json:"total"`
}
