package handlers

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/testnest/admin/internal/admin/db"
	e "github.com/testnest/admin/internal/admin/errors"
)

type filterKind int

const (
	textFilter filterKind = iota
	idFilter
	intFilter
	boolFilter
)

// filter is one entity-specific list query parameter.
type filter struct {
	name string
	kind filterKind
}

func contains(name string) filter { return filter{name: name, kind: textFilter} }

func matchID(name string) filter { return filter{name: name, kind: idFilter} }

func matchInt(name string) filter { return filter{name: name, kind: intFilter} }

func matchBool(name string) filter { return filter{name: name, kind: boolFilter} }

// listQuery is a parsed list request.
type listQuery struct {
	spec    db.ListSpec
	applied []appliedFilter
}

type appliedFilter struct {
	name  string
	value string
}

// parseListQuery reads paging, sorting and the given filters from q.
func parseListQuery(q url.Values, filters []filter) (listQuery, error) {
	var errs []error
	spec := db.ListSpec{
		Equals:    map[string]any{},
		Contains:  map[string]string{},
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
	if v := q.Get("pageNumber"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs = append(errs, e.Validationf("InvalidPageNumber", "pageNumber must be a positive integer."))
		}
		spec.PageNumber = n
	}
	if v := q.Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs = append(errs, e.Validationf("InvalidPageSize", "pageSize must be a positive integer."))
		}
		spec.PageSize = n
	}

	var applied []appliedFilter
	for _, f := range filters {
		raw := strings.TrimSpace(q.Get(f.name))
		if raw == "" {
			continue
		}
		switch f.kind {
		case textFilter:
			spec.Contains[f.name] = raw
		case idFilter:
			u, err := uuid.Parse(raw)
			if err != nil {
				errs = append(errs, e.Validationf("InvalidGuidFormat", "Invalid GUID format for %s: '%s'.", f.name, raw))
				continue
			}
			spec.Equals[f.name] = u
		case intFilter:
			n, err := strconv.Atoi(raw)
			if err != nil {
				errs = append(errs, e.Validationf("InvalidFilter", "%s must be an integer.", f.name))
				continue
			}
			spec.Equals[f.name] = n
		case boolFilter:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				errs = append(errs, e.Validationf("InvalidFilter", "%s must be true or false.", f.name))
				continue
			}
			spec.Equals[f.name] = b
		}
		applied = append(applied, appliedFilter{name: f.name, value: raw})
	}

	if err := e.Combine(errs...); err != nil {
		return listQuery{}, e.FromError(err).WithType(e.Validation)
	}
	return listQuery{spec: spec.Normalize(), applied: applied}, nil
}

// Links point at the neighbouring pages of a list response.
type Links struct {
	First    string  `json:"first"`
	Last     string  `json:"last"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// Page is the envelope of every list response.
type Page struct {
	TotalCount int64 `json:"totalCount"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
	Data       any   `json:"data"`
	Links      Links `json:"links"`
}

func newPage(path string, q listQuery, total int64, data any) Page {
	spec := q.spec
	totalPages := int(math.Ceil(float64(total) / float64(spec.PageSize)))
	if totalPages < 1 {
		totalPages = 1
	}

	page := Page{
		TotalCount: total,
		PageNumber: spec.PageNumber,
		PageSize:   spec.PageSize,
		TotalPages: totalPages,
		Data:       data,
		Links: Links{
			First: q.link(path, 1),
			Last:  q.link(path, totalPages),
		},
	}
	if spec.PageNumber < totalPages {
		next := q.link(path, spec.PageNumber+1)
		page.Links.Next = &next
	}
	if spec.PageNumber > 1 {
		prev := q.link(path, spec.PageNumber-1)
		page.Links.Previous = &prev
	}
	return page
}

// link renders the URL of page n, keeping size, sort and filters.
func (q listQuery) link(path string, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s?pageNumber=%d&pageSize=%d", path, n, q.spec.PageSize)
	if q.spec.SortBy != "" {
		fmt.Fprintf(&b, "&sortBy=%s", url.QueryEscape(q.spec.SortBy))
	}
	fmt.Fprintf(&b, "&sortOrder=%s", q.spec.SortOrder)
	for _, f := range q.applied {
		fmt.Fprintf(&b, "&%s=%s", f.name, url.QueryEscape(f.value))
	}
	return b.String()
}
