package db

import (
	"strings"

	"gorm.io/gorm"
)

// Default paging values applied when a ListSpec leaves them unset.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// ListSpec describes the filter, sort and page of a list or count query.
// Equals filters match exactly; Contains filters match case-insensitive
// substrings. Keys are API field names, resolved per table through a
// column whitelist; unknown keys are ignored.
type ListSpec struct {
	Equals     map[string]any
	Contains   map[string]string
	SortBy     string
	SortOrder  string
	PageNumber int
	PageSize   int
}

// Normalize fills defaults and clamps paging values.
func (s ListSpec) Normalize() ListSpec {
	if s.PageNumber < 1 {
		s.PageNumber = DefaultPageNumber
	}
	if s.PageSize < 1 {
		s.PageSize = DefaultPageSize
	}
	if s.PageSize > MaxPageSize {
		s.PageSize = MaxPageSize
	}
	if !strings.EqualFold(s.SortOrder, "desc") {
		s.SortOrder = "asc"
	} else {
		s.SortOrder = "desc"
	}
	return s
}

// columns maps lower-cased API field names to table columns.
type columns map[string]string

func (c columns) lookup(field string) (string, bool) {
	col, ok := c[strings.ToLower(field)]
	return col, ok
}

// filter applies the Equals and Contains parts of spec.
func (c columns) filter(spec ListSpec) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		for field, value := range spec.Equals {
			if col, ok := c.lookup(field); ok {
				q = q.Where(col+" = ?", value)
			}
		}
		for field, value := range spec.Contains {
			if col, ok := c.lookup(field); ok && value != "" {
				q = q.Where("LOWER("+col+") LIKE ?", "%"+strings.ToLower(value)+"%")
			}
		}
		return q
	}
}

// page applies ordering and paging. Unknown sort fields fall back to id.
func (c columns) page(spec ListSpec) func(*gorm.DB) *gorm.DB {
	spec = spec.Normalize()
	return func(q *gorm.DB) *gorm.DB {
		col, ok := c.lookup(spec.SortBy)
		if !ok {
			col = "id"
		}
		q = q.Order(col + " " + spec.SortOrder)
		if col != "id" {
			q = q.Order("id")
		}
		return q.Offset((spec.PageNumber - 1) * spec.PageSize).
			Limit(spec.PageSize)
	}
}
