// Package params parses list query strings: pagination and optional filters.
package params

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"tastemap/internal/domain/statuses"
)

const (
	DefaultLimit = 20
	MaxLimit     = 50
)

// Pagination is parsed from ?page=&limit= and completed with ComputeMeta
// once the total is known.
type Pagination struct {
	Limit      int  `json:"limit"`
	Offset     int  `json:"-"`
	Page       int  `json:"page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ParsePagination never fails: bad values fall back to defaults and limit is
// clamped to MaxLimit.
func ParsePagination(q url.Values) Pagination {
	p := Pagination{Limit: DefaultLimit, Page: 1}

	if limit, err := strconv.Atoi(strings.TrimSpace(q.Get("limit"))); err == nil {
		switch {
		case limit <= 0:
		case limit > MaxLimit:
			p.Limit = MaxLimit
		default:
			p.Limit = limit
		}
	}

	if page, err := strconv.Atoi(strings.TrimSpace(q.Get("page"))); err == nil && page > 0 {
		p.Page = page
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p
}

func (p *Pagination) ComputeMeta(total int) {
	p.Total = total
	if p.Limit > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	p.HasPrev = p.Page > 1
	p.HasNext = p.Page*p.Limit < total
}

// Page is the list response shape.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

func NewPage[T any](items []T, p Pagination, total int) Page[T] {
	p.ComputeMeta(total)
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Pagination: p}
}

// OptionalInt64 returns nil when key is absent.
func OptionalInt64(q url.Values, key string) (*int64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, fmt.Errorf("%s must be a positive integer", key)
	}
	return &v, nil
}

func OptionalFloat(q url.Values, key string, min, max float64) (*float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < min || v > max {
		return nil, fmt.Errorf("%s must be a number between %g and %g", key, min, max)
	}
	return &v, nil
}

// OptionalStatus parses ?status= by name or id, restricted to allowed.
func OptionalStatus(q url.Values, allowed ...statuses.ID) (*statuses.ID, error) {
	raw := strings.TrimSpace(q.Get("status"))
	if raw == "" {
		return nil, nil
	}

	var id statuses.ID
	if n, err := strconv.Atoi(raw); err == nil {
		id = statuses.ID(n)
	} else if id, err = statuses.Parse(raw); err != nil {
		return nil, err
	}

	for _, a := range allowed {
		if a == id {
			return &id, nil
		}
	}
	return nil, fmt.Errorf("status %q is not valid here", raw)
}
