package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 6
	MaxLimit     = 100
)

// Config holds page size bounds. The page size can be overridden per
// request through the "limit" query parameter.
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

type Params struct {
	Page  int
	Limit int
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type Page[T any] struct {
	Results    []T  `json:"results"`
	Pagination Meta `json:"pagination"`
}

// Parse reads "page" and "limit" from the query string. Missing or invalid
// values fall back to page 1 and the default size.
func (cfg Config) Parse(c *gin.Context) Params {
	def := cfg.DefaultLimit
	if def <= 0 {
		def = DefaultLimit
	}
	max := cfg.MaxLimit
	if max <= 0 {
		max = MaxLimit
	}

	p := Params{Page: 1, Limit: def}
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		p.Limit = v
	}
	if p.Limit > max {
		p.Limit = max
	}
	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

func NewPage[T any](items []T, total int64, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Page[T]{
		Results: items,
		Pagination: Meta{
			Page:       p.Page,
			Limit:      p.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
