// Package pagination turns untrusted page/limit request parameters into
// bounded offset/limit pairs and result metadata. Malformed input never
// produces an error: bad values silently fall back to the defaults and
// oversized limits are clamped to the cap.
package pagination

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is the effective, post-clamp pagination actually applied to a
// query.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Meta is the metadata block returned alongside a page of results.
// Page and Limit echo the effective values so clients can detect
// clamping.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// Parse resolves raw query-string values into effective Params.
func Parse(pageStr, limitStr string) Params {
	page := parsePositive(pageStr, DefaultPage)
	limit := parsePositive(limitStr, DefaultLimit)
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return Params{Page: page, Limit: limit, Offset: offset}
}

func parsePositive(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Meta computes result metadata for a total row count. A request whose
// offset is past the end still gets accurate totals with an empty page.
func (p Params) Meta(totalCount int) Meta {
	limit := p.Limit
	if limit <= 0 {
		limit = 1
	}
	totalPages := (totalCount + limit - 1) / limit
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
