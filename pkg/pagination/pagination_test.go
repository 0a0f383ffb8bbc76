package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDefaults(t *testing.T) {
	p := Parse("", "")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

// Pagination parameters are never a reason to reject a request: any
// garbage resolves to the defaults or the cap.
func TestParseLeniency(t *testing.T) {
	tests := []struct {
		name       string
		page       string
		limit      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"zero limit", "1", "0", 1, 10, 0},
		{"negative limit", "1", "-5", 1, 10, 0},
		{"garbage limit", "1", "abc", 1, 10, 0},
		{"negative page", "-1", "10", 1, 10, 0},
		{"zero page", "0", "10", 1, 10, 0},
		{"garbage page", "two", "10", 1, 10, 0},
		{"limit above cap", "1", "5000", 1, 100, 0},
		{"valid second page", "2", "10", 2, 10, 10},
		{"clamped offset uses clamped limit", "3", "250", 3, 100, 200},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Parse(tc.page, tc.limit)
			assert.Equal(t, tc.wantPage, p.Page)
			assert.Equal(t, tc.wantLimit, p.Limit)
			assert.Equal(t, tc.wantOffset, p.Offset)
		})
	}
}

func TestMeta(t *testing.T) {
	p := Parse("2", "10")
	m := p.Meta(15)
	assert.Equal(t, 2, m.Page)
	assert.Equal(t, 10, m.Limit)
	assert.Equal(t, 15, m.TotalCount)
	assert.Equal(t, 2, m.TotalPages)
}

// A page past the end still reports accurate totals.
func TestMetaPastEnd(t *testing.T) {
	p := Parse("999", "10")
	m := p.Meta(1)
	assert.Equal(t, 999, m.Page)
	assert.Equal(t, 1, m.TotalCount)
	assert.Equal(t, 1, m.TotalPages)
}

func TestMetaEmpty(t *testing.T) {
	m := Parse("", "").Meta(0)
	assert.Equal(t, 0, m.TotalCount)
	assert.Equal(t, 0, m.TotalPages)
}

// Every row lands on exactly one page and no page exceeds the limit.
func TestPageBoundsCoverTotal(t *testing.T) {
	for _, total := range []int{0, 1, 9, 10, 11, 15, 100, 101} {
		for _, limit := range []int{1, 3, 10, 100} {
			pages := (total + limit - 1) / limit
			seen := 0
			for page := 1; page <= pages; page++ {
				offset := (page - 1) * limit
				remaining := total - offset
				if remaining > limit {
					remaining = limit
				}
				assert.LessOrEqual(t, remaining, limit)
				seen += remaining
			}
			assert.Equal(t, total, seen, "total=%d limit=%d", total, limit)
		}
	}
}
