package queryparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClampsValues(t *testing.T) {
	p := ListParams{Page: 0, PerPage: 0, OrderBy: "rastgele"}
	p.Validate()
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, DefaultOrderBy, p.OrderBy)

	p = ListParams{Page: 3, PerPage: MaxPerPage + 50, OrderBy: "asc"}
	p.Validate()
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, MaxPerPage, p.PerPage)
	assert.Equal(t, "asc", p.OrderBy)
}

func TestCalculateOffset(t *testing.T) {
	p := ListParams{Page: 1, PerPage: 20}
	assert.Equal(t, 0, p.CalculateOffset())
	p.Page = 4
	assert.Equal(t, 60, p.CalculateOffset())
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
	assert.Equal(t, 0, CalculateTotalPages(5, 0))
}
