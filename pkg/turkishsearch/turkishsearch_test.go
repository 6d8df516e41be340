package turkishsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "istanbul", Fold("İstanbul"))
	assert.Equal(t, "cigdem sogut", Fold("Çiğdem Söğüt"))
	assert.Equal(t, "isik", Fold("IŞIK"))
	assert.Equal(t, "ali", Fold("ali"))
}

func TestSQLFilter(t *testing.T) {
	fragment, args := SQLFilter("name", "Şafak")
	assert.Equal(t, "lower(name) LIKE ?", fragment)
	assert.Equal(t, []any{"%safak%"}, args)
}
