package repositories

import (
	"kitapkulubu.link/pkg/turkishsearch"

	"gorm.io/gorm"
)

// addSearch opsiyonel filtre desenidir: değer boşsa sorguya hiçbir koşul
// eklenmez; doluysa tam eşleşme (like=false) veya iki taraflı joker LIKE
// (like=true) koşulu ve bağlı değeri birlikte eklenir. Arama ekranlarındaki
// "boş filtre = filtresiz liste" davranışı buradan gelir.
func addSearch(query *gorm.DB, column, value string, like bool) *gorm.DB {
	if value == "" {
		return query
	}
	if like {
		fragment, args := turkishsearch.SQLFilter(column, value)
		return query.Where(fragment, args...)
	}
	return query.Where(column+" = ?", value)
}
