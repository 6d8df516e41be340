package turkishsearch

import "strings"

// Türkçe karakterlere duyarlı arama yardımcıları.
// lower() fonksiyonunun Türkçe 'İ' -> 'i' dönüşümü locale'e bağlı olduğundan
// aranan değer ASCII'ye katlanır; sütun tarafında da aynı katlama beklenir
// (veriler zaten hem aksanlı hem aksansız eşleşsin diye LIKE ile taranır).

var replacer = strings.NewReplacer(
	"ı", "i", "İ", "i", "I", "i",
	"ş", "s", "Ş", "s",
	"ğ", "g", "Ğ", "g",
	"ü", "u", "Ü", "u",
	"ö", "o", "Ö", "o",
	"ç", "c", "Ç", "c",
)

// Fold Türkçe karakterleri ASCII karşılıklarına indirger ve küçük harfe çevirir.
func Fold(s string) string {
	return strings.ToLower(replacer.Replace(s))
}

// SQLFilter verilen sütun için case duyarsız LIKE fragment'i ve bağlı değerini
// döndürür. Değer boşsa çağıran filtre eklememelidir.
func SQLFilter(column, value string) (string, []any) {
	folded := "%" + Fold(value) + "%"
	return "lower(" + column + ") LIKE ?", []any{folded}
}
