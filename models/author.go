package models

// Author kitap yazarı.
type Author struct {
	BaseModel
	Name string `gorm:"type:varchar(150);not null;index"`
	Link string `gorm:"type:varchar(500)"` // Yazarın web sayfası
	Bio  string `gorm:"type:text"`

	Books []Book `gorm:"foreignKey:AuthorID"`
}
