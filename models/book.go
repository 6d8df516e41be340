package models

// Book okunacak/okunmuş kitap. Toplantılar (Meeting) ve sohbet hedefleri
// kitaba referans verir.
type Book struct {
	BaseModel
	AuthorID uint   `gorm:"not null;index"`
	Title    string `gorm:"type:varchar(255);not null;index"`
	Cover    string `gorm:"type:varchar(255)"` // Kapak görseli dosya adı
	Summary  string `gorm:"type:text"`

	Author Author `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}
