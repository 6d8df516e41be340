package models

// Place toplantı mekanı.
type Place struct {
	BaseModel
	Name       string `gorm:"type:varchar(150);not null;index"`
	Address    string `gorm:"type:varchar(500)"`
	Map        string `gorm:"type:varchar(500)"` // Harita linki
	Directions string `gorm:"type:text"`
}
