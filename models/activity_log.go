package models

import "time"

// ActivityLog salt-ekleme denetim/olay kaydı. Param1-3 serbest seçicilerdir
// (örn. etkinlik anahtarı, üye ID'si) ve listeleme ekranında filtre olarak
// kullanılır.
type ActivityLog struct {
	ID         uint      `gorm:"primarykey"`
	RecordedAt time.Time `gorm:"not null;index"`
	Type       string    `gorm:"type:varchar(50);not null;index"`
	Param1     string    `gorm:"type:varchar(100);index"`
	Param2     string    `gorm:"type:varchar(100);index"`
	Param3     string    `gorm:"type:varchar(100)"`
	Message    string    `gorm:"type:text"`
}
