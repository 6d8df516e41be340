package models

import "time"

// Meeting planlanmış kulüp buluşması. (Day, GroupID, BookID) üçlüsü
// benzersizdir; yeniden planlama bu anahtarın transaction içinde
// değiştirilmesiyle yapılır.
type Meeting struct {
	BaseModel
	Day     time.Time `gorm:"type:date;not null;index:idx_meeting_key,unique"`
	GroupID uint      `gorm:"not null;index:idx_meeting_key,unique"`
	BookID  uint      `gorm:"not null;index:idx_meeting_key,unique"`
	PlaceID *uint     `gorm:"index"`

	Hidden    bool `gorm:"default:false"`
	IsPrivate bool `gorm:"default:false"`
	Priority  bool `gorm:"default:false"`

	Group Group  `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Book  Book   `gorm:"foreignKey:BookID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Place *Place `gorm:"foreignKey:PlaceID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}
