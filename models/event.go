package models

import "time"

// Event RSVP toplanan etkinlik. EventKey dışa dönük, yeniden adlandırılabilir
// string anahtardır; genellikle grubun şablonundan üretilir. Anahtar
// değişikliği Participant/RSVPLog/ChatMessage kayıtlarına transaction içinde
// yansıtılır.
type Event struct {
	BaseModel
	EventKey string `gorm:"type:varchar(100);uniqueIndex;not null"`

	OrganizerID *uint `gorm:"index"` // Düzenleyen üye

	StartsAt time.Time `gorm:"not null;index"`
	EndsAt   time.Time `gorm:"not null"`
	Summary  string    `gorm:"type:varchar(255);not null"`
	Body     string    `gorm:"type:text"`

	MaxAttend  int `gorm:"default:0"` // 0 = sınırsız kapasite
	RSVPAttend int `gorm:"default:0"` // Katılacak sayısı (bekleme listesi hariç)

	IsPrivate bool `gorm:"default:false"`
	Priority  bool `gorm:"default:false"`

	Organizer    *Member       `gorm:"foreignKey:OrganizerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Participants []Participant `gorm:"foreignKey:EventID"`
}

// HasCapacity yeni bir "katılacak" yanıtı için yer olup olmadığını söyler.
func (e *Event) HasCapacity() bool {
	return e.MaxAttend == 0 || e.RSVPAttend < e.MaxAttend
}
