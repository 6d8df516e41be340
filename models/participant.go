package models

import "time"

// RSVPStatus olası LCV durumları.
type RSVPStatus string

const (
	RSVPStatusPending      RSVPStatus = "pending"       // Henüz cevap verilmedi
	RSVPStatusAttending    RSVPStatus = "attending"     // Katılacak
	RSVPStatusNotAttending RSVPStatus = "not_attending" // Katılmayacak
	RSVPStatusMaybe        RSVPStatus = "maybe"         // Belki
)

// ValidRSVPStatus durum değerinin tanımlı olup olmadığını kontrol eder.
func ValidRSVPStatus(s RSVPStatus) bool {
	switch s {
	case RSVPStatusPending, RSVPStatusAttending, RSVPStatusNotAttending, RSVPStatusMaybe:
		return true
	}
	return false
}

// Participant etkinlik×üye davet/katılım kaydı. Waiting bayrağı, kapasite
// dolduğunda verilen "katılacak" yanıtlarını bekleme listesine alır;
// bir iptalde en eski bekleyen terfi ettirilir.
type Participant struct {
	BaseModel
	EventID  uint `gorm:"not null;index:idx_event_member,unique"`
	MemberID uint `gorm:"not null;index:idx_event_member,unique"`

	Status    RSVPStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Waiting   bool       `gorm:"default:false;index"`
	Comment   string     `gorm:"type:text"`
	EmailSent *time.Time // Davet e-postası gönderim zamanı

	Event  Event  `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Member Member `gorm:"foreignKey:MemberID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// RSVPLog yanıt değişikliklerinin salt-ekleme denetim kaydı.
type RSVPLog struct {
	ID         uint       `gorm:"primarykey"`
	EventID    uint       `gorm:"not null;index"`
	MemberID   uint       `gorm:"not null;index"`
	Status     RSVPStatus `gorm:"type:varchar(20);not null"`
	RecordedAt time.Time  `gorm:"not null;index"`
}
