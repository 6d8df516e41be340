package models

// ChatTarget sohbet mesajının hedef türü.
type ChatTarget string

const (
	ChatTargetMember ChatTarget = "member"
	ChatTargetGroup  ChatTarget = "group"
	ChatTargetBook   ChatTarget = "book"
	ChatTargetEvent  ChatTarget = "event"
)

// ValidChatTarget hedef türünün tanımlı olup olmadığını kontrol eder.
func ValidChatTarget(t ChatTarget) bool {
	switch t {
	case ChatTargetMember, ChatTargetGroup, ChatTargetBook, ChatTargetEvent:
		return true
	}
	return false
}

// ChatMessage salt-ekleme sohbet mesajı. Silme "soft delete"tir:
// DeletedByUserID doldurulur, içerik temizlenir ve sırada mezar taşı
// (tombstone) olarak kalır.
type ChatMessage struct {
	BaseModel
	SenderUserID uint       `gorm:"not null;index"`
	TargetType   ChatTarget `gorm:"type:varchar(20);not null;index:idx_chat_target"`
	TargetID     uint       `gorm:"not null;index:idx_chat_target"`
	Message      string     `gorm:"type:text;not null"`

	DeletedByUserID *uint `gorm:"index"`

	Sender User `gorm:"foreignKey:SenderUserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// IsTombstone mesajın silinmiş (mezar taşı) olup olmadığını söyler.
func (m *ChatMessage) IsTombstone() bool {
	return m.DeletedByUserID != nil
}
