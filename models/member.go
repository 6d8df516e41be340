package models

import "time"

// Member kulüp üyesi. WebKey, oturum açmadan yapılan işlemlerde (RSVP,
// kayıt onayı, takvim aboneliği) üyenin dışa dönük kimlik anahtarıdır
// ve global olarak benzersizdir.
type Member struct {
	BaseModel
	WebKey string `gorm:"type:varchar(36);uniqueIndex;not null"`
	Name   string `gorm:"type:varchar(150);not null;index"`
	Email  string `gorm:"type:varchar(150);not null;index"`

	Active     bool `gorm:"default:true;index"`
	HTMLFormat bool `gorm:"default:true"`  // E-postaları HTML mi alsın?
	ICal       bool `gorm:"default:false"` // Takvim (ics) aboneliği açık mı?
	NoEmail    bool `gorm:"default:false"` // Hiç e-posta gönderme

	UserID  *uint      `gorm:"index"` // Opsiyonel hesap bağlantısı
	HitTime *time.Time // Son görülme (web_key ile son erişim)

	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}
