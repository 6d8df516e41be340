package models

import "time"

// Campaign toplu e-posta kampanyası. Alıcı başına gönderim durumu
// CampaignRecipient satırlarında tutulur.
type Campaign struct {
	BaseModel
	MemberID *uint  `gorm:"index"` // Kampanyayı yazan üye
	Subject  string `gorm:"type:varchar(255);not null"`
	Body     string `gorm:"type:text;not null"` // HTML gövde

	Author     *Member             `gorm:"foreignKey:MemberID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Recipients []CampaignRecipient `gorm:"foreignKey:CampaignID"`
}

// CampaignRecipient kampanya×üye gönderim kaydı. EmailSent nil ise henüz
// gönderilmemiştir; temizlenip yeniden gönderim yapılabilir.
type CampaignRecipient struct {
	BaseModel
	CampaignID uint       `gorm:"not null;index:idx_campaign_member,unique"`
	MemberID   uint       `gorm:"not null;index:idx_campaign_member,unique"`
	EmailSent  *time.Time `gorm:"index"`

	Campaign Campaign `gorm:"foreignKey:CampaignID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Member   Member   `gorm:"foreignKey:MemberID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
