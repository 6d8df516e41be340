package models

import "time"

// User panel/dashboard oturumu açabilen hesap. Kulüp üyeleri (Member)
// hesapsız da var olabilir; UserID bağı opsiyoneldir.
type User struct {
	BaseModel
	Name         string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(150);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	IsSystem     bool   `gorm:"default:false;index"` // Yönetici mi?
	IsActive     bool   `gorm:"default:true;index"`
	LastLoginAt  *time.Time
}
