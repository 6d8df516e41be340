package models

import (
	"time"

	"gorm.io/gorm"
)

// Context'ten işlemi yapan kullanıcıyı okumak için anahtar.
// Seeder ve servisler context.WithValue ile doldurur.
const ContextUserIDKey = "user_id"

// BaseModel tüm entity'lerde gömülü ortak alanlar: ID, zaman damgaları ve
// denetim (audit) sütunları. CreatedBy/UpdatedBy/DeletedBy hook'larla dolar.
type BaseModel struct {
	ID        uint           `gorm:"primarykey"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedBy *uint
	UpdatedBy *uint
	DeletedBy *uint
}

func userIDFromContext(tx *gorm.DB) *uint {
	if tx.Statement == nil || tx.Statement.Context == nil {
		return nil
	}
	if id, ok := tx.Statement.Context.Value(ContextUserIDKey).(uint); ok && id != 0 {
		return &id
	}
	return nil
}

// BeforeCreate CreatedBy alanını context'teki kullanıcıyla doldurur.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.CreatedBy == nil {
		m.CreatedBy = userIDFromContext(tx)
	}
	return nil
}

// BeforeUpdate UpdatedBy alanını context'teki kullanıcıyla doldurur.
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if id := userIDFromContext(tx); id != nil {
		m.UpdatedBy = id
	}
	return nil
}
