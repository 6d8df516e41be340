package joblock

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// İsimlendirilmiş advisory kilitler. Toplu e-posta gönderim işleri aynı
// kampanya/etkinlik için ikinci bir gönderimin başlamasını bu kilitlerle
// engeller; kilidin dışarıdan serbest bırakılması çalışan döngü için
// kooperatif iptal sinyalidir.

// ErrAlreadyLocked kilit başka bir iş tarafından tutuluyorsa döner.
var ErrAlreadyLocked = errors.New("kilit zaten alınmış")

// JobLock veritabanında tutulan kilit satırı.
type JobLock struct {
	Name      string    `gorm:"primaryKey;type:varchar(100)"`
	ClaimedAt time.Time `gorm:"not null"`
}

// TableName tablo adını sabitler.
func (JobLock) TableName() string { return "job_locks" }

// Manager kilit işlemlerini yürütür.
type Manager struct {
	db *gorm.DB
}

// NewManager yeni bir kilit yöneticisi oluşturur.
func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

// KeyFor kampanya/etkinlik tanımlayıcısından kilit adı üretir:
// noktalama işaretleri atılır, boşluklar alt çizgiye çevrilir.
func KeyFor(prefix, identifier string) string {
	var b strings.Builder
	for _, r := range identifier {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
	}
	return prefix + "_" + b.String()
}

// Claim kilidi almaya çalışır; satır zaten varsa ErrAlreadyLocked döner.
func (m *Manager) Claim(ctx context.Context, name string) error {
	lock := JobLock{Name: name, ClaimedAt: time.Now().UTC()}
	result := m.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&lock)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyLocked
	}
	return nil
}

// IsLocked kilit satırının varlığını kontrol eder. Çalışan gönderim döngüsü
// her adımda bunu çağırır; false dönerse döngü kendini sonlandırır.
func (m *Manager) IsLocked(ctx context.Context, name string) (bool, error) {
	var count int64
	err := m.db.WithContext(ctx).Model(&JobLock{}).Where("name = ?", name).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Free kilidi serbest bırakır. Satır yoksa hata dönmez.
func (m *Manager) Free(ctx context.Context, name string) error {
	return m.db.WithContext(ctx).Where("name = ?", name).Delete(&JobLock{}).Error
}
