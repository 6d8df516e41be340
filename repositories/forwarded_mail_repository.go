package repositories

import (
	"context"
	"errors"

	"kitapkulubu.link/configs"
	"kitapkulubu.link/models"

	"gorm.io/gorm"
)

// IForwardedMailRepository yönlendirilen e-posta kayıtları için arayüz.
type IForwardedMailRepository interface {
	Create(ctx context.Context, mail *models.ForwardedMail) error
	FindByMessageID(ctx context.Context, messageID string) (*models.ForwardedMail, error)
	ListUnprocessed(ctx context.Context) ([]models.ForwardedMail, error)
	MarkProcessed(ctx context.Context, messageID, status string) error
}

// ForwardedMailRepository IForwardedMailRepository arayüzünü uygular.
type ForwardedMailRepository struct {
	db *gorm.DB
}

// NewForwardedMailRepository yeni bir ForwardedMailRepository örneği oluşturur.
func NewForwardedMailRepository() IForwardedMailRepository {
	return &ForwardedMailRepository{db: configs.GetDB()}
}

// NewForwardedMailRepositoryTx transaction içinde çalışan örnek oluşturur.
func NewForwardedMailRepositoryTx(tx *gorm.DB) IForwardedMailRepository {
	return &ForwardedMailRepository{db: tx}
}

func (r *ForwardedMailRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni kayıt ekler. MessageID benzersizliği indeksle korunur.
func (r *ForwardedMailRepository) Create(ctx context.Context, mail *models.ForwardedMail) error {
	if mail == nil || mail.MessageID == "" || mail.Sender == "" {
		return errors.New("mesaj ID veya gönderen eksik")
	}
	return r.getDB(ctx).Create(mail).Error
}

// FindByMessageID kaydı mesaj ID ile bulur.
func (r *ForwardedMailRepository) FindByMessageID(ctx context.Context, messageID string) (*models.ForwardedMail, error) {
	if messageID == "" {
		return nil, errors.New("mesaj ID boş olamaz")
	}
	var mail models.ForwardedMail
	err := r.getDB(ctx).Where("message_id = ?", messageID).First(&mail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &mail, nil
}

// ListUnprocessed henüz işlenmemiş kayıtları ekleniş sırasıyla listeler.
func (r *ForwardedMailRepository) ListUnprocessed(ctx context.Context) ([]models.ForwardedMail, error) {
	var mails []models.ForwardedMail
	err := r.getDB(ctx).
		Where("processed = ?", false).
		Order("created_at asc").
		Find(&mails).Error
	return mails, err
}

// MarkProcessed kaydı işlenmiş olarak damgalar ve durum notunu yazar.
func (r *ForwardedMailRepository) MarkProcessed(ctx context.Context, messageID, status string) error {
	if messageID == "" {
		return errors.New("mesaj ID boş olamaz")
	}
	result := r.getDB(ctx).Model(&models.ForwardedMail{}).
		Where("message_id = ?", messageID).
		Updates(map[string]any{"processed": true, "status": status})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IForwardedMailRepository = (*ForwardedMailRepository)(nil)
