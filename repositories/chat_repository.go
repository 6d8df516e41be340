package repositories

import (
	"context"
	"errors"

	"kitapkulubu.link/configs"
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ChatMessageWithSender mesajı gönderenin adıyla birlikte taşır
// (users tablosuna JOIN ile).
type ChatMessageWithSender struct {
	models.ChatMessage
	SenderName string
}

// IChatRepository sohbet mesajı veritabanı işlemleri için arayüz.
type IChatRepository interface {
	Create(ctx context.Context, message *models.ChatMessage) error
	FindByID(ctx context.Context, id uint) (*models.ChatMessage, error)
	ListByTarget(ctx context.Context, targetType models.ChatTarget, targetID uint, limit int) ([]ChatMessageWithSender, error)
	SoftDelete(ctx context.Context, id uint, deletedByUserID uint) error
}

// ChatRepository IChatRepository arayüzünü uygular.
type ChatRepository struct {
	db *gorm.DB
}

// NewChatRepository yeni bir ChatRepository örneği oluşturur.
func NewChatRepository() IChatRepository {
	return &ChatRepository{db: configs.GetDB()}
}

// NewChatRepositoryTx transaction içinde çalışan örnek oluşturur.
func NewChatRepositoryTx(tx *gorm.DB) IChatRepository {
	return &ChatRepository{db: tx}
}

func (r *ChatRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni mesaj ekler (salt-ekleme).
func (r *ChatRepository) Create(ctx context.Context, message *models.ChatMessage) error {
	if message == nil || message.SenderUserID == 0 || message.Message == "" {
		return errors.New("geçersiz mesaj (gönderen veya içerik eksik)")
	}
	if !models.ValidChatTarget(message.TargetType) || message.TargetID == 0 {
		return errors.New("geçersiz mesaj hedefi")
	}
	return r.getDB(ctx).Create(message).Error
}

// FindByID mesajı ID ile bulur.
func (r *ChatRepository) FindByID(ctx context.Context, id uint) (*models.ChatMessage, error) {
	if id == 0 {
		return nil, errors.New("geçersiz mesaj ID")
	}
	var message models.ChatMessage
	err := r.getDB(ctx).First(&message, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &message, nil
}

// ListByTarget hedefin mesajlarını gönderen adıyla, eski mesajdan yeniye
// listeler. Silinmiş mesajlar mezar taşı olarak listede kalır.
func (r *ChatRepository) ListByTarget(ctx context.Context, targetType models.ChatTarget, targetID uint, limit int) ([]ChatMessageWithSender, error) {
	if !models.ValidChatTarget(targetType) || targetID == 0 {
		return nil, errors.New("geçersiz mesaj hedefi")
	}
	if limit <= 0 {
		limit = 100
	}
	var rows []ChatMessageWithSender
	err := r.getDB(ctx).Model(&models.ChatMessage{}).
		Select("chat_messages.*, users.name AS sender_name").
		Joins("JOIN users ON users.id = chat_messages.sender_user_id").
		Where("chat_messages.target_type = ? AND chat_messages.target_id = ?", targetType, targetID).
		Order("chat_messages.created_at asc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		configslog.Log.Error("ChatRepository.ListByTarget: DB error",
			zap.String("targetType", string(targetType)), zap.Uint("targetID", targetID), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// SoftDelete mesajı mezar taşına çevirir: içerik temizlenir, DeletedByUserID
// doldurulur, satır sırada kalır.
func (r *ChatRepository) SoftDelete(ctx context.Context, id uint, deletedByUserID uint) error {
	if id == 0 || deletedByUserID == 0 {
		return errors.New("geçersiz mesaj veya kullanıcı ID")
	}
	result := r.getDB(ctx).Model(&models.ChatMessage{}).
		Where("id = ? AND deleted_by_user_id IS NULL", id).
		Updates(map[string]any{
			"message":            "",
			"deleted_by_user_id": deletedByUserID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IChatRepository = (*ChatRepository)(nil)
