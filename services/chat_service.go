package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"
	"kitapkulubu.link/repositories"

	"go.uber.org/zap"
)

// Sohbet servisi hataları.
var (
	ErrChatNotFound     = errors.New("sohbet mesajı bulunamadı")
	ErrChatInvalidInput = errors.New("geçersiz sohbet verisi")
	ErrChatForbidden    = errors.New("bu mesajı silme yetkiniz yok")
)

// IChatService sohbet iş kuralları için arayüz.
type IChatService interface {
	PostMessage(ctx context.Context, senderUserID uint, targetType string, targetID uint, message string) (*models.ChatMessage, error)
	ListMessages(ctx context.Context, targetType string, targetID uint, limit int) ([]repositories.ChatMessageWithSender, error)
	DeleteMessage(ctx context.Context, messageID, requestUserID uint, isAdmin bool) error
}

// ChatService IChatService arayüzünü uygular.
type ChatService struct {
	repo repositories.IChatRepository
}

// NewChatService yeni bir ChatService örneği oluşturur.
func NewChatService() IChatService {
	return &ChatService{repo: repositories.NewChatRepository()}
}

// PostMessage hedefe yeni mesaj ekler.
func (s *ChatService) PostMessage(ctx context.Context, senderUserID uint, targetType string, targetID uint, message string) (*models.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if senderUserID == 0 || targetID == 0 || message == "" {
		return nil, fmt.Errorf("%w: gönderen, hedef ve mesaj zorunludur", ErrChatInvalidInput)
	}
	if !models.ValidChatTarget(models.ChatTarget(targetType)) {
		return nil, fmt.Errorf("%w: bilinmeyen hedef türü '%s'", ErrChatInvalidInput, targetType)
	}
	msg := &models.ChatMessage{
		SenderUserID: senderUserID,
		TargetType:   models.ChatTarget(targetType),
		TargetID:     targetID,
		Message:      message,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		configslog.Log.Error("PostMessage failed",
			zap.Uint("senderUserID", senderUserID), zap.String("targetType", targetType), zap.Error(err))
		return nil, err
	}
	return msg, nil
}

// ListMessages hedefin mesajlarını gönderen adıyla listeler.
// Silinmiş mesajlar mezar taşı olarak (boş metin) listede kalır.
func (s *ChatService) ListMessages(ctx context.Context, targetType string, targetID uint, limit int) ([]repositories.ChatMessageWithSender, error) {
	if !models.ValidChatTarget(models.ChatTarget(targetType)) {
		return nil, fmt.Errorf("%w: bilinmeyen hedef türü '%s'", ErrChatInvalidInput, targetType)
	}
	return s.repo.ListByTarget(ctx, models.ChatTarget(targetType), targetID, limit)
}

// DeleteMessage mesajı mezar taşına çevirir. Yalnızca mesajı gönderen
// ya da yönetici silebilir; metin boşaltılır, satır kalır.
func (s *ChatService) DeleteMessage(ctx context.Context, messageID, requestUserID uint, isAdmin bool) error {
	if messageID == 0 || requestUserID == 0 {
		return fmt.Errorf("%w: geçersiz ID", ErrChatInvalidInput)
	}
	msg, err := s.repo.FindByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrChatNotFound
		}
		return err
	}
	if msg.IsTombstone() {
		return nil
	}
	if !isAdmin && msg.SenderUserID != requestUserID {
		return ErrChatForbidden
	}
	if err := s.repo.SoftDelete(ctx, messageID, requestUserID); err != nil {
		configslog.Log.Error("DeleteMessage failed", zap.Uint("messageID", messageID), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Sohbet mesajı silindi: ID %d (kullanıcı %d)", messageID, requestUserID)
	return nil
}

var _ IChatService = (*ChatService)(nil)
