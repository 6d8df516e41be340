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

// Yönlendirilen posta servisi hataları.
var (
	ErrMailNotFound      = errors.New("posta kaydı bulunamadı")
	ErrMailDuplicate     = errors.New("bu Message-ID zaten kayıtlı")
	ErrMailInvalidInput  = errors.New("geçersiz posta verisi")
	ErrMailSenderUnknown = errors.New("gönderen üye olarak bulunamadı")
)

// IForwardedMailService yönlendirilen e-posta kayıtları için arayüz.
type IForwardedMailService interface {
	Register(ctx context.Context, messageID, subject, sender string) (*models.ForwardedMail, error)
	ProcessToChat(ctx context.Context, messageID string, targetType string, targetID uint, body string) error
	Reject(ctx context.Context, messageID, reason string) error
	ListUnprocessed(ctx context.Context) ([]models.ForwardedMail, error)
}

// ForwardedMailService IForwardedMailService arayüzünü uygular.
type ForwardedMailService struct {
	repo       repositories.IForwardedMailRepository
	memberRepo repositories.IMemberRepository
	chatSvc    IChatService
}

// NewForwardedMailService yeni bir ForwardedMailService örneği oluşturur.
func NewForwardedMailService() IForwardedMailService {
	return &ForwardedMailService{
		repo:       repositories.NewForwardedMailRepository(),
		memberRepo: repositories.NewMemberRepository(),
		chatSvc:    NewChatService(),
	}
}

// Register gelen postayı kayda alır. Aynı Message-ID ikinci kez gelirse
// kayıt tekrarlanmaz (yeniden teslim durumu).
func (s *ForwardedMailService) Register(ctx context.Context, messageID, subject, sender string) (*models.ForwardedMail, error) {
	messageID = strings.TrimSpace(messageID)
	sender = strings.ToLower(strings.TrimSpace(sender))
	if messageID == "" || sender == "" {
		return nil, fmt.Errorf("%w: Message-ID ve gönderen zorunludur", ErrMailInvalidInput)
	}
	if existing, err := s.repo.FindByMessageID(ctx, messageID); err == nil {
		return existing, ErrMailDuplicate
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	mail := &models.ForwardedMail{
		MessageID: messageID,
		Subject:   subject,
		Sender:    sender,
	}
	if err := s.repo.Create(ctx, mail); err != nil {
		configslog.Log.Error("Register: posta kaydedilemedi", zap.String("messageID", messageID), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("Yönlendirilen posta kaydedildi: %s (%s)", messageID, sender)
	return mail, nil
}

// ProcessToChat kayıtlı postayı sohbet mesajına çevirir. Gönderenin e-postası
// bir kullanıcıya bağlı üyeyle eşleşmek zorundadır.
func (s *ForwardedMailService) ProcessToChat(ctx context.Context, messageID string, targetType string, targetID uint, body string) error {
	mail, err := s.repo.FindByMessageID(ctx, messageID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMailNotFound
		}
		return err
	}
	if mail.Processed {
		return nil
	}

	member, err := s.memberRepo.FindByEmail(ctx, mail.Sender)
	if err != nil || member.UserID == nil {
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		if markErr := s.repo.MarkProcessed(ctx, messageID, "gönderen eşleşmedi"); markErr != nil {
			return markErr
		}
		return ErrMailSenderUnknown
	}

	if _, err := s.chatSvc.PostMessage(ctx, *member.UserID, targetType, targetID, body); err != nil {
		return err
	}
	if err := s.repo.MarkProcessed(ctx, messageID, "sohbete aktarıldı"); err != nil {
		return err
	}
	configslog.SLog.Infof("Posta sohbete aktarıldı: %s -> %s/%d", messageID, targetType, targetID)
	return nil
}

// Reject postayı verilen gerekçeyle işlenmiş sayar.
func (s *ForwardedMailService) Reject(ctx context.Context, messageID, reason string) error {
	if _, err := s.repo.FindByMessageID(ctx, messageID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMailNotFound
		}
		return err
	}
	return s.repo.MarkProcessed(ctx, messageID, reason)
}

// ListUnprocessed bekleyen postaları listeler.
func (s *ForwardedMailService) ListUnprocessed(ctx context.Context) ([]models.ForwardedMail, error) {
	return s.repo.ListUnprocessed(ctx)
}

var _ IForwardedMailService = (*ForwardedMailService)(nil)
