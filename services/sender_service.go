package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"kitapkulubu.link/configs"
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/configs/configsmailer"
	"kitapkulubu.link/models"
	"kitapkulubu.link/pkg/joblock"
	"kitapkulubu.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Gönderim servisi hataları.
var (
	ErrSendAlreadyRunning = errors.New("bu kampanya için gönderim zaten sürüyor")
	ErrSendNothingToDo    = errors.New("gönderilecek alıcı yok")
)

// Son başarısız e-posta gönderiminin özeti; yönetim ekranında gösterilir.
var (
	lastMailErrMu sync.Mutex
	lastMailErr   string
)

func setLastMailError(email string, err error) {
	lastMailErrMu.Lock()
	lastMailErr = fmt.Sprintf("%s: %v", email, err)
	lastMailErrMu.Unlock()
}

// LastMailError en son başarısız e-posta gönderiminin mesajını döndürür;
// hiç hata olmadıysa boş döner.
func LastMailError() string {
	lastMailErrMu.Lock()
	defer lastMailErrMu.Unlock()
	return lastMailErr
}

// EmailSender tek bir e-posta gönderir; testlerde sahte uygulama verilir.
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}

// ISenderService toplu gönderim iş kuralları için arayüz.
type ISenderService interface {
	StartCampaignSend(ctx context.Context, campaignID uint) error
	CancelCampaignSend(ctx context.Context, campaignID uint) error
	IsCampaignSending(ctx context.Context, campaignID uint) (bool, error)
	RunCampaignSend(ctx context.Context, campaignID uint) (int, error)
	StartEventInvites(ctx context.Context, eventID uint) error
	RunEventInvites(ctx context.Context, eventID uint) (int, error)
}

// SenderService ISenderService arayüzünü uygular. Gönderim arka planda tek
// goroutine ile yürür; eşzamanlılık veritabanı kilit tablosuyla engellenir,
// iptal kilidin serbest bırakılmasıyla işbirlikli yapılır.
type SenderService struct {
	db           *gorm.DB
	locks        *joblock.Manager
	mailer       EmailSender
	campaignRepo repositories.ICampaignRepository
	sendSleep    time.Duration
}

// NewSenderService yeni bir SenderService örneği oluşturur.
func NewSenderService() ISenderService {
	db := configs.GetDB()
	return &SenderService{
		db:           db,
		locks:        joblock.NewManager(db),
		mailer:       configsmailer.GetMailer(),
		campaignRepo: repositories.NewCampaignRepository(),
		sendSleep:    configs.GetConfig().SendSleep,
	}
}

// NewSenderServiceWith bağımlılık vererek kurar (test kancası).
func NewSenderServiceWith(db *gorm.DB, mailer EmailSender, sendSleep time.Duration) *SenderService {
	return &SenderService{
		db:           db,
		locks:        joblock.NewManager(db),
		mailer:       mailer,
		campaignRepo: repositories.NewCampaignRepositoryTx(db),
		sendSleep:    sendSleep,
	}
}

func campaignLockKey(campaignID uint) string {
	return joblock.KeyFor("campaign", strconv.FormatUint(uint64(campaignID), 10))
}

func eventLockKey(eventID uint) string {
	return joblock.KeyFor("event", strconv.FormatUint(uint64(eventID), 10))
}

// StartCampaignSend kilidi alır ve gönderim döngüsünü arka planda başlatır.
func (s *SenderService) StartCampaignSend(ctx context.Context, campaignID uint) error {
	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}
	unsent, err := s.campaignRepo.ListUnsent(ctx, campaignID)
	if err != nil {
		return err
	}
	if len(unsent) == 0 {
		return ErrSendNothingToDo
	}

	key := campaignLockKey(campaignID)
	if err := s.locks.Claim(ctx, key); err != nil {
		if errors.Is(err, joblock.ErrAlreadyLocked) {
			return ErrSendAlreadyRunning
		}
		return err
	}

	configslog.SLog.Infof("Kampanya gönderimi başlıyor: %s (ID %d, %d alıcı)",
		campaign.Subject, campaignID, len(unsent))
	go func() {
		// İstek bağlamı yanıtla birlikte kapanır; döngü kendi bağlamıyla yürür.
		if _, err := s.RunCampaignSend(context.Background(), campaignID); err != nil {
			configslog.Log.Error("Kampanya gönderim döngüsü hatayla bitti",
				zap.Uint("campaignID", campaignID), zap.Error(err))
		}
	}()
	return nil
}

// RunCampaignSend gönderim döngüsünü eşzamanlı çalıştırır ve gönderilen
// alıcı sayısını döndürür. Kilidin alınmış olması beklenir; dönüşte kilit
// her durumda bırakılır. Her turda kilit yoklanır: kilit dışarıdan
// bırakıldıysa döngü kalan alıcıları bekletip durur, gönderilmişler
// damgalı kalır.
func (s *SenderService) RunCampaignSend(ctx context.Context, campaignID uint) (int, error) {
	key := campaignLockKey(campaignID)
	defer func() {
		if err := s.locks.Free(context.Background(), key); err != nil {
			configslog.Log.Error("Gönderim kilidi bırakılamadı", zap.String("key", key), zap.Error(err))
		}
	}()

	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		return 0, err
	}
	unsent, err := s.campaignRepo.ListUnsent(ctx, campaignID)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range unsent {
		locked, err := s.locks.IsLocked(ctx, key)
		if err != nil {
			return sent, err
		}
		if !locked {
			configslog.SLog.Infof("Kampanya gönderimi iptal edildi: ID %d (%d/%d gönderildi)",
				campaignID, sent, len(unsent))
			return sent, nil
		}

		member := unsent[i].Member
		if !member.Active || member.NoEmail || strings.TrimSpace(member.Email) == "" {
			continue
		}
		body := personalizeBody(campaign.Body, &member)
		if err := s.mailer.Send(member.Email, campaign.Subject, body); err != nil {
			// Tek alıcının hatası döngüyü durdurmaz.
			setLastMailError(member.Email, err)
			configslog.Log.Error("Kampanya e-postası gönderilemedi",
				zap.Uint("campaignID", campaignID), zap.String("email", member.Email), zap.Error(err))
			continue
		}
		if err := s.campaignRepo.MarkSent(ctx, campaignID, member.ID, time.Now().UTC()); err != nil {
			return sent, err
		}
		sent++

		if s.sendSleep > 0 && i < len(unsent)-1 {
			time.Sleep(s.sendSleep)
		}
	}
	configslog.SLog.Infof("Kampanya gönderimi tamamlandı: ID %d (%d alıcı)", campaignID, sent)
	return sent, nil
}

// CancelCampaignSend kilidi bırakarak süren gönderimi işbirlikli durdurur.
func (s *SenderService) CancelCampaignSend(ctx context.Context, campaignID uint) error {
	return s.locks.Free(ctx, campaignLockKey(campaignID))
}

// IsCampaignSending gönderimin sürüp sürmediğini söyler.
func (s *SenderService) IsCampaignSending(ctx context.Context, campaignID uint) (bool, error) {
	return s.locks.IsLocked(ctx, campaignLockKey(campaignID))
}

// personalizeBody gövdedeki {name} ve {web_key} yertutucularını doldurur.
func personalizeBody(body string, member *models.Member) string {
	return strings.NewReplacer(
		"{name}", member.Name,
		"{web_key}", member.WebKey,
	).Replace(body)
}

// StartEventInvites kilidi alır ve davet gönderim döngüsünü arka planda
// başlatır. Aynı etkinlik için süren bir gönderim varsa reddedilir.
func (s *SenderService) StartEventInvites(ctx context.Context, eventID uint) error {
	eventRepo := repositories.NewEventRepositoryTx(s.db)
	event, err := eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	participants, err := repositories.NewParticipantRepositoryTx(s.db).ListByEvent(ctx, eventID)
	if err != nil {
		return err
	}
	pending := 0
	for i := range participants {
		if participants[i].EmailSent == nil {
			pending++
		}
	}
	if pending == 0 {
		return ErrSendNothingToDo
	}

	key := eventLockKey(eventID)
	if err := s.locks.Claim(ctx, key); err != nil {
		if errors.Is(err, joblock.ErrAlreadyLocked) {
			return ErrSendAlreadyRunning
		}
		return err
	}

	configslog.SLog.Infof("Etkinlik davet gönderimi başlıyor: %s (ID %d, %d bekleyen)",
		event.EventKey, eventID, pending)
	go func() {
		// İstek bağlamı yanıtla birlikte kapanır; döngü kendi bağlamıyla yürür.
		if _, err := s.RunEventInvites(context.Background(), eventID); err != nil {
			configslog.Log.Error("Etkinlik davet döngüsü hatayla bitti",
				zap.Uint("eventID", eventID), zap.Error(err))
		}
	}()
	return nil
}

// RunEventInvites davet döngüsünü eşzamanlı çalıştırır ve gönderilen davet
// sayısını döndürür. Kilidin alınmış olması beklenir; dönüşte kilit her
// durumda bırakılır. Her turda kilit yoklanır, dışarıdan bırakılırsa döngü
// durur. Davet bağlantısı üyenin web anahtarıyla kurulur.
func (s *SenderService) RunEventInvites(ctx context.Context, eventID uint) (int, error) {
	key := eventLockKey(eventID)
	defer func() {
		if err := s.locks.Free(context.Background(), key); err != nil {
			configslog.Log.Error("Davet kilidi bırakılamadı", zap.String("key", key), zap.Error(err))
		}
	}()

	eventRepo := repositories.NewEventRepositoryTx(s.db)
	participantRepo := repositories.NewParticipantRepositoryTx(s.db)

	event, err := eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrEventNotFound
		}
		return 0, err
	}
	participants, err := participantRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}

	baseURL := strings.TrimRight(configs.GetConfig().BaseURL, "/")
	sent := 0
	for i := range participants {
		locked, err := s.locks.IsLocked(ctx, key)
		if err != nil {
			return sent, err
		}
		if !locked {
			configslog.SLog.Infof("Etkinlik davet gönderimi iptal edildi: %s (%d gönderildi)",
				event.EventKey, sent)
			return sent, nil
		}

		p := &participants[i]
		if p.EmailSent != nil {
			continue
		}
		member := p.Member
		if !member.Active || member.NoEmail || strings.TrimSpace(member.Email) == "" {
			continue
		}
		link := fmt.Sprintf("%s/rsvp/%s/%s", baseURL, event.EventKey, member.WebKey)
		body := fmt.Sprintf("%s<p><a href=%q>Yanıtlamak için tıklayın</a></p>", event.Body, link)
		if err := s.mailer.Send(member.Email, event.Summary, body); err != nil {
			setLastMailError(member.Email, err)
			configslog.Log.Error("Davet e-postası gönderilemedi",
				zap.Uint("eventID", eventID), zap.String("email", member.Email), zap.Error(err))
			continue
		}
		if err := participantRepo.MarkEmailSent(ctx, eventID, member.ID, time.Now().UTC()); err != nil {
			return sent, err
		}
		sent++
		if s.sendSleep > 0 {
			time.Sleep(s.sendSleep)
		}
	}
	configslog.SLog.Infof("Etkinlik davetleri gönderildi: %s (%d adet)", event.EventKey, sent)
	return sent, nil
}

var _ ISenderService = (*SenderService)(nil)
