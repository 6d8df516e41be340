package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kitapkulubu.link/configs"
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"
	"kitapkulubu.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RSVP servisi hataları.
var (
	ErrRSVPInvalidStatus = errors.New("geçersiz RSVP durumu")
	ErrRSVPInvalidInput  = errors.New("geçersiz RSVP verisi")
)

// RSVPView bir üyenin etkinlikteki güncel durumunu taşır.
type RSVPView struct {
	Event       *models.Event
	Participant *models.Participant
	Attending   int64
	Full        bool
}

// IRSVPService RSVP iş kuralları için arayüz.
type IRSVPService interface {
	Respond(ctx context.Context, eventKey, webKey, status, comment string) (*RSVPView, error)
	GetView(ctx context.Context, eventKey, webKey string) (*RSVPView, error)
	Invite(ctx context.Context, eventID, memberID uint) error
	RemoveParticipant(ctx context.Context, eventID, memberID uint) error
	ListParticipants(ctx context.Context, eventID uint) ([]models.Participant, error)
	ListByMember(ctx context.Context, memberID uint) ([]models.Participant, error)
	ListHistory(ctx context.Context, eventID uint) ([]models.RSVPLog, error)
}

// RSVPService IRSVPService arayüzünü uygular.
type RSVPService struct {
	db         *gorm.DB
	eventRepo  repositories.IEventRepository
	memberRepo repositories.IMemberRepository
}

// NewRSVPService yeni bir RSVPService örneği oluşturur.
func NewRSVPService() IRSVPService {
	return &RSVPService{
		db:         configs.GetDB(),
		eventRepo:  repositories.NewEventRepository(),
		memberRepo: repositories.NewMemberRepository(),
	}
}

// resolve etkinlik ve üyeyi dış anahtarlarından çözer.
func (s *RSVPService) resolve(ctx context.Context, eventKey, webKey string) (*models.Event, *models.Member, error) {
	event, err := s.eventRepo.FindByEventKey(ctx, eventKey)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrEventNotFound
		}
		return nil, nil, err
	}
	member, err := s.memberRepo.FindByWebKey(ctx, webKey)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrMemberNotFound
		}
		return nil, nil, err
	}
	if !member.Active {
		return nil, nil, ErrMemberNotFound
	}
	return event, member, nil
}

// Respond üyenin yanıtını işler. Kontenjan dolu "katılacak" yanıtı bekleme
// listesine alınır; katılımını iptal eden üyenin yerine bekleme listesindeki
// en eski kayıt terfi ettirilir. Katılımcı satırı, sayaç ve geçmiş kaydı
// tek transaction içinde güncellenir.
func (s *RSVPService) Respond(ctx context.Context, eventKey, webKey, status, comment string) (*RSVPView, error) {
	rsvpStatus := models.RSVPStatus(strings.TrimSpace(status))
	if !models.ValidRSVPStatus(rsvpStatus) {
		return nil, ErrRSVPInvalidStatus
	}
	event, member, err := s.resolve(ctx, eventKey, webKey)
	if err != nil {
		return nil, err
	}
	if err := s.memberRepo.Touch(ctx, member.ID); err != nil {
		configslog.Log.Warn("Respond: hit_time güncellenemedi", zap.Uint("memberID", member.ID), zap.Error(err))
	}

	var view *RSVPView
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked models.Event
		if err := lockForUpdate(tx).First(&locked, event.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		repoTx := repositories.NewParticipantRepositoryTx(tx)
		eventTx := repositories.NewEventRepositoryTx(tx)

		participant, err := repoTx.FindByEventAndMember(ctx, locked.ID, member.ID)
		if errors.Is(err, repositories.ErrNotFound) {
			participant = &models.Participant{EventID: locked.ID, MemberID: member.ID, Status: models.RSVPStatusPending}
			if err := repoTx.Create(ctx, participant); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		wasAttending := participant.Status == models.RSVPStatusAttending && !participant.Waiting

		participant.Status = rsvpStatus
		participant.Comment = comment
		participant.Waiting = false
		if rsvpStatus == models.RSVPStatusAttending && !wasAttending {
			attending, err := repoTx.CountAttending(ctx, locked.ID)
			if err != nil {
				return err
			}
			if locked.MaxAttend > 0 && attending >= int64(locked.MaxAttend) {
				participant.Waiting = true
			}
		}
		if err := repoTx.Update(ctx, participant); err != nil {
			return err
		}

		// Boşalan yeri bekleme listesindeki en eski kayda devret.
		if wasAttending && rsvpStatus != models.RSVPStatusAttending {
			next, err := repoTx.FirstWaiting(ctx, locked.ID)
			if err == nil {
				next.Waiting = false
				if err := repoTx.Update(ctx, next); err != nil {
					return err
				}
				if err := repoTx.AppendLog(ctx, &models.RSVPLog{
					EventID: locked.ID, MemberID: next.MemberID,
					Status: models.RSVPStatusAttending, RecordedAt: time.Now().UTC(),
				}); err != nil {
					return err
				}
				configslog.SLog.Infof("Bekleme listesinden terfi: etkinlik %d, üye %d", locked.ID, next.MemberID)
			} else if !errors.Is(err, repositories.ErrNotFound) {
				return err
			}
		}

		if err := repoTx.AppendLog(ctx, &models.RSVPLog{
			EventID: locked.ID, MemberID: member.ID,
			Status: rsvpStatus, RecordedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}

		attending, err := repoTx.CountAttending(ctx, locked.ID)
		if err != nil {
			return err
		}
		if err := eventTx.SetRSVPAttend(ctx, locked.ID, int(attending)); err != nil {
			return err
		}
		locked.RSVPAttend = int(attending)

		view = &RSVPView{
			Event:       &locked,
			Participant: participant,
			Attending:   attending,
			Full:        locked.MaxAttend > 0 && attending >= int64(locked.MaxAttend),
		}
		return nil
	})
	if txErr != nil {
		if !errors.Is(txErr, ErrEventNotFound) {
			configslog.Log.Error("Respond transaction failed",
				zap.String("eventKey", eventKey), zap.Uint("memberID", member.ID), zap.Error(txErr))
		}
		return nil, txErr
	}
	configslog.SLog.Infof("RSVP kaydedildi: etkinlik %s, üye %d, durum %s", eventKey, member.ID, status)
	return view, nil
}

// GetView üyenin etkinlikteki güncel durumunu kaydetmeden döndürür.
func (s *RSVPService) GetView(ctx context.Context, eventKey, webKey string) (*RSVPView, error) {
	event, member, err := s.resolve(ctx, eventKey, webKey)
	if err != nil {
		return nil, err
	}
	if err := s.memberRepo.Touch(ctx, member.ID); err != nil {
		configslog.Log.Warn("GetView: hit_time güncellenemedi", zap.Uint("memberID", member.ID), zap.Error(err))
	}

	repo := repositories.NewParticipantRepository()
	participant, err := repo.FindByEventAndMember(ctx, event.ID, member.ID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	attending, err := repo.CountAttending(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	return &RSVPView{
		Event:       event,
		Participant: participant,
		Attending:   attending,
		Full:        event.MaxAttend > 0 && attending >= int64(event.MaxAttend),
	}, nil
}

// Invite üyeyi etkinliğe "beklemede" durumuyla ekler; kayıt zaten varsa
// dokunmaz.
func (s *RSVPService) Invite(ctx context.Context, eventID, memberID uint) error {
	if eventID == 0 || memberID == 0 {
		return fmt.Errorf("%w: geçersiz ID", ErrRSVPInvalidInput)
	}
	repo := repositories.NewParticipantRepository()
	if _, err := repo.FindByEventAndMember(ctx, eventID, memberID); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	return repo.Create(ctx, &models.Participant{
		EventID: eventID, MemberID: memberID, Status: models.RSVPStatusPending,
	})
}

// RemoveParticipant üyenin katılım kaydını siler ve sayacı tazeler.
func (s *RSVPService) RemoveParticipant(ctx context.Context, eventID, memberID uint) error {
	if eventID == 0 || memberID == 0 {
		return fmt.Errorf("%w: geçersiz ID", ErrRSVPInvalidInput)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewParticipantRepositoryTx(tx)
		participant, err := repoTx.FindByEventAndMember(ctx, eventID, memberID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil
			}
			return err
		}
		if err := repoTx.Delete(ctx, participant); err != nil {
			return err
		}
		attending, err := repoTx.CountAttending(ctx, eventID)
		if err != nil {
			return err
		}
		return repositories.NewEventRepositoryTx(tx).SetRSVPAttend(ctx, eventID, int(attending))
	})
}

// ListParticipants etkinliğin katılımcılarını listeler.
func (s *RSVPService) ListParticipants(ctx context.Context, eventID uint) ([]models.Participant, error) {
	return repositories.NewParticipantRepository().ListByEvent(ctx, eventID)
}

// ListByMember üyenin tüm katılım kayıtlarını listeler.
func (s *RSVPService) ListByMember(ctx context.Context, memberID uint) ([]models.Participant, error) {
	return repositories.NewParticipantRepository().ListByMember(ctx, memberID)
}

// ListHistory etkinliğin RSVP geçmişini listeler.
func (s *RSVPService) ListHistory(ctx context.Context, eventID uint) ([]models.RSVPLog, error) {
	return repositories.NewParticipantRepository().ListLogByEvent(ctx, eventID)
}

var _ IRSVPService = (*RSVPService)(nil)
