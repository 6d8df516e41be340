package repositories

import (
	"context"
	"errors"
	"time"

	"kitapkulubu.link/configs"
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IParticipantRepository katılımcı ve RSVP geçmişi işlemleri için arayüz.
type IParticipantRepository interface {
	Create(ctx context.Context, participant *models.Participant) error
	FindByEventAndMember(ctx context.Context, eventID, memberID uint) (*models.Participant, error)
	ListByEvent(ctx context.Context, eventID uint) ([]models.Participant, error)
	ListByMember(ctx context.Context, memberID uint) ([]models.Participant, error)
	FirstWaiting(ctx context.Context, eventID uint) (*models.Participant, error)
	CountAttending(ctx context.Context, eventID uint) (int64, error)
	Update(ctx context.Context, participant *models.Participant) error
	MarkEmailSent(ctx context.Context, eventID, memberID uint, at time.Time) error
	Delete(ctx context.Context, participant *models.Participant) error

	AppendLog(ctx context.Context, entry *models.RSVPLog) error
	ListLogByEvent(ctx context.Context, eventID uint) ([]models.RSVPLog, error)
}

// ParticipantRepository IParticipantRepository arayüzünü uygular.
type ParticipantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository yeni bir ParticipantRepository örneği oluşturur.
func NewParticipantRepository() IParticipantRepository {
	return &ParticipantRepository{db: configs.GetDB()}
}

// NewParticipantRepositoryTx transaction içinde çalışan örnek oluşturur.
func NewParticipantRepositoryTx(tx *gorm.DB) IParticipantRepository {
	return &ParticipantRepository{db: tx}
}

func (r *ParticipantRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni katılımcı kaydı ekler. (EventID, MemberID) benzersizliği
// veritabanı indeksiyle korunur.
func (r *ParticipantRepository) Create(ctx context.Context, participant *models.Participant) error {
	if participant == nil || participant.EventID == 0 || participant.MemberID == 0 {
		return errors.New("geçersiz katılımcı verisi (EventID veya MemberID eksik)")
	}
	if participant.Status == "" {
		participant.Status = models.RSVPStatusPending
	}
	return r.getDB(ctx).Create(participant).Error
}

// FindByEventAndMember katılımcıyı bileşik anahtarıyla bulur.
func (r *ParticipantRepository) FindByEventAndMember(ctx context.Context, eventID, memberID uint) (*models.Participant, error) {
	if eventID == 0 || memberID == 0 {
		return nil, errors.New("geçersiz ID")
	}
	var participant models.Participant
	err := r.getDB(ctx).
		Where("event_id = ? AND member_id = ?", eventID, memberID).
		First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("ParticipantRepository.FindByEventAndMember: DB error",
			zap.Uint("eventID", eventID), zap.Uint("memberID", memberID), zap.Error(err))
		return nil, err
	}
	return &participant, nil
}

// ListByEvent etkinliğin tüm katılımcılarını üye bilgisiyle listeler.
func (r *ParticipantRepository) ListByEvent(ctx context.Context, eventID uint) ([]models.Participant, error) {
	if eventID == 0 {
		return nil, errors.New("geçersiz Event ID")
	}
	var participants []models.Participant
	err := r.getDB(ctx).
		Where("event_id = ?", eventID).
		Preload("Member").
		Order("created_at asc").
		Find(&participants).Error
	if err != nil {
		configslog.Log.Error("ParticipantRepository.ListByEvent: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return participants, nil
}

// ListByMember üyenin tüm katılım kayıtlarını etkinlik bilgisiyle listeler.
func (r *ParticipantRepository) ListByMember(ctx context.Context, memberID uint) ([]models.Participant, error) {
	if memberID == 0 {
		return nil, errors.New("geçersiz Member ID")
	}
	var participants []models.Participant
	err := r.getDB(ctx).
		Where("member_id = ?", memberID).
		Preload("Event").
		Order("created_at desc").
		Find(&participants).Error
	return participants, err
}

// FirstWaiting bekleme listesindeki en eski kaydı döndürür
// (terfi sırası: değişiklik zamanına göre).
func (r *ParticipantRepository) FirstWaiting(ctx context.Context, eventID uint) (*models.Participant, error) {
	if eventID == 0 {
		return nil, errors.New("geçersiz Event ID")
	}
	var participant models.Participant
	err := r.getDB(ctx).
		Where("event_id = ? AND waiting = ?", eventID, true).
		Order("updated_at asc").
		First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &participant, nil
}

// CountAttending bekleme listesi hariç "katılacak" sayısını döndürür.
func (r *ParticipantRepository) CountAttending(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Participant{}).
		Where("event_id = ? AND status = ? AND waiting = ?", eventID, models.RSVPStatusAttending, false).
		Count(&count).Error
	return count, err
}

// Update katılımcı kaydını günceller.
func (r *ParticipantRepository) Update(ctx context.Context, participant *models.Participant) error {
	if participant == nil || participant.ID == 0 {
		return errors.New("geçersiz katılımcı")
	}
	return r.getDB(ctx).Save(participant).Error
}

// MarkEmailSent davet e-postası gönderim zamanını damgalar.
func (r *ParticipantRepository) MarkEmailSent(ctx context.Context, eventID, memberID uint, at time.Time) error {
	if eventID == 0 || memberID == 0 {
		return errors.New("geçersiz ID")
	}
	return r.getDB(ctx).Model(&models.Participant{}).
		Where("event_id = ? AND member_id = ?", eventID, memberID).
		UpdateColumn("email_sent", at).Error
}

// Delete katılımcı kaydını siler.
func (r *ParticipantRepository) Delete(ctx context.Context, participant *models.Participant) error {
	if participant == nil || participant.ID == 0 {
		return errors.New("geçersiz katılımcı")
	}
	return r.getDB(ctx).Delete(participant).Error
}

// AppendLog RSVP geçmişine kayıt ekler (salt-ekleme).
func (r *ParticipantRepository) AppendLog(ctx context.Context, entry *models.RSVPLog) error {
	if entry == nil || entry.EventID == 0 || entry.MemberID == 0 {
		return errors.New("geçersiz RSVP log kaydı")
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}
	return r.getDB(ctx).Create(entry).Error
}

// ListLogByEvent etkinliğin RSVP geçmişini eski kayıttan yeniye listeler.
func (r *ParticipantRepository) ListLogByEvent(ctx context.Context, eventID uint) ([]models.RSVPLog, error) {
	if eventID == 0 {
		return nil, errors.New("geçersiz Event ID")
	}
	var entries []models.RSVPLog
	err := r.getDB(ctx).
		Where("event_id = ?", eventID).
		Order("recorded_at asc").
		Find(&entries).Error
	return entries, err
}

var _ IParticipantRepository = (*ParticipantRepository)(nil)
