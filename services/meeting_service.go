package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kitapkulubu.link/configs"
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"
	"kitapkulubu.link/pkg/queryparams"
	"kitapkulubu.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Toplantı servisi hataları.
var (
	ErrMeetingNotFound     = errors.New("toplantı bulunamadı")
	ErrMeetingInvalidInput = errors.New("geçersiz toplantı verisi")
	ErrMeetingExists       = errors.New("bu gün, grup ve kitap için toplantı zaten var")
)

// IMeetingService toplantı iş kuralları için arayüz.
type IMeetingService interface {
	ScheduleMeeting(ctx context.Context, meeting *models.Meeting) error
	GetMeetingByID(ctx context.Context, id uint) (*models.Meeting, error)
	GetMeetingByKey(ctx context.Context, day time.Time, groupID, bookID uint) (*models.Meeting, error)
	GetMeetingsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetUpcoming(ctx context.Context, from time.Time, includeHidden bool) ([]models.Meeting, error)
	Reschedule(ctx context.Context, id uint, newDay time.Time) error
	UpdateMeeting(ctx context.Context, meeting *models.Meeting) error
	DeleteMeeting(ctx context.Context, id uint) error
}

// MeetingService IMeetingService arayüzünü uygular.
type MeetingService struct {
	db   *gorm.DB
	repo repositories.IMeetingRepository
}

// NewMeetingService yeni bir MeetingService örneği oluşturur.
func NewMeetingService() IMeetingService {
	return &MeetingService{
		db:   configs.GetDB(),
		repo: repositories.NewMeetingRepository(),
	}
}

// ScheduleMeeting yeni toplantı planlar; aynı (gün, grup, kitap) anahtarı
// varsa reddedilir.
func (s *MeetingService) ScheduleMeeting(ctx context.Context, meeting *models.Meeting) error {
	if meeting == nil || meeting.GroupID == 0 || meeting.BookID == 0 || meeting.Day.IsZero() {
		return fmt.Errorf("%w: gün, grup ve kitap zorunludur", ErrMeetingInvalidInput)
	}
	if existing, err := s.repo.FindByDayGroupAndBook(ctx, meeting.Day, meeting.GroupID, meeting.BookID); err == nil && existing != nil {
		return ErrMeetingExists
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if err := s.repo.Create(ctx, meeting); err != nil {
		configslog.Log.Error("ScheduleMeeting failed",
			zap.Time("day", meeting.Day), zap.Uint("groupID", meeting.GroupID), zap.Uint("bookID", meeting.BookID), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Toplantı planlandı: %s grup %d kitap %d", meeting.Day.Format("2006-01-02"), meeting.GroupID, meeting.BookID)
	return nil
}

// GetMeetingByID toplantıyı ID ile getirir.
func (s *MeetingService) GetMeetingByID(ctx context.Context, id uint) (*models.Meeting, error) {
	meeting, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, err
	}
	return meeting, nil
}

// GetMeetingByKey toplantıyı (gün, grup, kitap) anahtarıyla getirir.
func (s *MeetingService) GetMeetingByKey(ctx context.Context, day time.Time, groupID, bookID uint) (*models.Meeting, error) {
	meeting, err := s.repo.FindByDayGroupAndBook(ctx, day, groupID, bookID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, err
	}
	return meeting, nil
}

// GetMeetingsPaginated toplantıları sayfalayarak getirir.
func (s *MeetingService) GetMeetingsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	meetings, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: meetings,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// GetUpcoming yaklaşan toplantıları getirir.
func (s *MeetingService) GetUpcoming(ctx context.Context, from time.Time, includeHidden bool) ([]models.Meeting, error) {
	return s.repo.FindUpcoming(ctx, from, includeHidden)
}

// Reschedule toplantıyı yeni bir güne taşır. Anahtar değişikliği tek
// transaction içinde yapılır: kayıt kilitli okunur, yeni anahtarın boşta
// olduğu doğrulanır, gün güncellenir.
func (s *MeetingService) Reschedule(ctx context.Context, id uint, newDay time.Time) error {
	if id == 0 || newDay.IsZero() {
		return fmt.Errorf("%w: ID ve yeni gün zorunludur", ErrMeetingInvalidInput)
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var meeting models.Meeting
		err := lockForUpdate(tx).First(&meeting, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMeetingNotFound
			}
			return err
		}

		repoTx := repositories.NewMeetingRepositoryTx(tx)
		if existing, err := repoTx.FindByDayGroupAndBook(ctx, newDay, meeting.GroupID, meeting.BookID); err == nil && existing.ID != meeting.ID {
			return ErrMeetingExists
		} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		meeting.Day = newDay
		return repoTx.Update(ctx, &meeting)
	})
	if txErr != nil {
		if !errors.Is(txErr, ErrMeetingNotFound) && !errors.Is(txErr, ErrMeetingExists) {
			configslog.Log.Error("Reschedule transaction failed", zap.Uint("id", id), zap.Error(txErr))
		}
		return txErr
	}
	configslog.SLog.Infof("Toplantı yeniden planlandı: ID %d -> %s", id, newDay.Format("2006-01-02"))
	return nil
}

// UpdateMeeting toplantının anahtar dışı alanlarını günceller.
func (s *MeetingService) UpdateMeeting(ctx context.Context, meeting *models.Meeting) error {
	if meeting == nil || meeting.ID == 0 {
		return fmt.Errorf("%w: geçersiz ID", ErrMeetingInvalidInput)
	}
	if err := s.repo.Update(ctx, meeting); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMeetingNotFound
		}
		return err
	}
	return nil
}

// DeleteMeeting toplantı kaydını siler.
func (s *MeetingService) DeleteMeeting(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMeetingNotFound
		}
		configslog.Log.Error("DeleteMeeting failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

var _ IMeetingService = (*MeetingService)(nil)
