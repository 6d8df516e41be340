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
	"kitapkulubu.link/pkg/queryparams"
	"kitapkulubu.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Etkinlik servisi hataları.
var (
	ErrEventNotFound     = errors.New("etkinlik bulunamadı")
	ErrEventInvalidInput = errors.New("geçersiz etkinlik verisi")
	ErrEventKeyTaken     = errors.New("etkinlik anahtarı zaten kullanımda")
)

// IEventService etkinlik iş kuralları için arayüz.
type IEventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GenerateFromMeeting(ctx context.Context, meetingID uint, startHour, durationHours int) (*models.Event, error)
	GetEventByID(ctx context.Context, id uint) (*models.Event, error)
	GetEventByKey(ctx context.Context, eventKey string) (*models.Event, error)
	GetEventsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetUpcoming(ctx context.Context, from time.Time, includePrivate bool) ([]models.Event, error)
	RenameKey(ctx context.Context, id uint, newKey string) error
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, id uint) error
}

// EventService IEventService arayüzünü uygular.
type EventService struct {
	db          *gorm.DB
	repo        repositories.IEventRepository
	meetingRepo repositories.IMeetingRepository
	groupRepo   repositories.IGroupRepository
}

// NewEventService yeni bir EventService örneği oluşturur.
func NewEventService() IEventService {
	return &EventService{
		db:          configs.GetDB(),
		repo:        repositories.NewEventRepository(),
		meetingRepo: repositories.NewMeetingRepository(),
		groupRepo:   repositories.NewGroupRepository(),
	}
}

// CreateEvent elle etkinlik oluşturur; anahtar benzersizliği aranır.
func (s *EventService) CreateEvent(ctx context.Context, event *models.Event) error {
	if event == nil || strings.TrimSpace(event.EventKey) == "" || strings.TrimSpace(event.Summary) == "" {
		return fmt.Errorf("%w: anahtar ve özet zorunludur", ErrEventInvalidInput)
	}
	if event.StartsAt.IsZero() || event.EndsAt.Before(event.StartsAt) {
		return fmt.Errorf("%w: bitiş başlangıçtan önce olamaz", ErrEventInvalidInput)
	}
	if existing, err := s.repo.FindByEventKey(ctx, event.EventKey); err == nil && existing != nil {
		return ErrEventKeyTaken
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if err := s.repo.Create(ctx, event); err != nil {
		configslog.Log.Error("CreateEvent failed", zap.String("eventKey", event.EventKey), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Etkinlik oluşturuldu: %s", event.EventKey)
	return nil
}

// renderTemplate grup şablonundaki yertutucuları doldurur:
// {day} {group} {book} {author}.
func renderTemplate(template string, day time.Time, group *models.Group, book *models.Book) string {
	replacer := strings.NewReplacer(
		"{day}", day.Format("2006-01-02"),
		"{group}", group.Tag,
		"{book}", book.Title,
		"{author}", book.Author.Name,
	)
	return replacer.Replace(template)
}

// GenerateFromMeeting toplantıdan, grubun şablonlarıyla etkinlik üretir.
// Şablon boşsa makul bir varsayılan kurulur.
func (s *EventService) GenerateFromMeeting(ctx context.Context, meetingID uint, startHour, durationHours int) (*models.Event, error) {
	if meetingID == 0 {
		return nil, fmt.Errorf("%w: geçersiz toplantı ID", ErrEventInvalidInput)
	}
	if startHour < 0 || startHour > 23 {
		startHour = 19
	}
	if durationHours <= 0 {
		durationHours = 2
	}

	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, err
	}
	group := &meeting.Group
	book := &meeting.Book

	eventKey := renderTemplate(group.EventKeyTemplate, meeting.Day, group, book)
	if strings.TrimSpace(group.EventKeyTemplate) == "" {
		eventKey = fmt.Sprintf("%s-%d-%d", meeting.Day.Format("20060102"), group.GroupNo, book.ID)
	}
	summary := renderTemplate(group.EventSummaryTemplate, meeting.Day, group, book)
	if strings.TrimSpace(group.EventSummaryTemplate) == "" {
		summary = fmt.Sprintf("%s: %s", group.Tag, book.Title)
	}
	body := renderTemplate(group.EventBodyTemplate, meeting.Day, group, book)

	startsAt := time.Date(meeting.Day.Year(), meeting.Day.Month(), meeting.Day.Day(), startHour, 0, 0, 0, time.UTC)
	event := &models.Event{
		EventKey:  eventKey,
		StartsAt:  startsAt,
		EndsAt:    startsAt.Add(time.Duration(durationHours) * time.Hour),
		Summary:   summary,
		Body:      body,
		MaxAttend: group.DefaultMaxAttend,
		IsPrivate: meeting.IsPrivate,
		Priority:  meeting.Priority,
	}
	if err := s.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// GetEventByID etkinliği ID ile getirir.
func (s *EventService) GetEventByID(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// GetEventByKey etkinliği dışa dönük anahtarıyla getirir.
func (s *EventService) GetEventByKey(ctx context.Context, eventKey string) (*models.Event, error) {
	event, err := s.repo.FindByEventKey(ctx, eventKey)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// GetEventsPaginated etkinlikleri sayfalayarak getirir.
func (s *EventService) GetEventsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	events, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: events,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// GetUpcoming yaklaşan etkinlikleri getirir.
func (s *EventService) GetUpcoming(ctx context.Context, from time.Time, includePrivate bool) ([]models.Event, error) {
	return s.repo.FindUpcoming(ctx, from, includePrivate)
}

// RenameKey etkinliğin dışa dönük anahtarını değiştirir. Katılımcılar,
// RSVP geçmişi ve sohbet mesajları etkinliğe sayısal ID ile bağlı olduğundan
// yalnızca etkinlik satırı değişir; yine de yeni anahtar çakışması kontrolü
// kilitli transaction içinde yapılır.
func (s *EventService) RenameKey(ctx context.Context, id uint, newKey string) error {
	newKey = strings.TrimSpace(newKey)
	if id == 0 || newKey == "" {
		return fmt.Errorf("%w: ID ve yeni anahtar zorunludur", ErrEventInvalidInput)
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		err := lockForUpdate(tx).First(&event, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Event{}).Where("event_key = ? AND id <> ?", newKey, id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEventKeyTaken
		}

		oldKey := event.EventKey
		event.EventKey = newKey
		if err := tx.Save(&event).Error; err != nil {
			return err
		}
		configslog.SLog.Infof("Etkinlik anahtarı değişti: %s -> %s", oldKey, newKey)
		return nil
	})
	if txErr != nil && !errors.Is(txErr, ErrEventNotFound) && !errors.Is(txErr, ErrEventKeyTaken) {
		configslog.Log.Error("RenameKey transaction failed", zap.Uint("id", id), zap.Error(txErr))
	}
	return txErr
}

// UpdateEvent etkinlik kaydını günceller.
func (s *EventService) UpdateEvent(ctx context.Context, event *models.Event) error {
	if event == nil || event.ID == 0 {
		return fmt.Errorf("%w: geçersiz ID", ErrEventInvalidInput)
	}
	if err := s.repo.Update(ctx, event); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	return nil
}

// DeleteEvent etkinliği ve bağlı kayıtlarını (katılımcılar, RSVP geçmişi,
// etkinlik hedefli sohbet mesajları) tek transaction içinde siler.
func (s *EventService) DeleteEvent(ctx context.Context, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: geçersiz ID", ErrEventInvalidInput)
	}
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.Participant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.RSVPLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id = ?", models.ChatTargetEvent, id).
			Delete(&models.ChatMessage{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Event{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventNotFound
		}
		return nil
	})
	if txErr != nil {
		if !errors.Is(txErr, ErrEventNotFound) {
			configslog.Log.Error("DeleteEvent transaction failed", zap.Uint("id", id), zap.Error(txErr))
		}
		return txErr
	}
	configslog.SLog.Infof("Etkinlik ve bağlı kayıtları silindi: ID %d", id)
	return nil
}

var _ IEventService = (*EventService)(nil)
