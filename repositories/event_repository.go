package repositories

import (
	"context"
	"errors"
	"time"

	"kitapkulubu.link/configs"
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"
	"kitapkulubu.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IEventRepository etkinlik veritabanı işlemleri için arayüz.
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindByEventKey(ctx context.Context, eventKey string) (*models.Event, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Event, int64, error)
	FindUpcoming(ctx context.Context, from time.Time, includePrivate bool) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	SetRSVPAttend(ctx context.Context, eventID uint, count int) error
	Delete(ctx context.Context, id uint) error
}

// EventRepository IEventRepository arayüzünü uygular.
type EventRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Event]
}

// NewEventRepository yeni bir EventRepository örneği oluşturur.
func NewEventRepository() IEventRepository {
	return NewEventRepositoryTx(configs.GetDB())
}

// NewEventRepositoryTx transaction içinde çalışan örnek oluşturur.
func NewEventRepositoryTx(tx *gorm.DB) IEventRepository {
	base := NewBaseRepository[models.Event](tx)
	base.SetAllowedSortColumns([]string{"starts_at", "event_key", "id", "created_at"})
	return &EventRepository{db: tx, base: base}
}

func (r *EventRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni etkinlik ekler.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event == nil || event.EventKey == "" || event.Summary == "" {
		return errors.New("etkinlik anahtarı veya özeti eksik")
	}
	return r.base.Create(ctx, event)
}

// FindByID etkinliği ID ile bulur.
func (r *EventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Event ID")
	}
	var event models.Event
	err := r.getDB(ctx).Preload("Organizer").First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("EventRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

// FindByEventKey etkinliği dışa dönük anahtarıyla bulur.
func (r *EventRepository) FindByEventKey(ctx context.Context, eventKey string) (*models.Event, error) {
	if eventKey == "" {
		return nil, errors.New("etkinlik anahtarı boş olamaz")
	}
	var event models.Event
	err := r.getDB(ctx).Preload("Organizer").Where("event_key = ?", eventKey).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("EventRepository.FindByEventKey: DB error", zap.String("eventKey", eventKey), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

// FindAllPaginated etkinlikleri opsiyonel özet filtresiyle listeler.
func (r *EventRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Event, int64, error) {
	params.Validate()
	var events []models.Event
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Event{})
	query = addSearch(query, "summary", params.Name, true)

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return events, 0, nil
	}

	err := query.
		Preload("Organizer").
		Order(r.base.OrderClause(params)).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&events).Error
	return events, totalCount, err
}

// FindUpcoming başlangıcı verilen andan sonra olan etkinlikleri listeler.
func (r *EventRepository) FindUpcoming(ctx context.Context, from time.Time, includePrivate bool) ([]models.Event, error) {
	query := r.getDB(ctx).Where("starts_at >= ?", from)
	if !includePrivate {
		query = query.Where("is_private = ?", false)
	}
	var events []models.Event
	err := query.Order("starts_at asc").Find(&events).Error
	return events, err
}

// Update etkinlik kaydını günceller.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	if event == nil || event.ID == 0 {
		return errors.New("geçersiz etkinlik")
	}
	return r.base.Update(ctx, event)
}

// SetRSVPAttend katılımcı sayacını tek sütun olarak yazar (RSVP servisinin
// transaction'ları içinden çağrılır).
func (r *EventRepository) SetRSVPAttend(ctx context.Context, eventID uint, count int) error {
	if eventID == 0 {
		return errors.New("geçersiz Event ID")
	}
	return r.getDB(ctx).Model(&models.Event{}).
		Where("id = ?", eventID).
		UpdateColumn("rsvp_attend", count).Error
}

// Delete etkinlik kaydını siler. Bağlı kayıtların silinmesi servis
// katmanındaki transaction'dadır.
func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

var _ IEventRepository = (*EventRepository)(nil)
