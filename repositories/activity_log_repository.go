package repositories

import (
	"context"
	"errors"
	"time"

	"kitapkulubu.link/configs"
	"kitapkulubu.link/models"
	"kitapkulubu.link/pkg/queryparams"

	"gorm.io/gorm"
)

// LogFilter etkinlik günlüğü listeleme filtresi. Boş alanlar filtre eklemez;
// tüm alanlar boşsa günlüğün tamamı listelenir.
type LogFilter struct {
	Type   string
	Param1 string
	Param2 string
}

// IActivityLogRepository salt-ekleme etkinlik günlüğü için arayüz.
type IActivityLogRepository interface {
	Append(ctx context.Context, entry *models.ActivityLog) error
	FindFiltered(ctx context.Context, filter LogFilter, params queryparams.ListParams) ([]models.ActivityLog, int64, error)
}

// ActivityLogRepository IActivityLogRepository arayüzünü uygular.
type ActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository yeni bir ActivityLogRepository örneği oluşturur.
func NewActivityLogRepository() IActivityLogRepository {
	return &ActivityLogRepository{db: configs.GetDB()}
}

// NewActivityLogRepositoryTx transaction içinde çalışan örnek oluşturur.
func NewActivityLogRepositoryTx(tx *gorm.DB) IActivityLogRepository {
	return &ActivityLogRepository{db: tx}
}

func (r *ActivityLogRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Append günlüğe kayıt ekler.
func (r *ActivityLogRepository) Append(ctx context.Context, entry *models.ActivityLog) error {
	if entry == nil || entry.Type == "" {
		return errors.New("günlük kaydı türü boş olamaz")
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}
	return r.getDB(ctx).Create(entry).Error
}

// FindFiltered günlüğü opsiyonel tür/seçici filtreleriyle, yeni kayıttan
// eskiye sayfalayarak listeler.
func (r *ActivityLogRepository) FindFiltered(ctx context.Context, filter LogFilter, params queryparams.ListParams) ([]models.ActivityLog, int64, error) {
	params.Validate()
	var entries []models.ActivityLog
	var totalCount int64

	query := r.getDB(ctx).Model(&models.ActivityLog{})
	query = addSearch(query, "type", filter.Type, false)
	query = addSearch(query, "param1", filter.Param1, false)
	query = addSearch(query, "param2", filter.Param2, false)

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return entries, 0, nil
	}

	err := query.
		Order("recorded_at desc").
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&entries).Error
	return entries, totalCount, err
}

var _ IActivityLogRepository = (*ActivityLogRepository)(nil)
