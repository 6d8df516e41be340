package repositories

import (
	"context"
	"errors"

	"kitapkulubu.link/pkg/queryparams"

	"gorm.io/gorm"
)

// IBaseRepository entity bağımsız ortak CRUD işlemleri. Entity'ye özel
// repository'ler bunu gömerek yalnızca kendi sorgularını ekler.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]T, int64, error)
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// BaseRepository IBaseRepository'nin GORM implementasyonu.
type BaseRepository[T any] struct {
	db                 *gorm.DB
	allowedSortColumns map[string]bool
	defaultSortColumn  string
}

// NewBaseRepository yeni bir generik repository oluşturur.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{
		db:                 db,
		allowedSortColumns: map[string]bool{"id": true, "created_at": true},
		defaultSortColumn:  "created_at",
	}
}

// SetAllowedSortColumns sıralamaya izin verilen sütunları tanımlar
// (SQL enjeksiyonuna karşı beyaz liste).
func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	r.allowedSortColumns = make(map[string]bool, len(columns))
	for _, c := range columns {
		r.allowedSortColumns[c] = true
	}
	if len(columns) > 0 {
		r.defaultSortColumn = columns[0]
	}
}

func (r *BaseRepository[T]) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// OrderClause beyaz listeden geçen sıralama ifadesini üretir.
func (r *BaseRepository[T]) OrderClause(params queryparams.ListParams) string {
	column := r.defaultSortColumn
	if r.allowedSortColumns[params.SortBy] {
		column = params.SortBy
	}
	return column + " " + params.OrderBy
}

// Create yeni kayıt ekler.
func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("nil entity oluşturulamaz")
	}
	return r.getDB(ctx).Create(entity).Error
}

// FindByID kaydı birincil anahtarla bulur.
func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	if id == 0 {
		return nil, errors.New("geçersiz ID")
	}
	var entity T
	err := r.getDB(ctx).First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindAllPaginated kayıtları sayfalayarak listeler.
func (r *BaseRepository[T]) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]T, int64, error) {
	params.Validate()
	var entities []T
	var totalCount int64

	var model T
	query := r.getDB(ctx).Model(&model)
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return entities, 0, nil
	}

	err := query.
		Order(r.OrderClause(params)).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&entities).Error
	return entities, totalCount, err
}

// Update kaydın tüm alanlarını günceller.
func (r *BaseRepository[T]) Update(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("nil entity güncellenemez")
	}
	return r.getDB(ctx).Save(entity).Error
}

// Delete kaydı siler (BaseModel varsa soft delete).
func (r *BaseRepository[T]) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("geçersiz ID")
	}
	var model T
	result := r.getDB(ctx).Delete(&model, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count toplam kayıt sayısını döndürür.
func (r *BaseRepository[T]) Count(ctx context.Context) (int64, error) {
	var model T
	var count int64
	err := r.getDB(ctx).Model(&model).Count(&count).Error
	return count, err
}
