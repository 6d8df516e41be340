package repositories

import (
	"context"
	"errors"

	"kitapkulubu.link/configs"
	"kitapkulubu.link/models"
	"kitapkulubu.link/pkg/queryparams"

	"gorm.io/gorm"
)

// IPlaceRepository mekan veritabanı işlemleri için arayüz.
type IPlaceRepository interface {
	Create(ctx context.Context, place *models.Place) error
	FindByID(ctx context.Context, id uint) (*models.Place, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Place, int64, error)
	Update(ctx context.Context, place *models.Place) error
	Delete(ctx context.Context, id uint) error
}

// PlaceRepository IPlaceRepository arayüzünü uygular. Mekana özel sorgu
// gerekmediği için neredeyse tamamen generik base'e dayanır.
type PlaceRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Place]
}

// NewPlaceRepository yeni bir PlaceRepository örneği oluşturur.
func NewPlaceRepository() IPlaceRepository {
	return NewPlaceRepositoryTx(configs.GetDB())
}

// NewPlaceRepositoryTx transaction içinde çalışan örnek oluşturur.
func NewPlaceRepositoryTx(tx *gorm.DB) IPlaceRepository {
	base := NewBaseRepository[models.Place](tx)
	base.SetAllowedSortColumns([]string{"name", "id", "created_at"})
	return &PlaceRepository{db: tx, base: base}
}

func (r *PlaceRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni mekan ekler.
func (r *PlaceRepository) Create(ctx context.Context, place *models.Place) error {
	if place == nil || place.Name == "" {
		return errors.New("mekan adı boş olamaz")
	}
	return r.base.Create(ctx, place)
}

// FindByID mekanı ID ile bulur.
func (r *PlaceRepository) FindByID(ctx context.Context, id uint) (*models.Place, error) {
	return r.base.FindByID(ctx, id)
}

// FindAllPaginated mekanları opsiyonel isim filtresiyle listeler.
func (r *PlaceRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Place, int64, error) {
	params.Validate()
	var places []models.Place
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Place{})
	query = addSearch(query, "name", params.Name, true)

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return places, 0, nil
	}

	err := query.
		Order(r.base.OrderClause(params)).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&places).Error
	return places, totalCount, err
}

// Update mekan kaydını günceller.
func (r *PlaceRepository) Update(ctx context.Context, place *models.Place) error {
	if place == nil || place.ID == 0 {
		return errors.New("geçersiz mekan")
	}
	return r.base.Update(ctx, place)
}

// Delete mekan kaydını siler.
func (r *PlaceRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

var _ IPlaceRepository = (*PlaceRepository)(nil)
