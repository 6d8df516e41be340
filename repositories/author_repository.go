package repositories

import (
	"context"
	"errors"

	"kitapkulubu.link/configs"
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"
	"kitapkulubu.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IAuthorRepository yazar veritabanı işlemleri için arayüz.
type IAuthorRepository interface {
	Create(ctx context.Context, author *models.Author) error
	FindByID(ctx context.Context, id uint) (*models.Author, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Author, int64, error)
	Update(ctx context.Context, author *models.Author) error
	Delete(ctx context.Context, id uint) error
}

// AuthorRepository IAuthorRepository arayüzünü uygular.
type AuthorRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Author]
}

// NewAuthorRepository yeni bir AuthorRepository örneği oluşturur.
func NewAuthorRepository() IAuthorRepository {
	return NewAuthorRepositoryTx(configs.GetDB())
}

// NewAuthorRepositoryTx transaction içinde çalışan örnek oluşturur.
func NewAuthorRepositoryTx(tx *gorm.DB) IAuthorRepository {
	base := NewBaseRepository[models.Author](tx)
	base.SetAllowedSortColumns([]string{"name", "id", "created_at"})
	return &AuthorRepository{db: tx, base: base}
}

func (r *AuthorRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni yazar ekler.
func (r *AuthorRepository) Create(ctx context.Context, author *models.Author) error {
	if author == nil || author.Name == "" {
		return errors.New("yazar adı boş olamaz")
	}
	return r.base.Create(ctx, author)
}

// FindByID yazarı ID ile bulur.
func (r *AuthorRepository) FindByID(ctx context.Context, id uint) (*models.Author, error) {
	return r.base.FindByID(ctx, id)
}

// FindAllPaginated yazarları opsiyonel isim filtresiyle sayfalayarak listeler.
// İsim filtresi boşsa tüm yazarlar döner.
func (r *AuthorRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Author, int64, error) {
	params.Validate()
	var authors []models.Author
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Author{})
	query = addSearch(query, "name", params.Name, true)

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("AuthorRepository.FindAllPaginated: count error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return authors, 0, nil
	}

	err := query.
		Order(r.base.OrderClause(params)).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&authors).Error
	if err != nil {
		configslog.Log.Error("AuthorRepository.FindAllPaginated: DB error", zap.Error(err))
		return nil, totalCount, err
	}
	return authors, totalCount, nil
}

// Update yazar kaydını günceller.
func (r *AuthorRepository) Update(ctx context.Context, author *models.Author) error {
	if author == nil || author.ID == 0 {
		return errors.New("geçersiz yazar")
	}
	return r.base.Update(ctx, author)
}

// Delete yazar kaydını siler.
func (r *AuthorRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

var _ IAuthorRepository = (*AuthorRepository)(nil)
