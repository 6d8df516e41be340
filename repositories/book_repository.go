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

// IBookRepository kitap veritabanı işlemleri için arayüz.
type IBookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	FindByID(ctx context.Context, id uint) (*models.Book, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Book, int64, error)
	FindByAuthorID(ctx context.Context, authorID uint) ([]models.Book, error)
	CountByAuthorID(ctx context.Context, authorID uint) (int64, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uint) error
}

// BookRepository IBookRepository arayüzünü uygular.
type BookRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Book]
}

// NewBookRepository yeni bir BookRepository örneği oluşturur.
func NewBookRepository() IBookRepository {
	return NewBookRepositoryTx(configs.GetDB())
}

// NewBookRepositoryTx transaction içinde çalışan örnek oluşturur.
func NewBookRepositoryTx(tx *gorm.DB) IBookRepository {
	base := NewBaseRepository[models.Book](tx)
	base.SetAllowedSortColumns([]string{"title", "id", "created_at"})
	return &BookRepository{db: tx, base: base}
}

func (r *BookRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni kitap ekler.
func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	if book == nil || book.Title == "" || book.AuthorID == 0 {
		return errors.New("kitap başlığı veya yazar bilgisi eksik")
	}
	return r.base.Create(ctx, book)
}

// FindByID kitabı yazarıyla birlikte bulur.
func (r *BookRepository) FindByID(ctx context.Context, id uint) (*models.Book, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Book ID")
	}
	var book models.Book
	err := r.getDB(ctx).Preload("Author").First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("BookRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &book, nil
}

// FindAllPaginated kitapları opsiyonel başlık filtresiyle listeler.
func (r *BookRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Book, int64, error) {
	params.Validate()
	var books []models.Book
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Book{})
	query = addSearch(query, "title", params.Name, true)

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("BookRepository.FindAllPaginated: count error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return books, 0, nil
	}

	err := query.
		Preload("Author").
		Order(r.base.OrderClause(params)).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&books).Error
	if err != nil {
		configslog.Log.Error("BookRepository.FindAllPaginated: DB error", zap.Error(err))
		return nil, totalCount, err
	}
	return books, totalCount, nil
}

// FindByAuthorID yazarın tüm kitaplarını listeler.
func (r *BookRepository) FindByAuthorID(ctx context.Context, authorID uint) ([]models.Book, error) {
	if authorID == 0 {
		return nil, errors.New("geçersiz Author ID")
	}
	var books []models.Book
	err := r.getDB(ctx).Where("author_id = ?", authorID).Order("title asc").Find(&books).Error
	if err != nil {
		configslog.Log.Error("BookRepository.FindByAuthorID: DB error", zap.Uint("authorID", authorID), zap.Error(err))
		return nil, err
	}
	return books, nil
}

// CountByAuthorID yazara ait kitap sayısını döndürür.
func (r *BookRepository) CountByAuthorID(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Book{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// Update kitap kaydını günceller.
func (r *BookRepository) Update(ctx context.Context, book *models.Book) error {
	if book == nil || book.ID == 0 {
		return errors.New("geçersiz kitap")
	}
	return r.base.Update(ctx, book)
}

// Delete kitap kaydını siler.
func (r *BookRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

var _ IBookRepository = (*BookRepository)(nil)
