package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"
	"kitapkulubu.link/pkg/queryparams"
	"kitapkulubu.link/repositories"

	"go.uber.org/zap"
)

// Kitap servisi hataları.
var (
	ErrBookNotFound     = errors.New("kitap bulunamadı")
	ErrBookInvalidInput = errors.New("geçersiz kitap verisi")
)

// IBookService kitap iş kuralları için arayüz.
type IBookService interface {
	CreateBook(ctx context.Context, book *models.Book) error
	GetBookByID(ctx context.Context, id uint) (*models.Book, error)
	GetBooksPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetBooksByAuthor(ctx context.Context, authorID uint) ([]models.Book, error)
	GetCountForAuthor(ctx context.Context, authorID uint) (int64, error)
	UpdateBook(ctx context.Context, book *models.Book) error
	DeleteBook(ctx context.Context, id uint) error
}

// BookService IBookService arayüzünü uygular.
type BookService struct {
	repo       repositories.IBookRepository
	authorRepo repositories.IAuthorRepository
}

// NewBookService yeni bir BookService örneği oluşturur.
func NewBookService() IBookService {
	return &BookService{
		repo:       repositories.NewBookRepository(),
		authorRepo: repositories.NewAuthorRepository(),
	}
}

// CreateBook yeni kitap oluşturur; yazarın varlığı doğrulanır.
func (s *BookService) CreateBook(ctx context.Context, book *models.Book) error {
	if book == nil || strings.TrimSpace(book.Title) == "" || book.AuthorID == 0 {
		return fmt.Errorf("%w: başlık ve yazar zorunludur", ErrBookInvalidInput)
	}
	if _, err := s.authorRepo.FindByID(ctx, book.AuthorID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAuthorNotFound
		}
		return err
	}
	book.Title = strings.TrimSpace(book.Title)
	if err := s.repo.Create(ctx, book); err != nil {
		configslog.Log.Error("CreateBook failed", zap.String("title", book.Title), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Kitap oluşturuldu: %s (ID: %d)", book.Title, book.ID)
	return nil
}

// GetBookByID kitabı yazarıyla birlikte getirir.
func (s *BookService) GetBookByID(ctx context.Context, id uint) (*models.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// GetBooksPaginated kitapları sayfalayarak getirir.
func (s *BookService) GetBooksPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	books, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: books,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// GetBooksByAuthor yazarın kitaplarını getirir.
func (s *BookService) GetBooksByAuthor(ctx context.Context, authorID uint) ([]models.Book, error) {
	return s.repo.FindByAuthorID(ctx, authorID)
}

// GetCountForAuthor yazara ait kitap sayısını getirir.
func (s *BookService) GetCountForAuthor(ctx context.Context, authorID uint) (int64, error) {
	if authorID == 0 {
		return 0, fmt.Errorf("%w: geçersiz yazar ID", ErrBookInvalidInput)
	}
	return s.repo.CountByAuthorID(ctx, authorID)
}

// UpdateBook kitap kaydını günceller.
func (s *BookService) UpdateBook(ctx context.Context, book *models.Book) error {
	if book == nil || book.ID == 0 || strings.TrimSpace(book.Title) == "" {
		return fmt.Errorf("%w: ID ve başlık zorunludur", ErrBookInvalidInput)
	}
	if err := s.repo.Update(ctx, book); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBookNotFound
		}
		configslog.Log.Error("UpdateBook failed", zap.Uint("id", book.ID), zap.Error(err))
		return err
	}
	return nil
}

// DeleteBook kitap kaydını siler.
func (s *BookService) DeleteBook(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBookNotFound
		}
		configslog.Log.Error("DeleteBook failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Kitap silindi: ID %d", id)
	return nil
}

var _ IBookService = (*BookService)(nil)
