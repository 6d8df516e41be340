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

// Yazar servisi hataları.
var (
	ErrAuthorNotFound     = errors.New("yazar bulunamadı")
	ErrAuthorInvalidInput = errors.New("geçersiz yazar verisi")
	ErrAuthorHasBooks     = errors.New("yazara bağlı kitaplar varken silinemez")
)

// IAuthorService yazar iş kuralları için arayüz.
type IAuthorService interface {
	CreateAuthor(ctx context.Context, author *models.Author) error
	GetAuthorByID(ctx context.Context, id uint) (*models.Author, error)
	GetAuthorsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateAuthor(ctx context.Context, author *models.Author) error
	DeleteAuthor(ctx context.Context, id uint) error
}

// AuthorService IAuthorService arayüzünü uygular.
type AuthorService struct {
	repo     repositories.IAuthorRepository
	bookRepo repositories.IBookRepository
}

// NewAuthorService yeni bir AuthorService örneği oluşturur.
func NewAuthorService() IAuthorService {
	return &AuthorService{
		repo:     repositories.NewAuthorRepository(),
		bookRepo: repositories.NewBookRepository(),
	}
}

// CreateAuthor yeni yazar oluşturur.
func (s *AuthorService) CreateAuthor(ctx context.Context, author *models.Author) error {
	if author == nil || strings.TrimSpace(author.Name) == "" {
		return fmt.Errorf("%w: yazar adı zorunludur", ErrAuthorInvalidInput)
	}
	author.Name = strings.TrimSpace(author.Name)
	if err := s.repo.Create(ctx, author); err != nil {
		configslog.Log.Error("CreateAuthor failed", zap.String("name", author.Name), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Yazar oluşturuldu: %s (ID: %d)", author.Name, author.ID)
	return nil
}

// GetAuthorByID yazarı ID ile getirir.
func (s *AuthorService) GetAuthorByID(ctx context.Context, id uint) (*models.Author, error) {
	author, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}
	return author, nil
}

// GetAuthorsPaginated yazarları sayfalayarak getirir.
func (s *AuthorService) GetAuthorsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	authors, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: authors,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// UpdateAuthor yazar kaydını günceller.
func (s *AuthorService) UpdateAuthor(ctx context.Context, author *models.Author) error {
	if author == nil || author.ID == 0 || strings.TrimSpace(author.Name) == "" {
		return fmt.Errorf("%w: ID ve yazar adı zorunludur", ErrAuthorInvalidInput)
	}
	if err := s.repo.Update(ctx, author); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAuthorNotFound
		}
		configslog.Log.Error("UpdateAuthor failed", zap.Uint("id", author.ID), zap.Error(err))
		return err
	}
	return nil
}

// DeleteAuthor yazarı siler. Yazara bağlı kitap varsa silme reddedilir.
func (s *AuthorService) DeleteAuthor(ctx context.Context, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: geçersiz ID", ErrAuthorInvalidInput)
	}
	bookCount, err := s.bookRepo.CountByAuthorID(ctx, id)
	if err != nil {
		return err
	}
	if bookCount > 0 {
		return ErrAuthorHasBooks
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAuthorNotFound
		}
		configslog.Log.Error("DeleteAuthor failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Yazar silindi: ID %d", id)
	return nil
}

var _ IAuthorService = (*AuthorService)(nil)
