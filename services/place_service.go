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

// Mekan servisi hataları.
var (
	ErrPlaceNotFound     = errors.New("mekan bulunamadı")
	ErrPlaceInvalidInput = errors.New("geçersiz mekan verisi")
)

// IPlaceService mekan iş kuralları için arayüz.
type IPlaceService interface {
	CreatePlace(ctx context.Context, place *models.Place) error
	GetPlaceByID(ctx context.Context, id uint) (*models.Place, error)
	GetPlacesPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdatePlace(ctx context.Context, place *models.Place) error
	DeletePlace(ctx context.Context, id uint) error
}

// PlaceService IPlaceService arayüzünü uygular.
type PlaceService struct {
	repo repositories.IPlaceRepository
}

// NewPlaceService yeni bir PlaceService örneği oluşturur.
func NewPlaceService() IPlaceService {
	return &PlaceService{repo: repositories.NewPlaceRepository()}
}

// CreatePlace yeni mekan oluşturur.
func (s *PlaceService) CreatePlace(ctx context.Context, place *models.Place) error {
	if place == nil || strings.TrimSpace(place.Name) == "" {
		return fmt.Errorf("%w: mekan adı zorunludur", ErrPlaceInvalidInput)
	}
	place.Name = strings.TrimSpace(place.Name)
	if err := s.repo.Create(ctx, place); err != nil {
		configslog.Log.Error("CreatePlace failed", zap.String("name", place.Name), zap.Error(err))
		return err
	}
	return nil
}

// GetPlaceByID mekanı ID ile getirir.
func (s *PlaceService) GetPlaceByID(ctx context.Context, id uint) (*models.Place, error) {
	place, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}
	return place, nil
}

// GetPlacesPaginated mekanları sayfalayarak getirir.
func (s *PlaceService) GetPlacesPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	places, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: places,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// UpdatePlace mekan kaydını günceller.
func (s *PlaceService) UpdatePlace(ctx context.Context, place *models.Place) error {
	if place == nil || place.ID == 0 || strings.TrimSpace(place.Name) == "" {
		return fmt.Errorf("%w: ID ve mekan adı zorunludur", ErrPlaceInvalidInput)
	}
	if err := s.repo.Update(ctx, place); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPlaceNotFound
		}
		return err
	}
	return nil
}

// DeletePlace mekan kaydını siler.
func (s *PlaceService) DeletePlace(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPlaceNotFound
		}
		return err
	}
	return nil
}

var _ IPlaceService = (*PlaceService)(nil)
