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

// Grup servisi hataları.
var (
	ErrGroupNotFound     = errors.New("grup bulunamadı")
	ErrGroupInvalidInput = errors.New("geçersiz grup verisi")
	ErrGroupNoOutOfRange = errors.New("grup numarası türün aralığı dışında")
	ErrGroupNoTaken      = errors.New("grup numarası zaten kullanımda")
)

// IGroupService grup iş kuralları için arayüz.
type IGroupService interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroupByID(ctx context.Context, id uint) (*models.Group, error)
	GetGroupByNo(ctx context.Context, groupNo int) (*models.Group, error)
	GetGroupsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateGroup(ctx context.Context, group *models.Group) error
	DeleteGroup(ctx context.Context, id uint) error

	AddMember(ctx context.Context, groupID, memberID uint) error
	RemoveMember(ctx context.Context, groupID, memberID uint) error
	GetMembershipList(ctx context.Context, groupID uint) ([]repositories.MemberWithMembership, error)
}

// GroupService IGroupService arayüzünü uygular.
type GroupService struct {
	repo repositories.IGroupRepository
}

// NewGroupService yeni bir GroupService örneği oluşturur.
func NewGroupService() IGroupService {
	return &GroupService{repo: repositories.NewGroupRepository()}
}

// validateGroup ortak doğrulama: etiket zorunlu, GroupNo türün aralığında
// olmalı (kulüp 1-999, seçim listesi 1000-1999, hesap bağlantılı 3000+).
func validateGroup(group *models.Group) error {
	if group == nil || strings.TrimSpace(group.Tag) == "" {
		return fmt.Errorf("%w: grup etiketi zorunludur", ErrGroupInvalidInput)
	}
	if !group.ValidNoForType() {
		return ErrGroupNoOutOfRange
	}
	return nil
}

// CreateGroup yeni grup oluşturur; numara benzersizliği ve aralık kontrolü yapılır.
func (s *GroupService) CreateGroup(ctx context.Context, group *models.Group) error {
	if err := validateGroup(group); err != nil {
		return err
	}
	if existing, err := s.repo.FindByGroupNo(ctx, group.GroupNo); err == nil && existing != nil {
		return ErrGroupNoTaken
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	group.Tag = strings.TrimSpace(group.Tag)
	if err := s.repo.Create(ctx, group); err != nil {
		configslog.Log.Error("CreateGroup failed", zap.Int("groupNo", group.GroupNo), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Grup oluşturuldu: #%d %s", group.GroupNo, group.Tag)
	return nil
}

// GetGroupByID grubu ID ile getirir.
func (s *GroupService) GetGroupByID(ctx context.Context, id uint) (*models.Group, error) {
	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

// GetGroupByNo grubu numarasıyla getirir.
func (s *GroupService) GetGroupByNo(ctx context.Context, groupNo int) (*models.Group, error) {
	group, err := s.repo.FindByGroupNo(ctx, groupNo)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

// GetGroupsPaginated grupları sayfalayarak getirir.
func (s *GroupService) GetGroupsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	groups, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: groups,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// UpdateGroup grup kaydını günceller; numara değişiyorsa benzersizlik aranır.
func (s *GroupService) UpdateGroup(ctx context.Context, group *models.Group) error {
	if group == nil || group.ID == 0 {
		return fmt.Errorf("%w: geçersiz ID", ErrGroupInvalidInput)
	}
	if err := validateGroup(group); err != nil {
		return err
	}
	if existing, err := s.repo.FindByGroupNo(ctx, group.GroupNo); err == nil && existing.ID != group.ID {
		return ErrGroupNoTaken
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if err := s.repo.Update(ctx, group); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrGroupNotFound
		}
		configslog.Log.Error("UpdateGroup failed", zap.Uint("id", group.ID), zap.Error(err))
		return err
	}
	return nil
}

// DeleteGroup grubu ve üyeliklerini siler.
func (s *GroupService) DeleteGroup(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrGroupNotFound
		}
		configslog.Log.Error("DeleteGroup failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Grup silindi: ID %d", id)
	return nil
}

// AddMember üyeyi gruba ekler.
func (s *GroupService) AddMember(ctx context.Context, groupID, memberID uint) error {
	if groupID == 0 || memberID == 0 {
		return fmt.Errorf("%w: grup ve üye ID zorunludur", ErrGroupInvalidInput)
	}
	return s.repo.AddMember(ctx, groupID, memberID)
}

// RemoveMember üyeyi gruptan çıkarır.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, memberID uint) error {
	if groupID == 0 || memberID == 0 {
		return fmt.Errorf("%w: grup ve üye ID zorunludur", ErrGroupInvalidInput)
	}
	return s.repo.RemoveMember(ctx, groupID, memberID)
}

// GetMembershipList tüm aktif üyeleri gruba üyelik bilgisiyle listeler
// (grup yönetim ekranının işaretli listesi).
func (s *GroupService) GetMembershipList(ctx context.Context, groupID uint) ([]repositories.MemberWithMembership, error) {
	if _, err := s.GetGroupByID(ctx, groupID); err != nil {
		return nil, err
	}
	return s.repo.ListAllWithMembership(ctx, groupID)
}

var _ IGroupService = (*GroupService)(nil)
