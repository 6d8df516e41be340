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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Üye servisi hataları.
var (
	ErrMemberNotFound     = errors.New("üye bulunamadı")
	ErrMemberInvalidInput = errors.New("geçersiz üye verisi")
	ErrMemberEmailTaken   = errors.New("bu e-posta ile kayıtlı üye var")
)

// IMemberService üye iş kuralları için arayüz.
type IMemberService interface {
	SignupMember(ctx context.Context, name, email string) (*models.Member, error)
	GetMemberByID(ctx context.Context, id uint) (*models.Member, error)
	GetMemberByWebKey(ctx context.Context, webKey string) (*models.Member, error)
	GetMemberByUserID(ctx context.Context, userID uint) (*models.Member, error)
	GetMembersPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateMember(ctx context.Context, member *models.Member) error
	LinkUser(ctx context.Context, memberID uint, userID *uint) error
	DeleteMember(ctx context.Context, id uint) error
}

// MemberService IMemberService arayüzünü uygular.
type MemberService struct {
	repo repositories.IMemberRepository
}

// NewMemberService yeni bir MemberService örneği oluşturur.
func NewMemberService() IMemberService {
	return &MemberService{repo: repositories.NewMemberRepository()}
}

// SignupMember yeni üye kaydı oluşturur. Her üyeye benzersiz bir web
// anahtarı (UUID) üretilir; bu anahtar oturumsuz işlemlerin kimliğidir.
func (s *MemberService) SignupMember(ctx context.Context, name, email string) (*models.Member, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: ad ve geçerli e-posta zorunludur", ErrMemberInvalidInput)
	}

	if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrMemberEmailTaken
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	member := &models.Member{
		WebKey:     uuid.NewString(),
		Name:       name,
		Email:      email,
		Active:     true,
		HTMLFormat: true,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		configslog.Log.Error("SignupMember failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("Üye kaydedildi: %s (ID: %d)", member.Name, member.ID)
	return member, nil
}

// GetMemberByID üyeyi ID ile getirir.
func (s *MemberService) GetMemberByID(ctx context.Context, id uint) (*models.Member, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// GetMemberByWebKey üyeyi web anahtarıyla getirir ve son görülme zamanını
// günceller. Pasif üye için de bulunamadı döner.
func (s *MemberService) GetMemberByWebKey(ctx context.Context, webKey string) (*models.Member, error) {
	if webKey == "" {
		return nil, ErrMemberNotFound
	}
	member, err := s.repo.FindByWebKey(ctx, webKey)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if !member.Active {
		return nil, ErrMemberNotFound
	}
	if err := s.repo.Touch(ctx, member.ID); err != nil {
		// Son görülme damgası kritik değil; kaydedilemezse yalnızca loglanır.
		configslog.Log.Warn("Üye hit_time güncellenemedi", zap.Uint("memberID", member.ID), zap.Error(err))
	}
	return member, nil
}

// GetMemberByUserID üyeyi bağlı kullanıcı hesabı üzerinden getirir.
func (s *MemberService) GetMemberByUserID(ctx context.Context, userID uint) (*models.Member, error) {
	member, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// GetMembersPaginated üyeleri sayfalayarak getirir.
func (s *MemberService) GetMembersPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	members, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: members,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// UpdateMember üye kaydını günceller. WebKey değiştirilemez.
func (s *MemberService) UpdateMember(ctx context.Context, member *models.Member) error {
	if member == nil || member.ID == 0 || strings.TrimSpace(member.Name) == "" {
		return fmt.Errorf("%w: ID ve ad zorunludur", ErrMemberInvalidInput)
	}
	existing, err := s.GetMemberByID(ctx, member.ID)
	if err != nil {
		return err
	}
	member.WebKey = existing.WebKey
	if err := s.repo.Update(ctx, member); err != nil {
		configslog.Log.Error("UpdateMember failed", zap.Uint("id", member.ID), zap.Error(err))
		return err
	}
	return nil
}

// LinkUser üyeyi bir hesaba bağlar (nil ile bağı koparır).
func (s *MemberService) LinkUser(ctx context.Context, memberID uint, userID *uint) error {
	member, err := s.GetMemberByID(ctx, memberID)
	if err != nil {
		return err
	}
	member.UserID = userID
	return s.repo.Update(ctx, member)
}

// DeleteMember üyeyi bağlı kayıtlarıyla birlikte siler.
func (s *MemberService) DeleteMember(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMemberNotFound
		}
		configslog.Log.Error("DeleteMember failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Üye ve bağlı kayıtları silindi: ID %d", id)
	return nil
}

var _ IMemberService = (*MemberService)(nil)
