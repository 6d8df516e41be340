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

// Kampanya servisi hataları.
var (
	ErrCampaignNotFound     = errors.New("kampanya bulunamadı")
	ErrCampaignInvalidInput = errors.New("geçersiz kampanya verisi")
)

// ICampaignService kampanya iş kuralları için arayüz.
type ICampaignService interface {
	CreateCampaign(ctx context.Context, campaign *models.Campaign) error
	GetCampaignByID(ctx context.Context, id uint) (*models.Campaign, error)
	GetCampaignsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateCampaign(ctx context.Context, campaign *models.Campaign) error
	DeleteCampaign(ctx context.Context, id uint) error

	AddRecipient(ctx context.Context, campaignID, memberID uint) error
	RemoveRecipient(ctx context.Context, campaignID, memberID uint) error
	ListRecipients(ctx context.Context, campaignID uint) ([]repositories.RecipientWithStatus, error)
	TargetAllActive(ctx context.Context, campaignID uint) (int, error)
	TargetGroup(ctx context.Context, campaignID, groupID uint) (int, error)
	ClearSent(ctx context.Context, campaignID uint) error
}

// CampaignService ICampaignService arayüzünü uygular.
type CampaignService struct {
	repo       repositories.ICampaignRepository
	memberRepo repositories.IMemberRepository
	groupRepo  repositories.IGroupRepository
}

// NewCampaignService yeni bir CampaignService örneği oluşturur.
func NewCampaignService() ICampaignService {
	return &CampaignService{
		repo:       repositories.NewCampaignRepository(),
		memberRepo: repositories.NewMemberRepository(),
		groupRepo:  repositories.NewGroupRepository(),
	}
}

// CreateCampaign yeni kampanya oluşturur.
func (s *CampaignService) CreateCampaign(ctx context.Context, campaign *models.Campaign) error {
	if campaign == nil || strings.TrimSpace(campaign.Subject) == "" {
		return fmt.Errorf("%w: konu zorunludur", ErrCampaignInvalidInput)
	}
	if strings.TrimSpace(campaign.Body) == "" {
		return fmt.Errorf("%w: gövde zorunludur", ErrCampaignInvalidInput)
	}
	if err := s.repo.Create(ctx, campaign); err != nil {
		configslog.Log.Error("CreateCampaign failed", zap.String("subject", campaign.Subject), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Kampanya oluşturuldu: %s (ID %d)", campaign.Subject, campaign.ID)
	return nil
}

// GetCampaignByID kampanyayı ID ile getirir.
func (s *CampaignService) GetCampaignByID(ctx context.Context, id uint) (*models.Campaign, error) {
	campaign, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return campaign, nil
}

// GetCampaignsPaginated kampanyaları sayfalayarak getirir.
func (s *CampaignService) GetCampaignsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	campaigns, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: campaigns,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// UpdateCampaign kampanya kaydını günceller.
func (s *CampaignService) UpdateCampaign(ctx context.Context, campaign *models.Campaign) error {
	if campaign == nil || campaign.ID == 0 {
		return fmt.Errorf("%w: geçersiz ID", ErrCampaignInvalidInput)
	}
	if err := s.repo.Update(ctx, campaign); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}
	return nil
}

// DeleteCampaign kampanyayı ve alıcı kayıtlarını siler.
func (s *CampaignService) DeleteCampaign(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCampaignNotFound
		}
		configslog.Log.Error("DeleteCampaign failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Kampanya silindi: ID %d", id)
	return nil
}

// AddRecipient üyeyi kampanyaya alıcı olarak ekler.
func (s *CampaignService) AddRecipient(ctx context.Context, campaignID, memberID uint) error {
	if _, err := s.GetCampaignByID(ctx, campaignID); err != nil {
		return err
	}
	return s.repo.AddRecipient(ctx, campaignID, memberID)
}

// RemoveRecipient alıcıyı kampanyadan çıkarır.
func (s *CampaignService) RemoveRecipient(ctx context.Context, campaignID, memberID uint) error {
	return s.repo.RemoveRecipient(ctx, campaignID, memberID)
}

// ListRecipients kampanyanın alıcılarını gönderim durumuyla listeler.
func (s *CampaignService) ListRecipients(ctx context.Context, campaignID uint) ([]repositories.RecipientWithStatus, error) {
	return s.repo.ListRecipients(ctx, campaignID)
}

// TargetAllActive e-posta almayı kapatmamış tüm aktif üyeleri alıcı olarak
// ekler ve eklenen üye sayısını döndürür.
func (s *CampaignService) TargetAllActive(ctx context.Context, campaignID uint) (int, error) {
	if _, err := s.GetCampaignByID(ctx, campaignID); err != nil {
		return 0, err
	}
	members, err := s.memberRepo.FindActive(ctx)
	if err != nil {
		return 0, err
	}
	added := 0
	for i := range members {
		if err := s.repo.AddRecipient(ctx, campaignID, members[i].ID); err != nil {
			configslog.Log.Error("TargetAllActive: alıcı eklenemedi",
				zap.Uint("campaignID", campaignID), zap.Uint("memberID", members[i].ID), zap.Error(err))
			return added, err
		}
		added++
	}
	configslog.SLog.Infof("Kampanya %d için %d aktif üye hedeflendi", campaignID, added)
	return added, nil
}

// TargetGroup grubun üyelerini alıcı olarak ekler; e-posta almayı kapatmış
// ya da pasif üyeler atlanır.
func (s *CampaignService) TargetGroup(ctx context.Context, campaignID, groupID uint) (int, error) {
	if _, err := s.GetCampaignByID(ctx, campaignID); err != nil {
		return 0, err
	}
	rows, err := s.groupRepo.ListAllWithMembership(ctx, groupID)
	if err != nil {
		return 0, err
	}
	added := 0
	for i := range rows {
		if !rows[i].InGroup() {
			continue
		}
		if !rows[i].Active || rows[i].NoEmail {
			continue
		}
		if err := s.repo.AddRecipient(ctx, campaignID, rows[i].ID); err != nil {
			return added, err
		}
		added++
	}
	configslog.SLog.Infof("Kampanya %d için grup %d üzerinden %d üye hedeflendi", campaignID, groupID, added)
	return added, nil
}

// ClearSent gönderim damgalarını temizleyip kampanyayı yeniden
// gönderilebilir hale getirir.
func (s *CampaignService) ClearSent(ctx context.Context, campaignID uint) error {
	if _, err := s.GetCampaignByID(ctx, campaignID); err != nil {
		return err
	}
	return s.repo.ClearSent(ctx, campaignID)
}

var _ ICampaignService = (*CampaignService)(nil)
