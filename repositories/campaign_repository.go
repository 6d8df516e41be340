package repositories

import (
	"context"
	"errors"
	"time"

	"kitapkulubu.link/configs"
	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"
	"kitapkulubu.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecipientWithStatus alıcıyı üye ve gönderim durumuyla birlikte taşır.
type RecipientWithStatus struct {
	models.CampaignRecipient
	MemberName  string
	MemberEmail string
}

// IsEmailSent alıcıya gönderim yapılıp yapılmadığını söyler.
func (r *RecipientWithStatus) IsEmailSent() bool {
	return r.EmailSent != nil
}

// ICampaignRepository kampanya ve alıcı veritabanı işlemleri için arayüz.
type ICampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	FindByID(ctx context.Context, id uint) (*models.Campaign, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Campaign, int64, error)
	Update(ctx context.Context, campaign *models.Campaign) error
	Delete(ctx context.Context, id uint) error

	AddRecipient(ctx context.Context, campaignID, memberID uint) error
	RemoveRecipient(ctx context.Context, campaignID, memberID uint) error
	ListRecipients(ctx context.Context, campaignID uint) ([]RecipientWithStatus, error)
	ListUnsent(ctx context.Context, campaignID uint) ([]models.CampaignRecipient, error)
	MarkSent(ctx context.Context, campaignID, memberID uint, at time.Time) error
	ClearSent(ctx context.Context, campaignID uint) error
}

// CampaignRepository ICampaignRepository arayüzünü uygular.
type CampaignRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Campaign]
}

// NewCampaignRepository yeni bir CampaignRepository örneği oluşturur.
func NewCampaignRepository() ICampaignRepository {
	return NewCampaignRepositoryTx(configs.GetDB())
}

// NewCampaignRepositoryTx transaction içinde çalışan örnek oluşturur.
func NewCampaignRepositoryTx(tx *gorm.DB) ICampaignRepository {
	base := NewBaseRepository[models.Campaign](tx)
	base.SetAllowedSortColumns([]string{"created_at", "subject", "id"})
	return &CampaignRepository{db: tx, base: base}
}

func (r *CampaignRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni kampanya ekler.
func (r *CampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	if campaign == nil || campaign.Subject == "" {
		return errors.New("kampanya konusu boş olamaz")
	}
	return r.base.Create(ctx, campaign)
}

// FindByID kampanyayı yazarıyla birlikte bulur.
func (r *CampaignRepository) FindByID(ctx context.Context, id uint) (*models.Campaign, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Campaign ID")
	}
	var campaign models.Campaign
	err := r.getDB(ctx).Preload("Author").First(&campaign, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("CampaignRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &campaign, nil
}

// FindAllPaginated kampanyaları opsiyonel konu filtresiyle listeler.
func (r *CampaignRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Campaign, int64, error) {
	params.Validate()
	var campaigns []models.Campaign
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Campaign{})
	query = addSearch(query, "subject", params.Name, true)

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return campaigns, 0, nil
	}

	err := query.
		Preload("Author").
		Order(r.base.OrderClause(params)).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&campaigns).Error
	return campaigns, totalCount, err
}

// Update kampanya kaydını günceller.
func (r *CampaignRepository) Update(ctx context.Context, campaign *models.Campaign) error {
	if campaign == nil || campaign.ID == 0 {
		return errors.New("geçersiz kampanya")
	}
	return r.base.Update(ctx, campaign)
}

// Delete kampanyayı ve alıcı kayıtlarını tek transaction içinde siler.
func (r *CampaignRepository) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("geçersiz Campaign ID")
	}
	db := r.getDB(ctx)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campaign_id = ?", id).Delete(&models.CampaignRecipient{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Campaign{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// AddRecipient üyeyi kampanyaya alıcı olarak ekler; zaten ekliyse geçer.
func (r *CampaignRepository) AddRecipient(ctx context.Context, campaignID, memberID uint) error {
	if campaignID == 0 || memberID == 0 {
		return errors.New("geçersiz kampanya veya üye ID")
	}
	recipient := models.CampaignRecipient{CampaignID: campaignID, MemberID: memberID}
	return r.getDB(ctx).
		Where("campaign_id = ? AND member_id = ?", campaignID, memberID).
		FirstOrCreate(&recipient).Error
}

// RemoveRecipient alıcıyı kampanyadan çıkarır.
func (r *CampaignRepository) RemoveRecipient(ctx context.Context, campaignID, memberID uint) error {
	if campaignID == 0 || memberID == 0 {
		return errors.New("geçersiz kampanya veya üye ID")
	}
	return r.getDB(ctx).
		Where("campaign_id = ? AND member_id = ?", campaignID, memberID).
		Delete(&models.CampaignRecipient{}).Error
}

// ListRecipients kampanyanın alıcılarını üye adı/e-postasıyla listeler.
func (r *CampaignRepository) ListRecipients(ctx context.Context, campaignID uint) ([]RecipientWithStatus, error) {
	if campaignID == 0 {
		return nil, errors.New("geçersiz Campaign ID")
	}
	var rows []RecipientWithStatus
	err := r.getDB(ctx).Model(&models.CampaignRecipient{}).
		Select("campaign_recipients.*, members.name AS member_name, members.email AS member_email").
		Joins("JOIN members ON members.id = campaign_recipients.member_id").
		Where("campaign_recipients.campaign_id = ?", campaignID).
		Order("members.name asc").
		Scan(&rows).Error
	if err != nil {
		configslog.Log.Error("CampaignRepository.ListRecipients: DB error", zap.Uint("campaignID", campaignID), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// ListUnsent henüz gönderim yapılmamış alıcıları üye bilgisiyle listeler.
// Gönderim döngüsü bu sırayla ilerler (ekleniş sırası).
func (r *CampaignRepository) ListUnsent(ctx context.Context, campaignID uint) ([]models.CampaignRecipient, error) {
	if campaignID == 0 {
		return nil, errors.New("geçersiz Campaign ID")
	}
	var recipients []models.CampaignRecipient
	err := r.getDB(ctx).
		Where("campaign_id = ? AND email_sent IS NULL", campaignID).
		Preload("Member").
		Order("created_at asc").
		Find(&recipients).Error
	return recipients, err
}

// MarkSent alıcıya gönderim zamanını damgalar.
func (r *CampaignRepository) MarkSent(ctx context.Context, campaignID, memberID uint, at time.Time) error {
	if campaignID == 0 || memberID == 0 {
		return errors.New("geçersiz ID")
	}
	return r.getDB(ctx).Model(&models.CampaignRecipient{}).
		Where("campaign_id = ? AND member_id = ?", campaignID, memberID).
		UpdateColumn("email_sent", at).Error
}

// ClearSent kampanyanın tüm gönderim damgalarını temizler (yeniden gönderim).
func (r *CampaignRepository) ClearSent(ctx context.Context, campaignID uint) error {
	if campaignID == 0 {
		return errors.New("geçersiz Campaign ID")
	}
	return r.getDB(ctx).Model(&models.CampaignRecipient{}).
		Where("campaign_id = ?", campaignID).
		UpdateColumn("email_sent", nil).Error
}

var _ ICampaignRepository = (*CampaignRepository)(nil)
