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

// IMemberRepository üye veritabanı işlemleri için arayüz.
type IMemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	FindByID(ctx context.Context, id uint) (*models.Member, error)
	FindByWebKey(ctx context.Context, webKey string) (*models.Member, error)
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
	FindByUserID(ctx context.Context, userID uint) (*models.Member, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Member, int64, error)
	FindActive(ctx context.Context) ([]models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	Touch(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

// MemberRepository IMemberRepository arayüzünü uygular.
type MemberRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Member]
}

// NewMemberRepository yeni bir MemberRepository örneği oluşturur.
func NewMemberRepository() IMemberRepository {
	return NewMemberRepositoryTx(configs.GetDB())
}

// NewMemberRepositoryTx transaction içinde çalışan örnek oluşturur.
func NewMemberRepositoryTx(tx *gorm.DB) IMemberRepository {
	base := NewBaseRepository[models.Member](tx)
	base.SetAllowedSortColumns([]string{"name", "email", "hit_time", "id", "created_at"})
	return &MemberRepository{db: tx, base: base}
}

func (r *MemberRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni üye ekler. WebKey servis katmanında üretilmiş olmalıdır.
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	if member == nil || member.Name == "" || member.WebKey == "" {
		return errors.New("üye adı veya web anahtarı eksik")
	}
	return r.base.Create(ctx, member)
}

// FindByID üyeyi ID ile bulur.
func (r *MemberRepository) FindByID(ctx context.Context, id uint) (*models.Member, error) {
	return r.base.FindByID(ctx, id)
}

// FindByWebKey üyeyi dışa dönük web anahtarıyla bulur.
func (r *MemberRepository) FindByWebKey(ctx context.Context, webKey string) (*models.Member, error) {
	if webKey == "" {
		return nil, errors.New("web anahtarı boş olamaz")
	}
	var member models.Member
	err := r.getDB(ctx).Where("web_key = ?", webKey).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("MemberRepository.FindByWebKey: DB error", zap.Error(err))
		return nil, err
	}
	return &member, nil
}

// FindByEmail üyeyi e-posta adresiyle bulur.
func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	if email == "" {
		return nil, errors.New("e-posta boş olamaz")
	}
	var member models.Member
	err := r.getDB(ctx).Where("email = ?", email).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// FindByUserID üyeyi bağlı olduğu kullanıcı hesabıyla bulur.
func (r *MemberRepository) FindByUserID(ctx context.Context, userID uint) (*models.Member, error) {
	if userID == 0 {
		return nil, errors.New("geçersiz User ID")
	}
	var member models.Member
	err := r.getDB(ctx).Where("user_id = ?", userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// FindAllPaginated üyeleri opsiyonel isim filtresi ve aktiflik durumuyla
// listeler. Tüm filtreler boşsa tüm üyeler döner.
func (r *MemberRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Member, int64, error) {
	params.Validate()
	var members []models.Member
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Member{})
	query = addSearch(query, "name", params.Name, true)
	if params.Status != "" {
		query = query.Where("active = ?", params.Status == "true")
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("MemberRepository.FindAllPaginated: count error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return members, 0, nil
	}

	err := query.
		Order(r.base.OrderClause(params)).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&members).Error
	return members, totalCount, err
}

// FindActive e-posta almaya uygun tüm aktif üyeleri döndürür.
func (r *MemberRepository) FindActive(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	err := r.getDB(ctx).
		Where("active = ? AND no_email = ?", true, false).
		Order("name asc").
		Find(&members).Error
	return members, err
}

// Update üye kaydını günceller.
func (r *MemberRepository) Update(ctx context.Context, member *models.Member) error {
	if member == nil || member.ID == 0 {
		return errors.New("geçersiz üye")
	}
	return r.base.Update(ctx, member)
}

// Touch üyenin son görülme zamanını günceller (web_key ile her erişimde).
func (r *MemberRepository) Touch(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("geçersiz Member ID")
	}
	now := time.Now().UTC()
	return r.getDB(ctx).Model(&models.Member{}).
		Where("id = ?", id).
		UpdateColumn("hit_time", now).Error
}

// Delete üyeyi ve bağlı kayıtlarını (katılımlar, alıcılar, grup üyelikleri)
// tek transaction içinde siler.
func (r *MemberRepository) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("geçersiz Member ID")
	}
	db := r.getDB(ctx)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", id).Delete(&models.Participant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", id).Delete(&models.CampaignRecipient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", id).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Member{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

var _ IMemberRepository = (*MemberRepository)(nil)
