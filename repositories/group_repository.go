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

// MemberWithMembership bir üyeyi, belirli bir gruba üyelik bilgisiyle
// birlikte taşır. LEFT JOIN'den gelir: grupta olmayan üyeler de listelenir,
// GroupMemberID nil kalır.
type MemberWithMembership struct {
	models.Member
	GroupMemberID *uint
}

// InGroup üyenin gruba kayıtlı olup olmadığını söyler (JOIN tarafı
// eşleşmediyse false).
func (m *MemberWithMembership) InGroup() bool {
	return m.GroupMemberID != nil
}

// IGroupRepository grup ve grup üyeliği veritabanı işlemleri için arayüz.
type IGroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	FindByID(ctx context.Context, id uint) (*models.Group, error)
	FindByGroupNo(ctx context.Context, groupNo int) (*models.Group, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Group, int64, error)
	Update(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, id uint) error

	AddMember(ctx context.Context, groupID, memberID uint) error
	RemoveMember(ctx context.Context, groupID, memberID uint) error
	ListMemberIDs(ctx context.Context, groupID uint) ([]uint, error)
	ListAllWithMembership(ctx context.Context, groupID uint) ([]MemberWithMembership, error)
}

// GroupRepository IGroupRepository arayüzünü uygular.
type GroupRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Group]
}

// NewGroupRepository yeni bir GroupRepository örneği oluşturur.
func NewGroupRepository() IGroupRepository {
	return NewGroupRepositoryTx(configs.GetDB())
}

// NewGroupRepositoryTx transaction içinde çalışan örnek oluşturur.
func NewGroupRepositoryTx(tx *gorm.DB) IGroupRepository {
	base := NewBaseRepository[models.Group](tx)
	base.SetAllowedSortColumns([]string{"group_no", "tag", "id", "created_at"})
	return &GroupRepository{db: tx, base: base}
}

func (r *GroupRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni grup ekler.
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	if group == nil || group.Tag == "" {
		return errors.New("grup etiketi boş olamaz")
	}
	return r.base.Create(ctx, group)
}

// FindByID grubu ID ile bulur.
func (r *GroupRepository) FindByID(ctx context.Context, id uint) (*models.Group, error) {
	return r.base.FindByID(ctx, id)
}

// FindByGroupNo grubu kullanıcı tarafından verilen numarayla bulur.
func (r *GroupRepository) FindByGroupNo(ctx context.Context, groupNo int) (*models.Group, error) {
	if groupNo <= 0 {
		return nil, errors.New("geçersiz grup numarası")
	}
	var group models.Group
	err := r.getDB(ctx).Where("group_no = ?", groupNo).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("GroupRepository.FindByGroupNo: DB error", zap.Int("groupNo", groupNo), zap.Error(err))
		return nil, err
	}
	return &group, nil
}

// FindAllPaginated grupları opsiyonel etiket filtresiyle listeler.
func (r *GroupRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Group, int64, error) {
	params.Validate()
	var groups []models.Group
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Group{})
	query = addSearch(query, "tag", params.Name, true)

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return groups, 0, nil
	}

	err := query.
		Order(r.base.OrderClause(params)).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&groups).Error
	return groups, totalCount, err
}

// Update grup kaydını günceller.
func (r *GroupRepository) Update(ctx context.Context, group *models.Group) error {
	if group == nil || group.ID == 0 {
		return errors.New("geçersiz grup")
	}
	return r.base.Update(ctx, group)
}

// Delete grubu ve üyelik kayıtlarını siler.
func (r *GroupRepository) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("geçersiz Group ID")
	}
	db := r.getDB(ctx)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Group{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// AddMember üyeyi gruba ekler; zaten üyeyse sessizce geçer.
func (r *GroupRepository) AddMember(ctx context.Context, groupID, memberID uint) error {
	if groupID == 0 || memberID == 0 {
		return errors.New("geçersiz grup veya üye ID")
	}
	gm := models.GroupMember{GroupID: groupID, MemberID: memberID}
	err := r.getDB(ctx).
		Where("group_id = ? AND member_id = ?", groupID, memberID).
		FirstOrCreate(&gm).Error
	if err != nil {
		configslog.Log.Error("GroupRepository.AddMember: DB error",
			zap.Uint("groupID", groupID), zap.Uint("memberID", memberID), zap.Error(err))
	}
	return err
}

// RemoveMember üyeyi gruptan çıkarır.
func (r *GroupRepository) RemoveMember(ctx context.Context, groupID, memberID uint) error {
	if groupID == 0 || memberID == 0 {
		return errors.New("geçersiz grup veya üye ID")
	}
	return r.getDB(ctx).
		Where("group_id = ? AND member_id = ?", groupID, memberID).
		Delete(&models.GroupMember{}).Error
}

// ListMemberIDs gruptaki üyelerin ID listesini döndürür.
func (r *GroupRepository) ListMemberIDs(ctx context.Context, groupID uint) ([]uint, error) {
	if groupID == 0 {
		return nil, errors.New("geçersiz Group ID")
	}
	var ids []uint
	err := r.getDB(ctx).Model(&models.GroupMember{}).
		Where("group_id = ?", groupID).
		Pluck("member_id", &ids).Error
	return ids, err
}

// ListAllWithMembership tüm aktif üyeleri, verilen gruba üyelik bilgisiyle
// birlikte listeler. Üyelik filtresi WHERE yerine JOIN koşulunda: aksi halde
// grupta olmayan üyeler listeden düşerdi.
func (r *GroupRepository) ListAllWithMembership(ctx context.Context, groupID uint) ([]MemberWithMembership, error) {
	if groupID == 0 {
		return nil, errors.New("geçersiz Group ID")
	}
	var rows []MemberWithMembership
	err := r.getDB(ctx).Model(&models.Member{}).
		Select("members.*, group_members.id AS group_member_id").
		Joins("LEFT JOIN group_members ON group_members.member_id = members.id AND group_members.group_id = ? AND group_members.deleted_at IS NULL", groupID).
		Where("members.active = ?", true).
		Order("members.name asc").
		Scan(&rows).Error
	if err != nil {
		configslog.Log.Error("GroupRepository.ListAllWithMembership: DB error", zap.Uint("groupID", groupID), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

var _ IGroupRepository = (*GroupRepository)(nil)
