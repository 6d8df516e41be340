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

// IMeetingRepository toplantı veritabanı işlemleri için arayüz.
type IMeetingRepository interface {
	Create(ctx context.Context, meeting *models.Meeting) error
	FindByID(ctx context.Context, id uint) (*models.Meeting, error)
	FindByDayGroupAndBook(ctx context.Context, day time.Time, groupID, bookID uint) (*models.Meeting, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Meeting, int64, error)
	FindUpcoming(ctx context.Context, from time.Time, includeHidden bool) ([]models.Meeting, error)
	Update(ctx context.Context, meeting *models.Meeting) error
	Delete(ctx context.Context, id uint) error
}

// MeetingRepository IMeetingRepository arayüzünü uygular.
type MeetingRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Meeting]
}

// NewMeetingRepository yeni bir MeetingRepository örneği oluşturur.
func NewMeetingRepository() IMeetingRepository {
	return NewMeetingRepositoryTx(configs.GetDB())
}

// NewMeetingRepositoryTx transaction içinde çalışan örnek oluşturur.
func NewMeetingRepositoryTx(tx *gorm.DB) IMeetingRepository {
	base := NewBaseRepository[models.Meeting](tx)
	base.SetAllowedSortColumns([]string{"day", "id", "created_at"})
	return &MeetingRepository{db: tx, base: base}
}

func (r *MeetingRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// truncateDay karşılaştırmaların saat bileşeninden etkilenmemesi için
// tarihi gün başına indirger.
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Create yeni toplantı ekler. (Day, GroupID, BookID) benzersizliği
// veritabanı indeksiyle korunur.
func (r *MeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	if meeting == nil || meeting.GroupID == 0 || meeting.BookID == 0 {
		return errors.New("toplantı için grup ve kitap zorunludur")
	}
	meeting.Day = truncateDay(meeting.Day)
	return r.base.Create(ctx, meeting)
}

// FindByID toplantıyı ilişkileriyle birlikte bulur.
func (r *MeetingRepository) FindByID(ctx context.Context, id uint) (*models.Meeting, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Meeting ID")
	}
	var meeting models.Meeting
	err := r.getDB(ctx).
		Preload("Group").Preload("Book").Preload("Book.Author").Preload("Place").
		First(&meeting, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("MeetingRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &meeting, nil
}

// FindByDayGroupAndBook toplantıyı bileşik anahtarıyla bulur.
func (r *MeetingRepository) FindByDayGroupAndBook(ctx context.Context, day time.Time, groupID, bookID uint) (*models.Meeting, error) {
	if groupID == 0 || bookID == 0 {
		return nil, errors.New("geçersiz grup veya kitap ID")
	}
	var meeting models.Meeting
	err := r.getDB(ctx).
		Where("day = ? AND group_id = ? AND book_id = ?", truncateDay(day), groupID, bookID).
		First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("MeetingRepository.FindByDayGroupAndBook: DB error", zap.Error(err))
		return nil, err
	}
	return &meeting, nil
}

// FindAllPaginated toplantıları listeler.
func (r *MeetingRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Meeting, int64, error) {
	params.Validate()
	var meetings []models.Meeting
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Meeting{})
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return meetings, 0, nil
	}

	err := query.
		Preload("Group").Preload("Book").Preload("Place").
		Order(r.base.OrderClause(params)).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&meetings).Error
	return meetings, totalCount, err
}

// FindUpcoming verilen günden itibaren toplantıları listeler.
// includeHidden=false ise gizli toplantılar elenir.
func (r *MeetingRepository) FindUpcoming(ctx context.Context, from time.Time, includeHidden bool) ([]models.Meeting, error) {
	query := r.getDB(ctx).
		Preload("Group").Preload("Book").Preload("Place").
		Where("day >= ?", truncateDay(from))
	if !includeHidden {
		query = query.Where("hidden = ?", false)
	}
	var meetings []models.Meeting
	err := query.Order("day asc").Find(&meetings).Error
	return meetings, err
}

// Update toplantı kaydını günceller.
func (r *MeetingRepository) Update(ctx context.Context, meeting *models.Meeting) error {
	if meeting == nil || meeting.ID == 0 {
		return errors.New("geçersiz toplantı")
	}
	meeting.Day = truncateDay(meeting.Day)
	return r.base.Update(ctx, meeting)
}

// Delete toplantı kaydını siler.
func (r *MeetingRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

var _ IMeetingRepository = (*MeetingRepository)(nil)
