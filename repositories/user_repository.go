package repositories

import (
	"context"
	"errors"
	"time"

	"kitapkulubu.link/configs"
	"kitapkulubu.link/models"

	"gorm.io/gorm"
)

// IUserRepository hesap veritabanı işlemleri için arayüz.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id uint) error
}

// UserRepository IUserRepository arayüzünü uygular.
type UserRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.User]
}

// NewUserRepository yeni bir UserRepository örneği oluşturur.
func NewUserRepository() IUserRepository {
	return NewUserRepositoryTx(configs.GetDB())
}

// NewUserRepositoryTx transaction içinde çalışan örnek oluşturur.
func NewUserRepositoryTx(tx *gorm.DB) IUserRepository {
	return &UserRepository{db: tx, base: NewBaseRepository[models.User](tx)}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni hesap ekler.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user == nil || user.Email == "" || user.PasswordHash == "" {
		return errors.New("hesap e-postası veya parolası eksik")
	}
	return r.base.Create(ctx, user)
}

// FindByID hesabı ID ile bulur.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return r.base.FindByID(ctx, id)
}

// FindByEmail hesabı e-posta ile bulur.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, errors.New("e-posta boş olamaz")
	}
	var user models.User
	err := r.getDB(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update hesap kaydını günceller.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	if user == nil || user.ID == 0 {
		return errors.New("geçersiz hesap")
	}
	return r.base.Update(ctx, user)
}

// UpdateLastLogin son giriş zamanını damgalar.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("geçersiz User ID")
	}
	now := time.Now().UTC()
	return r.getDB(ctx).Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", now).Error
}

var _ IUserRepository = (*UserRepository)(nil)
