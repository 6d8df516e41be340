package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"
	"kitapkulubu.link/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Kullanıcı servisi hataları.
var (
	ErrUserNotFound       = errors.New("kullanıcı bulunamadı")
	ErrUserInvalidInput   = errors.New("geçersiz kullanıcı verisi")
	ErrUserEmailTaken     = errors.New("bu e-posta zaten kayıtlı")
	ErrInvalidCredentials = errors.New("e-posta veya şifre hatalı")
	ErrUserInactive       = errors.New("kullanıcı hesabı pasif")
	ErrPasswordTooShort   = errors.New("şifre en az 8 karakter olmalı")
	ErrCurrentPasswordBad = errors.New("mevcut şifre hatalı")
)

// IUserService kullanıcı ve oturum iş kuralları için arayüz.
type IUserService interface {
	Register(ctx context.Context, name, email, password string, isSystem bool) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
}

// UserService IUserService arayüzünü uygular.
type UserService struct {
	repo repositories.IUserRepository
}

// NewUserService yeni bir UserService örneği oluşturur.
func NewUserService() IUserService {
	return &UserService{repo: repositories.NewUserRepository()}
}

// Register yeni kullanıcı oluşturur; şifre bcrypt ile saklanır.
func (s *UserService) Register(ctx context.Context, name, email, password string, isSystem bool) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: ad ve e-posta zorunludur", ErrUserInvalidInput)
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}
	if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrUserEmailTaken
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hashedPasswordBytes, hashErr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if hashErr != nil {
		configslog.Log.Error("Register: şifre hashlenemedi", zap.Error(hashErr))
		return nil, hashErr
	}
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPasswordBytes),
		IsSystem:     isSystem,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		configslog.Log.Error("Register: kullanıcı oluşturulamadı", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("Kullanıcı oluşturuldu: %s", email)
	return user, nil
}

// Authenticate e-posta ve şifreyi doğrular, son giriş zamanını günceller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.repo.UpdateLastLogin(ctx, user.ID); err != nil {
		configslog.Log.Warn("Authenticate: son giriş zamanı güncellenemedi", zap.Uint("userID", user.ID), zap.Error(err))
	}
	return user, nil
}

// GetUserByID kullanıcıyı ID ile getirir.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdatePassword mevcut şifreyi doğrulayıp yenisini yazar.
func (s *UserService) UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrCurrentPasswordBad
	}
	hashedPasswordBytes, hashErr := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if hashErr != nil {
		return hashErr
	}
	user.PasswordHash = string(hashedPasswordBytes)
	if err := s.repo.Update(ctx, user); err != nil {
		configslog.Log.Error("UpdatePassword: kullanıcı güncellenemedi", zap.Uint("userID", userID), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Şifre güncellendi: kullanıcı %d", userID)
	return nil
}

var _ IUserService = (*UserService)(nil)
