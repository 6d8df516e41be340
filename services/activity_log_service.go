package services

import (
	"context"
	"errors"
	"time"

	"kitapkulubu.link/configs/configslog"
	"kitapkulubu.link/models"
	"kitapkulubu.link/pkg/queryparams"
	"kitapkulubu.link/repositories"

	"go.uber.org/zap"
)

// Kayıt türleri. Param1/Param2 türüne göre anlam kazanır.
const (
	LogTypeRSVP     = "rsvp"     // Param1: etkinlik anahtarı, Param2: üye ID
	LogTypeSignup   = "signup"   // Param1: üye e-postası
	LogTypeCampaign = "campaign" // Param1: kampanya ID
	LogTypeChat     = "chat"     // Param1: hedef türü, Param2: hedef ID
	LogTypeMail     = "mail"     // Param1: Message-ID
)

var ErrActivityLogInvalid = errors.New("geçersiz kayıt verisi")

// IActivityLogService denetim kaydı işlemleri için arayüz.
type IActivityLogService interface {
	Record(ctx context.Context, logType, param1, param2, param3, message string) error
	GetLogsPaginated(ctx context.Context, filter repositories.LogFilter, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
}

// ActivityLogService IActivityLogService arayüzünü uygular.
type ActivityLogService struct {
	repo repositories.IActivityLogRepository
}

// NewActivityLogService yeni bir ActivityLogService örneği oluşturur.
func NewActivityLogService() IActivityLogService {
	return &ActivityLogService{repo: repositories.NewActivityLogRepository()}
}

// Record yeni denetim kaydı ekler. Kayıt hatası çağıranın akışını bozmamalı;
// yine de hata döndürülür ki isteyen loglayıp geçebilsin.
func (s *ActivityLogService) Record(ctx context.Context, logType, param1, param2, param3, message string) error {
	if logType == "" {
		return ErrActivityLogInvalid
	}
	entry := &models.ActivityLog{
		RecordedAt: time.Now().UTC(),
		Type:       logType,
		Param1:     param1,
		Param2:     param2,
		Param3:     param3,
		Message:    message,
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		configslog.Log.Error("ActivityLog kaydedilemedi", zap.String("type", logType), zap.Error(err))
		return err
	}
	return nil
}

// GetLogsPaginated kayıtları filtreleyip sayfalayarak getirir.
func (s *ActivityLogService) GetLogsPaginated(ctx context.Context, filter repositories.LogFilter, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	logs, totalCount, err := s.repo.FindFiltered(ctx, filter, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: logs,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

var _ IActivityLogService = (*ActivityLogService)(nil)
