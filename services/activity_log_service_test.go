package services

import (
	"context"
	"testing"

	"kitapkulubu.link/models"
	"kitapkulubu.link/pkg/queryparams"
	"kitapkulubu.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityLogRecordAndFilter(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	svc := NewActivityLogService()

	require.NoError(t, svc.Record(ctx, LogTypeRSVP, "etkinlik-1", "uye-1", "attending", ""))
	require.NoError(t, svc.Record(ctx, LogTypeRSVP, "etkinlik-2", "uye-1", "maybe", ""))
	require.NoError(t, svc.Record(ctx, LogTypeSignup, "uye-2", "", "", "yeni üye"))

	params := queryparams.DefaultListParams("recorded_at")

	result, err := svc.GetLogsPaginated(ctx, repositories.LogFilter{Type: LogTypeRSVP}, params)
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Meta.TotalItems)

	result, err = svc.GetLogsPaginated(ctx, repositories.LogFilter{Type: LogTypeRSVP, Param1: "etkinlik-1"}, params)
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Meta.TotalItems)

	result, err = svc.GetLogsPaginated(ctx, repositories.LogFilter{}, params)
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.Meta.TotalItems)

	logs, ok := result.Data.([]models.ActivityLog)
	require.True(t, ok)
	assert.Len(t, logs, 3)
}

func TestActivityLogRejectsEmptyType(t *testing.T) {
	setupTestDB(t)
	svc := NewActivityLogService()
	err := svc.Record(context.Background(), "", "a", "b", "c", "")
	assert.ErrorIs(t, err, ErrActivityLogInvalid)
}
