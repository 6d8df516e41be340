package services

import (
	"context"
	"testing"
	"time"

	"kitapkulubu.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaignCRUD(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	svc := NewCampaignService()

	campaign := &models.Campaign{Subject: "Eylül bülteni", Body: "<p>Merhaba {name}</p>"}
	require.NoError(t, svc.CreateCampaign(ctx, campaign))

	got, err := svc.GetCampaignByID(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, "Eylül bülteni", got.Subject)

	require.NoError(t, svc.DeleteCampaign(ctx, campaign.ID))
	_, err = svc.GetCampaignByID(ctx, campaign.ID)
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestCampaignTargetAllActive(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewCampaignService()

	campaign := &models.Campaign{Subject: "Duyuru", Body: "içerik"}
	require.NoError(t, svc.CreateCampaign(ctx, campaign))

	active := seedMember(t, db, "Aktif", "aktif@example.com")
	passive := seedMember(t, db, "Pasif", "pasif@example.com")
	require.NoError(t, db.Model(passive).Update("active", false).Error)

	added, err := svc.TargetAllActive(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	recipients, err := svc.ListRecipients(ctx, campaign.ID)
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, active.ID, recipients[0].MemberID)
	assert.False(t, recipients[0].IsEmailSent())
}

func TestCampaignTargetGroupSkipsNoEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewCampaignService()
	groupSvc := NewGroupService()

	campaign := &models.Campaign{Subject: "Grup duyurusu", Body: "içerik"}
	require.NoError(t, svc.CreateCampaign(ctx, campaign))

	group := &models.Group{GroupNo: 5, Type: models.GroupTypeClub, Tag: "Cuma Grubu"}
	require.NoError(t, groupSvc.CreateGroup(ctx, group))

	wants := seedMember(t, db, "İster", "ister@example.com")
	refuses := seedMember(t, db, "İstemez", "istemez@example.com")
	outside := seedMember(t, db, "Dışarıda", "disarida@example.com")
	require.NoError(t, db.Model(refuses).Update("no_email", true).Error)
	require.NoError(t, groupSvc.AddMember(ctx, group.ID, wants.ID))
	require.NoError(t, groupSvc.AddMember(ctx, group.ID, refuses.ID))
	_ = outside

	added, err := svc.TargetGroup(ctx, campaign.ID, group.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	recipients, err := svc.ListRecipients(ctx, campaign.ID)
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, wants.ID, recipients[0].MemberID)
}

func TestCampaignClearSent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewCampaignService()

	campaign := &models.Campaign{Subject: "Tekrar", Body: "içerik"}
	require.NoError(t, svc.CreateCampaign(ctx, campaign))
	member := seedMember(t, db, "Ali", "ali@example.com")
	require.NoError(t, svc.AddRecipient(ctx, campaign.ID, member.ID))

	now := time.Now().UTC()
	require.NoError(t, db.Model(&models.CampaignRecipient{}).
		Where("campaign_id = ?", campaign.ID).Update("email_sent", now).Error)

	require.NoError(t, svc.ClearSent(ctx, campaign.ID))
	recipients, err := svc.ListRecipients(ctx, campaign.ID)
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.False(t, recipients[0].IsEmailSent())
}
