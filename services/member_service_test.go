package services

import (
	"context"
	"testing"

	"kitapkulubu.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupMember(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	svc := NewMemberService()

	member, err := svc.SignupMember(ctx, "  Fatma Yılmaz  ", "Fatma@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, "Fatma Yılmaz", member.Name)
	assert.Equal(t, "fatma@example.com", member.Email)
	assert.NotEmpty(t, member.WebKey)
	assert.True(t, member.Active)

	// Aynı e-posta ikinci kez kaydolamaz.
	_, err = svc.SignupMember(ctx, "Başkası", "fatma@example.com")
	assert.ErrorIs(t, err, ErrMemberEmailTaken)

	_, err = svc.SignupMember(ctx, "Adsız", "gecersiz-posta")
	assert.ErrorIs(t, err, ErrMemberInvalidInput)
}

func TestMemberWebKeyLookup(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	svc := NewMemberService()

	member, err := svc.SignupMember(ctx, "Hasan", "hasan@example.com")
	require.NoError(t, err)

	got, err := svc.GetMemberByWebKey(ctx, member.WebKey)
	require.NoError(t, err)
	assert.Equal(t, member.ID, got.ID)

	_, err = svc.GetMemberByWebKey(ctx, "olmayan-anahtar")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestMemberLinkUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewMemberService()

	member, err := svc.SignupMember(ctx, "Hasan", "hasan@example.com")
	require.NoError(t, err)
	user := seedUser(t, db, "Hasan", "hasan@example.com", false)

	require.NoError(t, svc.LinkUser(ctx, member.ID, &user.ID))
	got, err := svc.GetMemberByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, member.ID, got.ID)

	// Bağlantı kaldırılabilir.
	require.NoError(t, svc.LinkUser(ctx, member.ID, nil))
	_, err = svc.GetMemberByUserID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestMemberDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewMemberService()

	member := seedMember(t, db, "Giden", "giden@example.com")
	kalan := seedMember(t, db, "Kalan", "kalan@example.com")

	group := &models.Group{GroupNo: 7, Type: models.GroupTypeClub, Tag: "Cumartesi Grubu"}
	require.NoError(t, NewGroupService().CreateGroup(ctx, group))
	require.NoError(t, NewGroupService().AddMember(ctx, group.ID, member.ID))
	require.NoError(t, NewGroupService().AddMember(ctx, group.ID, kalan.ID))

	event := seedEvent(t, ctx, "veda-bulusmasi", 0)
	require.NoError(t, NewRSVPService().Invite(ctx, event.ID, member.ID))
	require.NoError(t, NewRSVPService().Invite(ctx, event.ID, kalan.ID))

	campaign := &models.Campaign{Subject: "Duyuru", Body: "içerik"}
	require.NoError(t, NewCampaignService().CreateCampaign(ctx, campaign))
	require.NoError(t, NewCampaignService().AddRecipient(ctx, campaign.ID, member.ID))
	require.NoError(t, NewCampaignService().AddRecipient(ctx, campaign.ID, kalan.ID))

	require.NoError(t, svc.DeleteMember(ctx, member.ID))

	_, err := svc.GetMemberByWebKey(ctx, member.WebKey)
	assert.ErrorIs(t, err, ErrMemberNotFound)

	// Katılım, alıcı ve grup üyeliği kayıtları üyeyle birlikte gider;
	// diğer üyenin kayıtları yerinde kalır.
	var participants, recipients, memberships int64
	require.NoError(t, db.Model(&models.Participant{}).Where("member_id = ?", member.ID).Count(&participants).Error)
	require.NoError(t, db.Model(&models.CampaignRecipient{}).Where("member_id = ?", member.ID).Count(&recipients).Error)
	require.NoError(t, db.Model(&models.GroupMember{}).Where("member_id = ?", member.ID).Count(&memberships).Error)
	assert.Zero(t, participants)
	assert.Zero(t, recipients)
	assert.Zero(t, memberships)

	require.NoError(t, db.Model(&models.Participant{}).Where("member_id = ?", kalan.ID).Count(&participants).Error)
	require.NoError(t, db.Model(&models.CampaignRecipient{}).Where("member_id = ?", kalan.ID).Count(&recipients).Error)
	require.NoError(t, db.Model(&models.GroupMember{}).Where("member_id = ?", kalan.ID).Count(&memberships).Error)
	assert.EqualValues(t, 1, participants)
	assert.EqualValues(t, 1, recipients)
	assert.EqualValues(t, 1, memberships)

	assert.ErrorIs(t, svc.DeleteMember(ctx, member.ID), ErrMemberNotFound)
}
