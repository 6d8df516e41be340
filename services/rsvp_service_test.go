package services

import (
	"context"
	"testing"
	"time"

	"kitapkulubu.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEvent(t *testing.T, ctx context.Context, key string, maxAttend int) *models.Event {
	t.Helper()
	start := time.Date(2026, 9, 24, 19, 0, 0, 0, time.UTC)
	event := &models.Event{
		EventKey:  key,
		Summary:   "Test Buluşması",
		StartsAt:  start,
		EndsAt:    start.Add(2 * time.Hour),
		MaxAttend: maxAttend,
	}
	require.NoError(t, NewEventService().CreateEvent(ctx, event))
	return event
}

func TestRSVPRespondLifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewRSVPService()

	event := seedEvent(t, ctx, "eylul-bulusmasi", 0)
	member := seedMember(t, db, "Ali", "ali@example.com")

	view, err := svc.Respond(ctx, event.EventKey, member.WebKey, "attending", "Geliyorum")
	require.NoError(t, err)
	assert.Equal(t, models.RSVPStatusAttending, view.Participant.Status)
	assert.False(t, view.Participant.Waiting)
	assert.EqualValues(t, 1, view.Attending)
	assert.Equal(t, 1, view.Event.RSVPAttend)

	// Fikir değişikliği sayacı düşürür.
	view, err = svc.Respond(ctx, event.EventKey, member.WebKey, "not_attending", "")
	require.NoError(t, err)
	assert.EqualValues(t, 0, view.Attending)

	// Her yanıt geçmişe yazılır.
	history, err := svc.ListHistory(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	// Yanıt üyenin son görülme zamanını damgalar.
	var fresh models.Member
	require.NoError(t, db.First(&fresh, member.ID).Error)
	assert.NotNil(t, fresh.HitTime)
}

func TestRSVPRejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewRSVPService()

	event := seedEvent(t, ctx, "durum-testi", 0)
	member := seedMember(t, db, "Ali", "ali@example.com")

	_, err := svc.Respond(ctx, event.EventKey, member.WebKey, "belki", "")
	assert.ErrorIs(t, err, ErrRSVPInvalidStatus)
}

func TestRSVPInactiveMemberRejected(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewRSVPService()

	event := seedEvent(t, ctx, "pasif-uye", 0)
	member := seedMember(t, db, "Ali", "ali@example.com")
	require.NoError(t, db.Model(member).Update("active", false).Error)

	_, err := svc.Respond(ctx, event.EventKey, member.WebKey, "attending", "")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestRSVPCapacityAndWaitingList(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewRSVPService()

	event := seedEvent(t, ctx, "kontenjanli", 2)
	first := seedMember(t, db, "Bir", "bir@example.com")
	second := seedMember(t, db, "İki", "iki@example.com")
	third := seedMember(t, db, "Üç", "uc@example.com")

	for _, m := range []*models.Member{first, second} {
		view, err := svc.Respond(ctx, event.EventKey, m.WebKey, "attending", "")
		require.NoError(t, err)
		assert.False(t, view.Participant.Waiting)
	}

	// Kontenjan dolu: üçüncü yanıt bekleme listesine düşer.
	view, err := svc.Respond(ctx, event.EventKey, third.WebKey, "attending", "")
	require.NoError(t, err)
	assert.True(t, view.Participant.Waiting)
	assert.True(t, view.Full)
	assert.EqualValues(t, 2, view.Attending)

	// Bir iptal bekleyen en eski kaydı terfi ettirir.
	view, err = svc.Respond(ctx, event.EventKey, first.WebKey, "not_attending", "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, view.Attending)

	var promoted models.Participant
	require.NoError(t, db.Where("event_id = ? AND member_id = ?", event.ID, third.ID).First(&promoted).Error)
	assert.Equal(t, models.RSVPStatusAttending, promoted.Status)
	assert.False(t, promoted.Waiting)

	// Terfi de geçmişe yazılır.
	history, err := svc.ListHistory(ctx, event.ID)
	require.NoError(t, err)
	promotedLogged := false
	for _, entry := range history {
		if entry.MemberID == third.ID && entry.Status == models.RSVPStatusAttending {
			promotedLogged = true
		}
	}
	assert.True(t, promotedLogged)
}

func TestRSVPWaitingMemberCancelDoesNotPromote(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewRSVPService()

	event := seedEvent(t, ctx, "bekleyen-iptal", 1)
	first := seedMember(t, db, "Bir", "bir@example.com")
	second := seedMember(t, db, "İki", "iki@example.com")
	third := seedMember(t, db, "Üç", "uc@example.com")

	_, err := svc.Respond(ctx, event.EventKey, first.WebKey, "attending", "")
	require.NoError(t, err)
	for _, m := range []*models.Member{second, third} {
		view, err := svc.Respond(ctx, event.EventKey, m.WebKey, "attending", "")
		require.NoError(t, err)
		require.True(t, view.Participant.Waiting)
	}

	// Bekleyen biri vazgeçerse koltuk boşalmaz, kimse terfi etmez.
	_, err = svc.Respond(ctx, event.EventKey, second.WebKey, "not_attending", "")
	require.NoError(t, err)

	var still models.Participant
	require.NoError(t, db.Where("event_id = ? AND member_id = ?", event.ID, third.ID).First(&still).Error)
	assert.True(t, still.Waiting)
}

func TestRSVPInviteAndRemove(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewRSVPService()

	event := seedEvent(t, ctx, "davetli", 0)
	member := seedMember(t, db, "Ali", "ali@example.com")

	require.NoError(t, svc.Invite(ctx, event.ID, member.ID))
	// İkinci davet mevcut kaydı ezmez.
	require.NoError(t, svc.Invite(ctx, event.ID, member.ID))

	participants, err := svc.ListParticipants(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, models.RSVPStatusPending, participants[0].Status)

	require.NoError(t, svc.RemoveParticipant(ctx, event.ID, member.ID))
	participants, err = svc.ListParticipants(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, participants)

	var fresh models.Event
	require.NoError(t, db.First(&fresh, event.ID).Error)
	assert.Equal(t, 0, fresh.RSVPAttend)
}

func TestRSVPViewWithoutParticipant(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewRSVPService()

	event := seedEvent(t, ctx, "salt-goruntuleme", 5)
	member := seedMember(t, db, "Ali", "ali@example.com")

	view, err := svc.GetView(ctx, event.EventKey, member.WebKey)
	require.NoError(t, err)
	assert.Nil(t, view.Participant)
	assert.False(t, view.Full)

	_, err = svc.GetView(ctx, "yok-boyle-etkinlik", member.WebKey)
	assert.ErrorIs(t, err, ErrEventNotFound)
}
