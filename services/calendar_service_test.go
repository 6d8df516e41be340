package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarFeed(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewCalendarService()
	rsvpSvc := NewRSVPService()

	member := seedMember(t, db, "Takvimci", "takvim@example.com")
	require.NoError(t, db.Model(member).Update("i_cal", true).Error)

	attending := seedEvent(t, ctx, "gidilecek", 0)
	skipped := seedEvent(t, ctx, "gidilmeyecek", 0)
	_, err := rsvpSvc.Respond(ctx, attending.EventKey, member.WebKey, "attending", "")
	require.NoError(t, err)
	_, err = rsvpSvc.Respond(ctx, skipped.EventKey, member.WebKey, "not_attending", "")
	require.NoError(t, err)

	feed, err := svc.FeedForMember(ctx, member.WebKey)
	require.NoError(t, err)

	assert.Contains(t, feed, "BEGIN:VCALENDAR")
	assert.Contains(t, feed, "UID:gidilecek@kitapkulubu.link")
	assert.Contains(t, feed, "STATUS:CONFIRMED")
	// Katılmayacağı etkinlik akışta yer almaz.
	assert.NotContains(t, feed, "gidilmeyecek")
}

func TestCalendarFeedDisabled(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewCalendarService()

	member := seedMember(t, db, "Kapalı", "kapali@example.com")
	_, err := svc.FeedForMember(ctx, member.WebKey)
	assert.ErrorIs(t, err, ErrCalendarDisabled)

	_, err = svc.FeedForMember(ctx, "olmayan-anahtar")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestCalendarEscapesText(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewCalendarService()

	member := seedMember(t, db, "Takvimci", "takvim@example.com")
	require.NoError(t, db.Model(member).Update("i_cal", true).Error)

	event := seedEvent(t, ctx, "virgullu", 0)
	require.NoError(t, db.Model(event).Update("summary", "Kahve, kitap; sohbet").Error)
	_, err := NewRSVPService().Respond(ctx, event.EventKey, member.WebKey, "maybe", "")
	require.NoError(t, err)

	feed, err := svc.FeedForMember(ctx, member.WebKey)
	require.NoError(t, err)
	assert.Contains(t, feed, `SUMMARY:Kahve\, kitap\; sohbet`)
	// Kararsız yanıt geçici (tentative) işaretlenir.
	assert.Contains(t, feed, "STATUS:TENTATIVE")
}
