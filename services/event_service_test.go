package services

import (
	"context"
	"testing"
	"time"

	"kitapkulubu.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFromMeetingUsesTemplates(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	group := &models.Group{
		GroupNo:              2,
		Type:                 models.GroupTypeClub,
		Tag:                  "Perşembe Grubu",
		EventKeyTemplate:     "persembe-{day}",
		EventSummaryTemplate: "{group}: {book}",
		EventBodyTemplate:    "{author} imzalı {book} kitabını {day} günü konuşuyoruz.",
		DefaultMaxAttend:     12,
	}
	require.NoError(t, NewGroupService().CreateGroup(ctx, group))

	author := &models.Author{Name: "Leylâ Erbil"}
	require.NoError(t, NewAuthorService().CreateAuthor(ctx, author))
	book := &models.Book{Title: "Tuhaf Bir Kadın", AuthorID: author.ID}
	require.NoError(t, NewBookService().CreateBook(ctx, book))

	meeting := &models.Meeting{Day: day(2026, 9, 17), GroupID: group.ID, BookID: book.ID, IsPrivate: true}
	require.NoError(t, NewMeetingService().ScheduleMeeting(ctx, meeting))

	event, err := NewEventService().GenerateFromMeeting(ctx, meeting.ID, 20, 3)
	require.NoError(t, err)

	assert.Equal(t, "persembe-2026-09-17", event.EventKey)
	assert.Equal(t, "Perşembe Grubu: Tuhaf Bir Kadın", event.Summary)
	assert.Contains(t, event.Body, "Leylâ Erbil imzalı Tuhaf Bir Kadın")
	assert.Equal(t, 12, event.MaxAttend)
	assert.True(t, event.IsPrivate)
	assert.Equal(t, 20, event.StartsAt.Hour())
	assert.Equal(t, 3*time.Hour, event.EndsAt.Sub(event.StartsAt))
}

func TestGenerateFromMeetingDefaults(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	group, book := seedGroupAndBook(t, ctx)

	meeting := &models.Meeting{Day: day(2026, 9, 14), GroupID: group.ID, BookID: book.ID}
	require.NoError(t, NewMeetingService().ScheduleMeeting(ctx, meeting))

	// Saat/süre verilmezse 19:00 + 2 saat varsayılır; anahtar ve özet
	// şablonsuz gruptan türetilir.
	event, err := NewEventService().GenerateFromMeeting(ctx, meeting.ID, -1, 0)
	require.NoError(t, err)
	assert.Contains(t, event.EventKey, "20260914")
	assert.Contains(t, event.Summary, book.Title)
	assert.Equal(t, 19, event.StartsAt.Hour())
	assert.Equal(t, 2*time.Hour, event.EndsAt.Sub(event.StartsAt))
}

func TestEventManualCreate(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	svc := NewEventService()

	start := time.Date(2026, 10, 3, 14, 0, 0, 0, time.UTC)
	event := &models.Event{
		EventKey:  "sonbahar-okumasi",
		Summary:   "Sonbahar Okuması",
		Body:      "Açık hava buluşması.",
		StartsAt:  start,
		EndsAt:    start.Add(3 * time.Hour),
		MaxAttend: 15,
	}
	require.NoError(t, svc.CreateEvent(ctx, event))
	require.NotZero(t, event.ID)

	found, err := svc.GetEventByKey(ctx, "sonbahar-okumasi")
	require.NoError(t, err)
	assert.Equal(t, event.ID, found.ID)
	assert.Equal(t, 15, found.MaxAttend)

	// Aynı anahtar ikinci kez kullanılamaz.
	dup := &models.Event{EventKey: "sonbahar-okumasi", Summary: "Kopya", StartsAt: start, EndsAt: start.Add(time.Hour)}
	assert.ErrorIs(t, svc.CreateEvent(ctx, dup), ErrEventKeyTaken)

	// Anahtar/özet zorunlu, bitiş başlangıçtan önce olamaz.
	assert.ErrorIs(t, svc.CreateEvent(ctx, &models.Event{Summary: "Anahtarsız", StartsAt: start, EndsAt: start.Add(time.Hour)}), ErrEventInvalidInput)
	assert.ErrorIs(t, svc.CreateEvent(ctx, &models.Event{EventKey: "ters-saat", Summary: "Ters", StartsAt: start, EndsAt: start.Add(-time.Hour)}), ErrEventInvalidInput)
}

func TestEventRenameKey(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	svc := NewEventService()

	start := time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC)
	first := &models.Event{EventKey: "ekim-bulusmasi", Summary: "Ekim", StartsAt: start, EndsAt: start.Add(2 * time.Hour)}
	second := &models.Event{EventKey: "kasim-bulusmasi", Summary: "Kasım", StartsAt: start, EndsAt: start.Add(2 * time.Hour)}
	require.NoError(t, svc.CreateEvent(ctx, first))
	require.NoError(t, svc.CreateEvent(ctx, second))

	require.NoError(t, svc.RenameKey(ctx, first.ID, "ekim-2026"))
	got, err := svc.GetEventByKey(ctx, "ekim-2026")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	_, err = svc.GetEventByKey(ctx, "ekim-bulusmasi")
	assert.ErrorIs(t, err, ErrEventNotFound)

	// Dolu anahtara yeniden adlandırma reddedilir.
	err = svc.RenameKey(ctx, first.ID, "kasim-bulusmasi")
	assert.ErrorIs(t, err, ErrEventKeyTaken)
}

func TestEventDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewEventService()

	start := time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC)
	event := &models.Event{EventKey: "silinecek", Summary: "Silinecek", StartsAt: start, EndsAt: start.Add(time.Hour)}
	require.NoError(t, svc.CreateEvent(ctx, event))

	member := seedMember(t, db, "Zeynep", "zeynep@example.com")
	user := seedUser(t, db, "Zeynep", "zeynep@example.com", false)
	rsvpSvc := NewRSVPService()
	require.NoError(t, rsvpSvc.Invite(ctx, event.ID, member.ID))
	_, err := NewChatService().PostMessage(ctx, user.ID, string(models.ChatTargetEvent), event.ID, "Görüşürüz")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvent(ctx, event.ID))

	_, err = svc.GetEventByID(ctx, event.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
	participants, err := rsvpSvc.ListParticipants(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, participants)
	messages, err := NewChatService().ListMessages(ctx, string(models.ChatTargetEvent), event.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, messages)

	// Silme idempotent değildir; ikinci çağrı bulunamadı döner.
	assert.ErrorIs(t, svc.DeleteEvent(ctx, event.ID), ErrEventNotFound)
}
