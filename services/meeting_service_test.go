package services

import (
	"context"
	"testing"
	"time"

	"kitapkulubu.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedGroupAndBook(t *testing.T, ctx context.Context) (*models.Group, *models.Book) {
	t.Helper()
	group := &models.Group{GroupNo: 1, Type: models.GroupTypeClub, Tag: "Pazartesi Grubu"}
	require.NoError(t, NewGroupService().CreateGroup(ctx, group))

	author := &models.Author{Name: "Ahmet Hamdi Tanpınar"}
	require.NoError(t, NewAuthorService().CreateAuthor(ctx, author))
	book := &models.Book{Title: "Saatleri Ayarlama Enstitüsü", AuthorID: author.ID}
	require.NoError(t, NewBookService().CreateBook(ctx, book))
	return group, book
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMeetingScheduleAndKeyLookup(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	svc := NewMeetingService()
	group, book := seedGroupAndBook(t, ctx)

	meeting := &models.Meeting{Day: day(2026, 9, 14), GroupID: group.ID, BookID: book.ID}
	require.NoError(t, svc.ScheduleMeeting(ctx, meeting))

	got, err := svc.GetMeetingByKey(ctx, day(2026, 9, 14), group.ID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, meeting.ID, got.ID)

	// Aynı (gün, grup, kitap) ikinci kez planlanamaz.
	err = svc.ScheduleMeeting(ctx, &models.Meeting{Day: day(2026, 9, 14), GroupID: group.ID, BookID: book.ID})
	assert.ErrorIs(t, err, ErrMeetingExists)

	// Farklı gün serbesttir.
	require.NoError(t, svc.ScheduleMeeting(ctx, &models.Meeting{Day: day(2026, 9, 21), GroupID: group.ID, BookID: book.ID}))
}

func TestMeetingReschedule(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	svc := NewMeetingService()
	group, book := seedGroupAndBook(t, ctx)

	meeting := &models.Meeting{Day: day(2026, 10, 5), GroupID: group.ID, BookID: book.ID}
	require.NoError(t, svc.ScheduleMeeting(ctx, meeting))

	require.NoError(t, svc.Reschedule(ctx, meeting.ID, day(2026, 10, 12)))

	// Eski anahtar artık bulunmaz, yenisi bulunur.
	_, err := svc.GetMeetingByKey(ctx, day(2026, 10, 5), group.ID, book.ID)
	assert.ErrorIs(t, err, ErrMeetingNotFound)
	got, err := svc.GetMeetingByKey(ctx, day(2026, 10, 12), group.ID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, meeting.ID, got.ID)
}

func TestMeetingRescheduleConflict(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	svc := NewMeetingService()
	group, book := seedGroupAndBook(t, ctx)

	first := &models.Meeting{Day: day(2026, 11, 2), GroupID: group.ID, BookID: book.ID}
	second := &models.Meeting{Day: day(2026, 11, 9), GroupID: group.ID, BookID: book.ID}
	require.NoError(t, svc.ScheduleMeeting(ctx, first))
	require.NoError(t, svc.ScheduleMeeting(ctx, second))

	// İkinciyi birincinin gününe taşımak anahtar çakışmasıdır.
	err := svc.Reschedule(ctx, second.ID, day(2026, 11, 2))
	assert.ErrorIs(t, err, ErrMeetingExists)

	// Çakışma sonrası ikinci kayıt yerinde durur.
	got, err := svc.GetMeetingByKey(ctx, day(2026, 11, 9), group.ID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}

func TestMeetingUpcomingHidesHidden(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	svc := NewMeetingService()
	group, book := seedGroupAndBook(t, ctx)

	require.NoError(t, svc.ScheduleMeeting(ctx, &models.Meeting{Day: day(2026, 12, 7), GroupID: group.ID, BookID: book.ID}))
	require.NoError(t, svc.ScheduleMeeting(ctx, &models.Meeting{Day: day(2026, 12, 14), GroupID: group.ID, BookID: book.ID, Hidden: true}))

	from := day(2026, 12, 1)
	visible, err := svc.GetUpcoming(ctx, from, false)
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	all, err := svc.GetUpcoming(ctx, from, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
