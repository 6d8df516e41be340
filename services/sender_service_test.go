package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"kitapkulubu.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeMailer gönderilen postaları biriktirir; afterSend her gönderimden
// sonra çağrılır (iptal senaryoları için kanca). failFor kümesindeki
// adreslere gönderim hata döndürür.
type fakeMailer struct {
	mu        sync.Mutex
	sent      []fakeMail
	afterSend func(count int)
	failFor   map[string]bool
}

type fakeMail struct {
	To      string
	Subject string
	Body    string
}

func (m *fakeMailer) Send(to, subject, htmlBody string) error {
	m.mu.Lock()
	if m.failFor[to] {
		m.mu.Unlock()
		return errors.New("smtp bağlantısı reddedildi")
	}
	m.sent = append(m.sent, fakeMail{To: to, Subject: subject, Body: htmlBody})
	count := len(m.sent)
	m.mu.Unlock()
	if m.afterSend != nil {
		m.afterSend(count)
	}
	return nil
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func seedCampaignWithRecipients(t *testing.T, db *gorm.DB, memberCount int) *models.Campaign {
	t.Helper()
	ctx := context.Background()
	svc := NewCampaignService()
	campaign := &models.Campaign{Subject: "Toplu duyuru", Body: "Merhaba {name}, anahtarın {web_key}"}
	require.NoError(t, svc.CreateCampaign(ctx, campaign))
	for i := 0; i < memberCount; i++ {
		member := seedMember(t, db, string(rune('A'+i))+"üye", string(rune('a'+i))+"@example.com")
		require.NoError(t, svc.AddRecipient(ctx, campaign.ID, member.ID))
	}
	return campaign
}

func TestRunCampaignSendMarksAndPersonalizes(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	mailer := &fakeMailer{}
	sender := NewSenderServiceWith(db, mailer, 0)

	campaign := seedCampaignWithRecipients(t, db, 2)
	require.NoError(t, sender.locks.Claim(ctx, campaignLockKey(campaign.ID)))

	sent, err := sender.RunCampaignSend(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	require.Len(t, mailer.sent, 2)
	assert.Contains(t, mailer.sent[0].Body, "Merhaba Aüye")
	assert.NotContains(t, mailer.sent[0].Body, "{web_key}")

	// Tüm alıcılar damgalandı, ikinci başlatma yapacak iş bulamaz.
	assert.ErrorIs(t, sender.StartCampaignSend(ctx, campaign.ID), ErrSendNothingToDo)

	// Döngü kilidi bırakmış olmalı.
	sending, err := sender.IsCampaignSending(ctx, campaign.ID)
	require.NoError(t, err)
	assert.False(t, sending)
}

func TestRunCampaignSendRecordsLastMailError(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	mailer := &fakeMailer{failFor: map[string]bool{"a@example.com": true}}
	sender := NewSenderServiceWith(db, mailer, 0)

	campaign := seedCampaignWithRecipients(t, db, 2)
	require.NoError(t, sender.locks.Claim(ctx, campaignLockKey(campaign.ID)))

	sent, err := sender.RunCampaignSend(ctx, campaign.ID)
	require.NoError(t, err)
	// Başarısız alıcı döngüyü durdurmaz, hatası sonradan okunabilir.
	assert.Equal(t, 1, sent)
	assert.Contains(t, LastMailError(), "a@example.com")
	assert.Contains(t, LastMailError(), "smtp bağlantısı reddedildi")
}

func TestRunCampaignSendSkipsUnreachable(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	mailer := &fakeMailer{}
	sender := NewSenderServiceWith(db, mailer, 0)
	svc := NewCampaignService()

	campaign := &models.Campaign{Subject: "Süzgeç", Body: "içerik"}
	require.NoError(t, svc.CreateCampaign(ctx, campaign))

	ok := seedMember(t, db, "Ulaşılır", "ok@example.com")
	noEmail := seedMember(t, db, "Postasız", "posta@example.com")
	passive := seedMember(t, db, "Pasif", "pasif@example.com")
	require.NoError(t, db.Model(noEmail).Update("no_email", true).Error)
	require.NoError(t, db.Model(passive).Update("active", false).Error)
	for _, m := range []*models.Member{ok, noEmail, passive} {
		require.NoError(t, svc.AddRecipient(ctx, campaign.ID, m.ID))
	}

	require.NoError(t, sender.locks.Claim(ctx, campaignLockKey(campaign.ID)))
	sent, err := sender.RunCampaignSend(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ok@example.com", mailer.sent[0].To)
}

func TestCampaignSendCooperativeCancel(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	mailer := &fakeMailer{}
	sender := NewSenderServiceWith(db, mailer, 0)
	campaign := seedCampaignWithRecipients(t, db, 5)

	// İkinci gönderimden sonra kilit dışarıdan bırakılır; döngü bir sonraki
	// turda bunu görüp durmalıdır.
	mailer.afterSend = func(count int) {
		if count == 2 {
			require.NoError(t, sender.CancelCampaignSend(ctx, campaign.ID))
		}
	}

	require.NoError(t, sender.locks.Claim(ctx, campaignLockKey(campaign.ID)))
	sent, err := sender.RunCampaignSend(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, 2, mailer.sentCount())

	// Gönderilmeyenler damgasız kalır, yeniden başlatılabilir.
	mailer.afterSend = nil
	require.NoError(t, sender.locks.Claim(ctx, campaignLockKey(campaign.ID)))
	sent, err = sender.RunCampaignSend(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, sent)
}

func TestStartCampaignSendRejectsConcurrent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	mailer := &fakeMailer{}
	sender := NewSenderServiceWith(db, mailer, 0)
	campaign := seedCampaignWithRecipients(t, db, 1)

	// Kilit başka bir süreçteymiş gibi elle alınır.
	require.NoError(t, sender.locks.Claim(ctx, campaignLockKey(campaign.ID)))
	assert.ErrorIs(t, sender.StartCampaignSend(ctx, campaign.ID), ErrSendAlreadyRunning)
	require.NoError(t, sender.locks.Free(ctx, campaignLockKey(campaign.ID)))

	_, err := NewCampaignService().GetCampaignByID(ctx, campaign.ID)
	require.NoError(t, err)
}

func TestRunEventInvites(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	mailer := &fakeMailer{}
	sender := NewSenderServiceWith(db, mailer, 0)
	rsvpSvc := NewRSVPService()

	event := seedEvent(t, ctx, "davet-postasi", 0)
	fresh := seedMember(t, db, "Yeni", "yeni@example.com")
	already := seedMember(t, db, "Eski", "eski@example.com")
	require.NoError(t, rsvpSvc.Invite(ctx, event.ID, fresh.ID))
	require.NoError(t, rsvpSvc.Invite(ctx, event.ID, already.ID))

	now := time.Now().UTC()
	require.NoError(t, db.Model(&models.Participant{}).
		Where("event_id = ? AND member_id = ?", event.ID, already.ID).
		Update("email_sent", now).Error)

	require.NoError(t, sender.locks.Claim(ctx, eventLockKey(event.ID)))
	sent, err := sender.RunEventInvites(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "yeni@example.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Body, "/rsvp/davet-postasi/"+fresh.WebKey)

	// Döngü kilidi bırakmış olmalı; damgalılar yüzünden ikinci başlatma
	// yapacak iş bulamaz.
	locked, err := sender.locks.IsLocked(ctx, eventLockKey(event.ID))
	require.NoError(t, err)
	assert.False(t, locked)
	assert.ErrorIs(t, sender.StartEventInvites(ctx, event.ID), ErrSendNothingToDo)
}

func TestStartEventInvitesRejectsConcurrent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	mailer := &fakeMailer{}
	sender := NewSenderServiceWith(db, mailer, 0)
	rsvpSvc := NewRSVPService()

	event := seedEvent(t, ctx, "es-zamanli-davet", 0)
	for i := 0; i < 3; i++ {
		member := seedMember(t, db, string(rune('A'+i))+"davetli", string(rune('a'+i))+"davet@example.com")
		require.NoError(t, rsvpSvc.Invite(ctx, event.ID, member.ID))
	}

	// Kilit başka bir süreçteymiş gibi elle alınır: ikinci gönderim
	// başlatılamaz, kimseye mükerrer posta gitmez.
	require.NoError(t, sender.locks.Claim(ctx, eventLockKey(event.ID)))
	assert.ErrorIs(t, sender.StartEventInvites(ctx, event.ID), ErrSendAlreadyRunning)
	assert.Equal(t, 0, mailer.sentCount())
	require.NoError(t, sender.locks.Free(ctx, eventLockKey(event.ID)))

	// Kilit bırakılınca döngü çalıştırılabilir ve herkes tam bir kez alır.
	require.NoError(t, sender.locks.Claim(ctx, eventLockKey(event.ID)))
	sent, err := sender.RunEventInvites(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, sent)
	assert.Equal(t, 3, mailer.sentCount())
}
