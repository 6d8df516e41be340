package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwardedMailRegisterDeduplicates(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	svc := NewForwardedMailService()

	mail, err := svc.Register(ctx, "<msg-1@posta>", "Konu", "Gonderen@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "gonderen@example.com", mail.Sender)

	// Aynı Message-ID yeniden teslim edilirse mevcut kayıt döner.
	dup, err := svc.Register(ctx, "<msg-1@posta>", "Konu", "gonderen@example.com")
	assert.ErrorIs(t, err, ErrMailDuplicate)
	assert.Equal(t, mail.ID, dup.ID)

	unprocessed, err := svc.ListUnprocessed(ctx)
	require.NoError(t, err)
	assert.Len(t, unprocessed, 1)
}

func TestForwardedMailProcessToChat(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewForwardedMailService()

	user := seedUser(t, db, "Ali", "ali@example.com", false)
	member := seedMember(t, db, "Ali", "ali@example.com")
	require.NoError(t, db.Model(member).Update("user_id", user.ID).Error)

	_, err := svc.Register(ctx, "<msg-2@posta>", "Kitap önerisi", "ali@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.ProcessToChat(ctx, "<msg-2@posta>", "group", 1, "Bunu okuyalım"))

	messages, err := NewChatService().ListMessages(ctx, "group", 1, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, user.ID, messages[0].SenderUserID)
	assert.Equal(t, "Bunu okuyalım", messages[0].Message)

	// İkinci işleme sessizce geçilir, mesaj çoğalmaz.
	require.NoError(t, svc.ProcessToChat(ctx, "<msg-2@posta>", "group", 1, "Bunu okuyalım"))
	messages, err = NewChatService().ListMessages(ctx, "group", 1, 0)
	require.NoError(t, err)
	assert.Len(t, messages, 1)

	unprocessed, err := svc.ListUnprocessed(ctx)
	require.NoError(t, err)
	assert.Empty(t, unprocessed)
}

func TestForwardedMailUnknownSender(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	svc := NewForwardedMailService()

	_, err := svc.Register(ctx, "<msg-3@posta>", "Konu", "yabanci@example.com")
	require.NoError(t, err)

	// Hesaba bağlı üyeyle eşleşmeyen gönderen işlenmiş sayılır ama
	// sohbete mesaj düşmez.
	err = svc.ProcessToChat(ctx, "<msg-3@posta>", "group", 1, "içerik")
	assert.ErrorIs(t, err, ErrMailSenderUnknown)

	unprocessed, err := svc.ListUnprocessed(ctx)
	require.NoError(t, err)
	assert.Empty(t, unprocessed)
}

func TestForwardedMailReject(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	svc := NewForwardedMailService()

	_, err := svc.Register(ctx, "<msg-4@posta>", "İstenmeyen", "spam@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Reject(ctx, "<msg-4@posta>", "istenmeyen posta"))
	unprocessed, err := svc.ListUnprocessed(ctx)
	require.NoError(t, err)
	assert.Empty(t, unprocessed)

	assert.ErrorIs(t, svc.Reject(ctx, "<olmayan@posta>", "x"), ErrMailNotFound)
}
