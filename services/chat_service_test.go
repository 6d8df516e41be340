package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatPostAndList(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewChatService()
	user := seedUser(t, db, "Ali", "ali@example.com", false)

	_, err := svc.PostMessage(ctx, user.ID, "group", 1, "İlk mesaj")
	require.NoError(t, err)
	_, err = svc.PostMessage(ctx, user.ID, "group", 1, "İkinci mesaj")
	require.NoError(t, err)
	_, err = svc.PostMessage(ctx, user.ID, "book", 9, "Başka hedefe")
	require.NoError(t, err)

	messages, err := svc.ListMessages(ctx, "group", 1, 0)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "Ali", messages[0].SenderName)

	// Bilinmeyen hedef türü reddedilir.
	_, err = svc.PostMessage(ctx, user.ID, "meeting", 1, "Olmaz")
	assert.ErrorIs(t, err, ErrChatInvalidInput)
	_, err = svc.PostMessage(ctx, user.ID, "group", 1, "   ")
	assert.ErrorIs(t, err, ErrChatInvalidInput)
}

func TestChatDeleteLeavesTombstone(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewChatService()
	user := seedUser(t, db, "Ali", "ali@example.com", false)

	msg, err := svc.PostMessage(ctx, user.ID, "event", 3, "Silinecek mesaj")
	require.NoError(t, err)
	_, err = svc.PostMessage(ctx, user.ID, "event", 3, "Kalacak mesaj")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMessage(ctx, msg.ID, user.ID, false))

	// Mezar taşı sırada kalır; metin boşalır, silen kaydedilir.
	messages, err := svc.ListMessages(ctx, "event", 3, 0)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.True(t, messages[0].IsTombstone())
	assert.Empty(t, messages[0].Message)
	assert.Equal(t, "Kalacak mesaj", messages[1].Message)

	// Yeniden silme sessizce başarılı olur.
	require.NoError(t, svc.DeleteMessage(ctx, msg.ID, user.ID, false))
}

func TestChatDeletePermissions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewChatService()
	owner := seedUser(t, db, "Ali", "ali@example.com", false)
	other := seedUser(t, db, "Veli", "veli@example.com", false)
	admin := seedUser(t, db, "Yönetici", "admin@example.com", true)

	msg, err := svc.PostMessage(ctx, owner.ID, "member", 5, "Benim mesajım")
	require.NoError(t, err)

	// Başkası silemez, yönetici silebilir.
	assert.ErrorIs(t, svc.DeleteMessage(ctx, msg.ID, other.ID, false), ErrChatForbidden)
	require.NoError(t, svc.DeleteMessage(ctx, msg.ID, admin.ID, true))

	messages, err := svc.ListMessages(ctx, "member", 5, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.True(t, messages[0].IsTombstone())
}
