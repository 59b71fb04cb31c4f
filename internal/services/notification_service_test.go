package services

import (
	"testing"
	"time"

	"github.com/pferate/puppy-website/internal/models"
	"github.com/pferate/puppy-website/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_SendMessage(t *testing.T) {
	env := setupServiceTestEnv(t)
	sender := createTestUser(t, env.db, "admin@puppy")
	alice := createTestUser(t, env.db, "alice@puppy")
	bob := createTestUser(t, env.db, "bob@puppy")

	sent, err := env.notifications.SendMessage(sender.ID, "Hi", "there", alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, sent, 2)

	var stored []models.Notification
	require.NoError(t, env.db.Order("sent_to ASC").Find(&stored).Error)
	require.Len(t, stored, 2)
	for i, recipient := range []uint64{alice.ID, bob.ID} {
		assert.Equal(t, sender.ID, stored[i].CreatedBy)
		assert.Equal(t, recipient, stored[i].SentTo)
		assert.Equal(t, "Hi", stored[i].Title)
		assert.Equal(t, "there", stored[i].Message)
		assert.Nil(t, stored[i].ReadOn)
	}
}

func TestNotificationService_SendMessageWithoutRecipients(t *testing.T) {
	env := setupServiceTestEnv(t)
	sender := createTestUser(t, env.db, "admin@puppy")

	_, err := env.notifications.SendMessage(sender.ID, "Hi", "there")
	assert.ErrorIs(t, err, ErrNoRecipients)

	var count int64
	require.NoError(t, env.db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNotificationService_SendMessageToUnknownRecipient(t *testing.T) {
	env := setupServiceTestEnv(t)
	sender := createTestUser(t, env.db, "admin@puppy")
	alice := createTestUser(t, env.db, "alice@puppy")

	_, err := env.notifications.SendMessage(sender.ID, "Hi", "there", 999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = env.notifications.SendMessage(sender.ID, "Hi", "there", alice.ID, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	var count int64
	require.NoError(t, env.db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)

	sent, err := env.notifications.SendMessage(sender.ID, "Hi", "there", alice.ID, alice.ID)
	require.NoError(t, err)
	assert.Len(t, sent, 2)
}

func TestNotificationService_BulkNotify(t *testing.T) {
	env := setupServiceTestEnv(t)
	sender := createTestUser(t, env.db, "admin@puppy")
	createTestUser(t, env.db, "alice@puppy")
	createTestUser(t, env.db, "bob@puppy")

	created, err := env.notifications.BulkNotify("Meetup", "Thursday at 7", sender.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	var users []models.User
	require.NoError(t, env.db.Find(&users).Error)
	for _, u := range users {
		var n models.Notification
		require.NoError(t, env.db.Where("sent_to = ?", u.ID).First(&n).Error)
		assert.Equal(t, sender.ID, n.CreatedBy)
		assert.Equal(t, "Meetup", n.Title)
	}
}

func TestNotificationService_MarkReadOverwrites(t *testing.T) {
	env := setupServiceTestEnv(t)
	sender := createTestUser(t, env.db, "admin@puppy")
	alice := createTestUser(t, env.db, "alice@puppy")

	sent, err := env.notifications.SendMessage(sender.ID, "Hi", "there", alice.ID)
	require.NoError(t, err)
	id := sent[0].ID

	first := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	env.notifications.now = func() time.Time { return first }
	n, err := env.notifications.MarkRead(id, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, n.ReadOn)
	assert.True(t, first.Equal(*n.ReadOn))

	second := first.Add(time.Hour)
	env.notifications.now = func() time.Time { return second }
	_, err = env.notifications.MarkRead(id, alice.ID)
	require.NoError(t, err)

	stored, err := env.notifications.GetNotification(id, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ReadOn)
	assert.True(t, second.Equal(stored.ReadOn.UTC()))
}

func TestNotificationService_OtherUsersNotificationIsNotFound(t *testing.T) {
	env := setupServiceTestEnv(t)
	sender := createTestUser(t, env.db, "admin@puppy")
	alice := createTestUser(t, env.db, "alice@puppy")
	bob := createTestUser(t, env.db, "bob@puppy")

	sent, err := env.notifications.SendMessage(sender.ID, "Hi", "there", alice.ID)
	require.NoError(t, err)

	_, err = env.notifications.MarkRead(sent[0].ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	_, err = env.notifications.GetNotification(999, alice.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestNotificationService_Inbox(t *testing.T) {
	env := setupServiceTestEnv(t)
	sender := createTestUser(t, env.db, "admin@puppy")
	alice := createTestUser(t, env.db, "alice@puppy")

	for i := 0; i < 3; i++ {
		_, err := env.notifications.SendMessage(sender.ID, "Hi", "there", alice.ID)
		require.NoError(t, err)
	}

	inbox, total, err := env.notifications.Inbox(alice.ID, false, utils.PaginationParams{Limit: 2, Offset: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, inbox, 2)
	assert.Equal(t, sender.ID, inbox[0].CreatedByUser.ID)

	_, err = env.notifications.MarkRead(inbox[0].ID, alice.ID)
	require.NoError(t, err)

	unread, err := env.notifications.UnreadCount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	unreadInbox, total, err := env.notifications.Inbox(alice.ID, true, utils.PaginationParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, unreadInbox, 2)
}
