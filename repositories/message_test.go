package repositories

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "courier.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func Test_Store_And_Read_Conversation(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewMessageRepository(openTestDB(t), slog.Default())

	alice, bob := "alice-id", "bob-id"
	first, err := repository.StoreMessage(ctx, alice, bob, "hello")
	req.NoError(err)
	second, err := repository.StoreMessage(ctx, bob, alice, "hi yourself")
	req.NoError(err)
	third, err := repository.StoreMessage(ctx, alice, bob, "how are you?")
	req.NoError(err)

	req.NotEqual(first.ID, second.ID)
	req.False(second.CreatedAt.Before(first.CreatedAt))
	req.False(third.CreatedAt.Before(second.CreatedAt))

	messages, err := repository.GetConversation(ctx, alice, bob, 50)
	req.NoError(err)
	req.Len(messages, 3)

	// Newest first, both directions of the pair included.
	req.Equal(third.ID, messages[0].ID)
	req.Equal(second.ID, messages[1].ID)
	req.Equal(first.ID, messages[2].ID)
}

func Test_Conversation_Is_Symmetric(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewMessageRepository(openTestDB(t), slog.Default())

	alice, bob := "alice-id", "bob-id"
	_, err := repository.StoreMessage(ctx, alice, bob, "one")
	req.NoError(err)
	_, err = repository.StoreMessage(ctx, bob, alice, "two")
	req.NoError(err)

	forward, err := repository.GetConversation(ctx, alice, bob, 50)
	req.NoError(err)
	backward, err := repository.GetConversation(ctx, bob, alice, 50)
	req.NoError(err)
	req.Equal(forward, backward)
}

func Test_Conversation_Excludes_Other_Pairs(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewMessageRepository(openTestDB(t), slog.Default())

	_, err := repository.StoreMessage(ctx, "alice-id", "bob-id", "for bob")
	req.NoError(err)
	_, err = repository.StoreMessage(ctx, "alice-id", "clara-id", "for clara")
	req.NoError(err)

	messages, err := repository.GetConversation(ctx, "alice-id", "bob-id", 50)
	req.NoError(err)
	req.Len(messages, 1)
	req.Equal("for bob", messages[0].Content)
}

func Test_Conversation_Skips_Unreadable_Rows(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	db := openTestDB(t)
	repository := NewMessageRepository(db, slog.Default())

	kept, err := repository.StoreMessage(ctx, "alice-id", "bob-id", "intact")
	req.NoError(err)

	// A row with a mangled identity must not take the whole read down.
	corrupt := messageRecord{
		ID:         "not-a-uuid",
		Content:    "mangled",
		SenderID:   "alice-id",
		ReceiverID: "bob-id",
		CreatedAt:  time.Now().UTC().UnixNano(),
	}
	req.NoError(db.Create(&corrupt).Error)

	messages, err := repository.GetConversation(ctx, "alice-id", "bob-id", 50)
	req.NoError(err)
	req.Len(messages, 1)
	req.Equal(kept.ID, messages[0].ID)
}

func Test_Conversation_Limit(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewMessageRepository(openTestDB(t), slog.Default())

	for i := 0; i < 5; i++ {
		_, err := repository.StoreMessage(ctx, "alice-id", "bob-id", "ping")
		req.NoError(err)
	}

	messages, err := repository.GetConversation(ctx, "alice-id", "bob-id", 3)
	req.NoError(err)
	req.Len(messages, 3)
}
