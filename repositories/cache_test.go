package repositories

import (
	"testing"
	"time"

	"courier/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func page(contents ...string) []domain.Message {
	messages := make([]domain.Message, 0, len(contents))
	at := time.Now().UTC().Truncate(time.Millisecond)
	for _, content := range contents {
		messages = append(messages, domain.Message{
			ID:         uuid.New(),
			Content:    content,
			SenderID:   "alice-id",
			ReceiverID: "bob-id",
			CreatedAt:  at,
		})
	}
	return messages
}

func Test_Cache_Roundtrip(t *testing.T) {
	req := require.New(t)
	cache := NewConversationCache(openTestKV(t), time.Minute)

	_, hit, err := cache.GetPage("alice-id", "bob-id")
	req.NoError(err)
	req.False(hit)

	stored := page("hello", "hi yourself")
	req.NoError(cache.PutPage("alice-id", "bob-id", stored))

	fetched, hit, err := cache.GetPage("alice-id", "bob-id")
	req.NoError(err)
	req.True(hit)
	req.Equal(stored, fetched)
}

func Test_Cache_Keys_Are_Directional(t *testing.T) {
	req := require.New(t)
	cache := NewConversationCache(openTestKV(t), time.Minute)

	req.NoError(cache.PutPage("alice-id", "bob-id", page("hello")))

	// The reverse direction is populated independently on read.
	_, hit, err := cache.GetPage("bob-id", "alice-id")
	req.NoError(err)
	req.False(hit)
}

func Test_Invalidate_Clears_Both_Directions(t *testing.T) {
	req := require.New(t)
	cache := NewConversationCache(openTestKV(t), time.Minute)

	req.NoError(cache.PutPage("alice-id", "bob-id", page("hello")))
	req.NoError(cache.PutPage("bob-id", "alice-id", page("hello")))

	req.NoError(cache.Invalidate("alice-id", "bob-id"))

	_, hit, err := cache.GetPage("alice-id", "bob-id")
	req.NoError(err)
	req.False(hit)

	_, hit, err = cache.GetPage("bob-id", "alice-id")
	req.NoError(err)
	req.False(hit)
}

func Test_Cache_Entry_Expires(t *testing.T) {
	req := require.New(t)
	cache := NewConversationCache(openTestKV(t), 1*time.Second)

	req.NoError(cache.PutPage("alice-id", "bob-id", page("hello")))

	time.Sleep(2100 * time.Millisecond)

	_, hit, err := cache.GetPage("alice-id", "bob-id")
	req.NoError(err)
	req.False(hit)
}
