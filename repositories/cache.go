//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=../mocks/mock_conversation_cache.go -package=mocks
package repositories

import (
	"encoding/json"
	goerrors "errors"
	"fmt"
	"time"

	"courier/domain"

	"github.com/dgraph-io/badger/v4"
)

type IConversationCache interface {
	GetPage(requesterID, otherID string) ([]domain.Message, bool, error)
	PutPage(requesterID, otherID string, page []domain.Message) error
	Invalidate(userA, userB string) error
}

// ConversationCache is a read-through cache of recent conversation pages,
// keyed "messages:{requester}:{other}". Keys are directional: each side of a
// conversation populates its own page on read, but a write must clear both
// directions (see Invalidate).
type ConversationCache struct {
	db  *badger.DB
	ttl time.Duration
}

func NewConversationCache(db *badger.DB, ttl time.Duration) IConversationCache {
	return &ConversationCache{db: db, ttl: ttl}
}

func cacheKey(requesterID, otherID string) []byte {
	return []byte(fmt.Sprintf("messages:%s:%s", requesterID, otherID))
}

// GetPage returns the cached page for this direction of the pair, if any.
// An absent or expired entry is a miss, not an error.
func (c ConversationCache) GetPage(requesterID, otherID string) ([]domain.Message, bool, error) {
	var raw []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cacheKey(requesterID, otherID))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var page []domain.Message
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, false, fmt.Errorf("decode cached page: %w", err)
	}
	return page, true, nil
}

// PutPage stores the page under this direction's key with the cache TTL.
func (c ConversationCache) PutPage(requesterID, otherID string, page []domain.Message) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encode page: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(cacheKey(requesterID, otherID), raw).WithTTL(c.ttl)
		return txn.SetEntry(entry)
	})
}

// Invalidate clears both directional keys of the pair. A new message affects
// both participants' views, so clearing only the writer's direction would
// leave the other side serving a stale page until its TTL.
func (c ConversationCache) Invalidate(userA, userB string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(cacheKey(userA, userB)); err != nil {
			return err
		}
		return txn.Delete(cacheKey(userB, userA))
	})
}
