//go:generate go run go.uber.org/mock/mockgen -source=presence.go -destination=../mocks/mock_presence_repository.go -package=mocks
package repositories

import (
	goerrors "errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type IPresenceRepository interface {
	Register(userID, connectionID string, ttl time.Duration) error
	Lookup(userID string) (string, bool, error)
	Unregister(userID string) error
}

// PresenceRepository is the volatile directory of live connections, keyed
// "user:{id}". At most one connection per user: a re-register overwrites the
// previous entry (last-connect-wins). The TTL is a safety net against missed
// disconnect events.
type PresenceRepository struct {
	db *badger.DB
}

func NewPresenceRepository(db *badger.DB) IPresenceRepository {
	return &PresenceRepository{db: db}
}

func presenceKey(userID string) []byte {
	return []byte(fmt.Sprintf("user:%s", userID))
}

// Register upserts the user's connection id and resets the TTL.
func (p PresenceRepository) Register(userID, connectionID string, ttl time.Duration) error {
	return p.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(presenceKey(userID), []byte(connectionID)).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
}

// Lookup resolves the user's connection id. An absent or expired entry is
// not an error: the user is simply unreachable for push delivery.
func (p PresenceRepository) Lookup(userID string) (string, bool, error) {
	var connectionID string
	err := p.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(presenceKey(userID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			connectionID = string(val)
			return nil
		})
	})
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return connectionID, true, nil
}

// Unregister deletes the user's entry unconditionally. Deleting an absent
// entry is a no-op, which makes disconnect idempotent. A disconnect that
// races a fresh reconnect resolves last-write-wins; the stale window is
// bounded by the TTL.
func (p PresenceRepository) Unregister(userID string) error {
	return p.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(presenceKey(userID))
	})
}
