package repositories

import (
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func openTestKV(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func Test_Register_And_Lookup(t *testing.T) {
	req := require.New(t)
	presence := NewPresenceRepository(openTestKV(t))

	req.NoError(presence.Register("alice-id", "conn-1", time.Hour))

	connectionID, ok, err := presence.Lookup("alice-id")
	req.NoError(err)
	req.True(ok)
	req.Equal("conn-1", connectionID)

	_, ok, err = presence.Lookup("bob-id")
	req.NoError(err)
	req.False(ok)
}

func Test_Register_Is_Last_Connect_Wins(t *testing.T) {
	req := require.New(t)
	presence := NewPresenceRepository(openTestKV(t))

	req.NoError(presence.Register("alice-id", "conn-1", time.Hour))
	req.NoError(presence.Register("alice-id", "conn-2", time.Hour))

	connectionID, ok, err := presence.Lookup("alice-id")
	req.NoError(err)
	req.True(ok)
	req.Equal("conn-2", connectionID)
}

func Test_Unregister_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	presence := NewPresenceRepository(openTestKV(t))

	req.NoError(presence.Register("alice-id", "conn-1", time.Hour))
	req.NoError(presence.Unregister("alice-id"))

	_, ok, err := presence.Lookup("alice-id")
	req.NoError(err)
	req.False(ok)

	// Second unregister of an absent entry is not an error.
	req.NoError(presence.Unregister("alice-id"))
}

func Test_Entry_Expires_After_TTL(t *testing.T) {
	req := require.New(t)
	presence := NewPresenceRepository(openTestKV(t))

	req.NoError(presence.Register("alice-id", "conn-1", 1*time.Second))

	_, ok, err := presence.Lookup("alice-id")
	req.NoError(err)
	req.True(ok)

	// Badger expiry has one-second granularity.
	time.Sleep(2100 * time.Millisecond)

	_, ok, err = presence.Lookup("alice-id")
	req.NoError(err)
	req.False(ok)
}
