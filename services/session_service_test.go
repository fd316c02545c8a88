package services

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"courier/domain"
	"courier/errors"
	"courier/mocks"
	"courier/runtime"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type silentSink struct{}

func (silentSink) Push(domain.Message) error { return nil }

func acceptAll(userID string) Authenticator {
	return func(string) (string, error) { return userID, nil }
}

func rejectAll() Authenticator {
	return func(string) (string, error) { return "", fmt.Errorf("bad signature") }
}

func TestSessionService_Connect(t *testing.T) {
	t.Run("should bind the connection and register presence", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		presence := mocks.NewMockIPresenceRepository(ctrl)
		registry := runtime.NewRegistry()
		svc := NewSessionService(slog.Default(), acceptAll("alice-id"), presence, registry, 24*time.Hour)

		presence.EXPECT().Register("alice-id", gomock.Any(), 24*time.Hour).Return(nil).Times(1)

		session, err := svc.Connect("some-token", silentSink{})

		req.NoError(err)
		req.Equal("alice-id", session.UserID)
		req.NotEmpty(session.ConnectionID)
		_, bound := registry.Sink(session.ConnectionID)
		req.True(bound)
	})

	t.Run("should reject a bad token without registering anything", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		presence := mocks.NewMockIPresenceRepository(ctrl)
		registry := runtime.NewRegistry()
		svc := NewSessionService(slog.Default(), rejectAll(), presence, registry, 24*time.Hour)

		presence.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Connect("forged-token", silentSink{})

		req.ErrorIs(err, errors.ErrInvalidToken)
		req.Zero(registry.Len())
	})

	t.Run("should accept the connection in degraded mode when presence is down", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		presence := mocks.NewMockIPresenceRepository(ctrl)
		registry := runtime.NewRegistry()
		svc := NewSessionService(slog.Default(), acceptAll("alice-id"), presence, registry, 24*time.Hour)

		presence.EXPECT().Register("alice-id", gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("directory down")).Times(1)

		session, err := svc.Connect("some-token", silentSink{})

		// Connected, but unreachable for push until reconnect.
		req.NoError(err)
		_, bound := registry.Sink(session.ConnectionID)
		req.True(bound)
	})
}

func TestSessionService_Disconnect(t *testing.T) {
	t.Run("should unbind and unregister, and stay quiet when called twice", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		presence := mocks.NewMockIPresenceRepository(ctrl)
		registry := runtime.NewRegistry()
		svc := NewSessionService(slog.Default(), acceptAll("alice-id"), presence, registry, 24*time.Hour)

		presence.EXPECT().Register("alice-id", gomock.Any(), gomock.Any()).Return(nil).Times(1)
		presence.EXPECT().Unregister("alice-id").Return(nil).Times(2)

		session, err := svc.Connect("some-token", silentSink{})
		req.NoError(err)

		svc.Disconnect(session)
		req.Zero(registry.Len())

		// Idempotent: a second disconnect of the same session is harmless.
		svc.Disconnect(session)
		req.Zero(registry.Len())
	})

	t.Run("should tolerate a presence store failure and rely on the TTL", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		presence := mocks.NewMockIPresenceRepository(ctrl)
		registry := runtime.NewRegistry()
		svc := NewSessionService(slog.Default(), acceptAll("alice-id"), presence, registry, 24*time.Hour)

		presence.EXPECT().Unregister("alice-id").Return(fmt.Errorf("directory down")).Times(1)

		svc.Disconnect(Session{UserID: "alice-id", ConnectionID: "conn-1"})
	})
}
