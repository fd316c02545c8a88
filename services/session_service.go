package services

import (
	"fmt"
	"log/slog"
	"time"

	"courier/contract"
	"courier/errors"
	"courier/repositories"
	"courier/runtime"

	"github.com/google/uuid"
)

type ISessionService interface {
	Connect(token string, sink contract.EventSink) (Session, error)
	Disconnect(session Session)
}

// Session identifies one authenticated live connection.
type Session struct {
	UserID       string
	ConnectionID string
}

type Authenticator func(token string) (string, error)

// SessionService manages the connection lifecycle: authenticate on connect,
// bind the connection locally, advertise it in the presence directory, and
// undo both on disconnect.
type SessionService struct {
	authenticate Authenticator
	presence     repositories.IPresenceRepository
	registry     *runtime.Registry
	presenceTTL  time.Duration
	log          *slog.Logger
}

func NewSessionService(
	log *slog.Logger,
	authenticate Authenticator,
	presence repositories.IPresenceRepository,
	registry *runtime.Registry,
	presenceTTL time.Duration,
) *SessionService {
	return &SessionService{
		authenticate: authenticate,
		presence:     presence,
		registry:     registry,
		presenceTTL:  presenceTTL,
		log:          log,
	}
}

// Connect authenticates the handshake token and registers the connection.
// A presence store fault does not reject the connection: the user stays
// connected in degraded mode and simply cannot receive pushed messages.
func (s *SessionService) Connect(token string, sink contract.EventSink) (Session, error) {
	userID, err := s.authenticate(token)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}

	session := Session{
		UserID:       userID,
		ConnectionID: uuid.NewString(),
	}
	s.registry.Bind(session.ConnectionID, sink)

	if err := s.presence.Register(userID, session.ConnectionID, s.presenceTTL); err != nil {
		s.log.Warn("presence registration failed, connection degraded to no push delivery",
			"user_id", userID, "error", err)
	} else {
		s.log.Info("user connected", "user_id", userID, "connection_id", session.ConnectionID)
	}
	return session, nil
}

// Disconnect unbinds the connection and clears presence. Idempotent: a
// second call for the same session is a no-op. An unreachable presence
// store only leaves a stale entry that self-clears via TTL.
func (s *SessionService) Disconnect(session Session) {
	s.registry.Unbind(session.ConnectionID)

	if err := s.presence.Unregister(session.UserID); err != nil {
		s.log.Warn("presence deregistration failed, entry will expire via TTL",
			"user_id", session.UserID, "error", err)
		return
	}
	s.log.Info("user disconnected", "user_id", session.UserID)
}
