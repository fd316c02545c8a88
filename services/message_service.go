package services

import (
	"context"
	"fmt"
	"log/slog"

	"courier/contract"
	"courier/domain"
	"courier/errors"
	"courier/repositories"
	"courier/runtime"
)

type IMessageService interface {
	Send(ctx context.Context, senderID, receiverID, content string) (domain.Message, error)
	ReadConversation(ctx context.Context, requesterID, otherID string) ([]domain.Message, error)
}

// MessageService routes newly created messages: it persists them, keeps the
// conversation cache coherent and pushes to the receiver's live connection
// when one is registered. The three stores are independent; no atomicity is
// assumed across them.
type MessageService struct {
	messages      repositories.IMessageRepository
	users         repositories.IUserRepository
	cache         repositories.IConversationCache
	presence      repositories.IPresenceRepository
	registry      *runtime.Registry
	limit         int
	log           *slog.Logger
	onPushFailure contract.PushObserver
}

func NewMessageService(
	log *slog.Logger,
	messages repositories.IMessageRepository,
	users repositories.IUserRepository,
	cache repositories.IConversationCache,
	presence repositories.IPresenceRepository,
	registry *runtime.Registry,
	limit int,
) *MessageService {
	s := &MessageService{
		messages: messages,
		users:    users,
		cache:    cache,
		presence: presence,
		registry: registry,
		limit:    limit,
		log:      log,
	}
	s.onPushFailure = func(receiverID string, err error) {
		log.Warn("real-time delivery failed, message remains stored",
			"receiver_id", receiverID, "error", err)
	}
	return s
}

// SetPushObserver replaces the default push-failure hook. The hook only
// observes: the outcome of Send never depends on it.
func (s *MessageService) SetPushObserver(observer contract.PushObserver) {
	if observer != nil {
		s.onPushFailure = observer
	}
}

// Send validates, persists, invalidates the cached pages and finally
// attempts real-time delivery. Success reflects persistence only: a message
// the receiver did not get pushed is delivered-when-next-online.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID, content string) (domain.Message, error) {
	// 1. Validation. Nothing is persisted on failure.
	if content == "" {
		return domain.Message{}, errors.ErrEmptyContent
	}
	known, err := s.users.Exists(ctx, receiverID)
	if err != nil {
		return domain.Message{}, fmt.Errorf("receiver check: %w", err)
	}
	if !known {
		return domain.Message{}, errors.ErrUnknownReceiver
	}

	// 2. Durable append. A failure here fails the whole operation: no cache
	// invalidation, no push, at most one persistence attempt.
	message, err := s.messages.StoreMessage(ctx, senderID, receiverID, content)
	if err != nil {
		return domain.Message{}, err
	}

	// 3. Invalidate both directions of the pair, best-effort. A stale page
	// survives at most until its TTL.
	if err := s.cache.Invalidate(senderID, receiverID); err != nil {
		s.log.Warn("cache invalidation failed",
			"sender_id", senderID, "receiver_id", receiverID, "error", err)
	}

	// 4. Best-effort push to the receiver's live connection.
	s.push(receiverID, message)

	return message, nil
}

func (s *MessageService) push(receiverID string, message domain.Message) {
	connectionID, online, err := s.presence.Lookup(receiverID)
	if err != nil {
		s.onPushFailure(receiverID, fmt.Errorf("presence lookup: %w", err))
		return
	}
	if !online {
		return
	}
	sink, ok := s.registry.Sink(connectionID)
	if !ok {
		// Presence outlived the connection it pointed at; the TTL or the
		// next disconnect will clear it.
		s.onPushFailure(receiverID, fmt.Errorf("no live connection %s", connectionID))
		return
	}
	if err := sink.Push(message); err != nil {
		s.onPushFailure(receiverID, err)
	}
}

// ReadConversation returns the most recent page of messages between the
// requester and the other user, newest first. Reads go through the cache;
// any cache fault degrades to a direct store query.
func (s *MessageService) ReadConversation(ctx context.Context, requesterID, otherID string) ([]domain.Message, error) {
	page, hit, err := s.cache.GetPage(requesterID, otherID)
	if err != nil {
		s.log.Warn("cache read failed, falling back to store",
			"requester_id", requesterID, "other_id", otherID, "error", err)
	}
	if hit {
		return page, nil
	}

	messages, err := s.messages.GetConversation(ctx, requesterID, otherID, s.limit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.PutPage(requesterID, otherID, messages); err != nil {
		s.log.Warn("cache population failed",
			"requester_id", requesterID, "other_id", otherID, "error", err)
	}
	return messages, nil
}
