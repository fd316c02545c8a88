//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"courier/domain"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type IMessageRepository interface {
	StoreMessage(ctx context.Context, senderID, receiverID, content string) (domain.Message, error)
	GetConversation(ctx context.Context, userA, userB string, limit int) ([]domain.Message, error)
}

type MessageRepository struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewMessageRepository(db *gorm.DB, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, log: log}
}

// messageRecord is the persisted shape of a message. CreatedAt is stored as
// UnixNano so that ordering is exact integer comparison, never dependent on
// the driver's textual time format.
type messageRecord struct {
	ID         string `gorm:"primaryKey"`
	Content    string `gorm:"not null"`
	SenderID   string `gorm:"index:idx_messages_pair"`
	ReceiverID string `gorm:"index:idx_messages_pair"`
	CreatedAt  int64  `gorm:"index"`
}

func (messageRecord) TableName() string { return "messages" }

// StoreMessage assigns the message its identity and creation time, then
// persists it synchronously. On error the caller must assume nothing was
// saved. There is no update or delete path: the log is append-only.
func (m MessageRepository) StoreMessage(ctx context.Context, senderID, receiverID, content string) (domain.Message, error) {
	message := domain.Message{
		ID:         uuid.New(),
		Content:    content,
		SenderID:   senderID,
		ReceiverID: receiverID,
		CreatedAt:  time.Now().UTC(),
	}
	record := messageRecord{
		ID:         message.ID.String(),
		Content:    message.Content,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		CreatedAt:  message.CreatedAt.UnixNano(),
	}
	if err := m.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.Message{}, fmt.Errorf("store message: %w", err)
	}
	return message, nil
}

// GetConversation returns up to limit messages exchanged between the two
// users, newest first. The argument order does not matter: both directions
// of the pair are matched.
func (m MessageRepository) GetConversation(ctx context.Context, userA, userB string, limit int) ([]domain.Message, error) {
	var records []messageRecord
	err := m.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	// A row that cannot be mapped back to the domain is skipped, not fatal:
	// one mangled record must not take the whole conversation down with it.
	return lo.FilterMap(records, func(record messageRecord, _ int) (domain.Message, bool) {
		message, err := toMessage(record)
		if err != nil {
			m.log.Warn("skipping unreadable message row", "row_id", record.ID, "error", err)
			return domain.Message{}, false
		}
		return message, true
	}), nil
}

func toMessage(record messageRecord) (domain.Message, error) {
	parsedID, err := uuid.Parse(record.ID)
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{
		ID:         parsedID,
		Content:    record.Content,
		SenderID:   record.SenderID,
		ReceiverID: record.ReceiverID,
		CreatedAt:  time.Unix(0, record.CreatedAt).UTC(),
	}, nil
}

// AutoMigrate creates the relational schema for all persisted records.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&messageRecord{}, &userRecord{})
}
