//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"context"
	goerrors "errors"
	"fmt"
	"time"

	"courier/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IUserRepository interface {
	CreateUser(ctx context.Context, username, email, hashedPassword string) (string, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	Exists(ctx context.Context, userID string) (bool, error)
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) IUserRepository {
	return &UserRepository{db: db}
}

// User is the domain-friendly representation of a user in the repository
// layer. Profiles are immutable within the scope of the messaging core.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type userRecord struct {
	ID           string `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    int64
}

func (userRecord) TableName() string { return "users" }

// CreateUser persists a new user and returns the generated ID. Username and
// email must both be unique; a clash on either yields ErrUserAlreadyExists.
func (u UserRepository) CreateUser(ctx context.Context, username, email, hashedPassword string) (string, error) {
	var count int64
	err := u.db.WithContext(ctx).Model(&userRecord{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	if count > 0 {
		return "", errors.ErrUserAlreadyExists
	}

	record := userRecord{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().UTC().Unix(),
	}
	if err := u.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	return record.ID, nil
}

// GetUserByEmail retrieves a user by email.
func (u UserRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var record userRecord
	err := u.db.WithContext(ctx).Where("email = ?", email).First(&record).Error
	if err != nil {
		return User{}, err // gorm.ErrRecordNotFound maps to ErrInvalidCredentials upstream
	}
	return toUser(record), nil
}

// Exists reports whether a user with the given ID is registered. Used by the
// delivery router to validate receivers before persisting anything.
func (u UserRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := u.db.WithContext(ctx).Model(&userRecord{}).
		Where("id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("user exists: %w", err)
	}
	return count > 0, nil
}

// IsNotFound reports whether err is the store's record-absent error.
func IsNotFound(err error) bool {
	return goerrors.Is(err, gorm.ErrRecordNotFound)
}

func toUser(record userRecord) User {
	return User{
		ID:           record.ID,
		Username:     record.Username,
		Email:        record.Email,
		PasswordHash: record.PasswordHash,
		CreatedAt:    time.Unix(record.CreatedAt, 0).UTC(),
	}
}
