package services

import (
	"context"
	"fmt"
	"time"

	"courier/auth"
	"courier/errors"
	"courier/repositories"
)

type IAuthService interface {
	Register(ctx context.Context, username, email, password string) (Token, error)
	Login(ctx context.Context, email, password string) (Token, repositories.User, error)
}

type AuthService struct {
	userRepository    repositories.IUserRepository
	authTokenDuration time.Duration
}

type Token string

func NewAuthService(repo repositories.IUserRepository, authTokenDuration time.Duration) IAuthService {
	return &AuthService{userRepository: repo, authTokenDuration: authTokenDuration}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (Token, error) {
	valReq := auth.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}

	// 1. Validate business rules before any expensive cryptographic work.
	if err := auth.ValidateRegister(valReq); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidPassword, err)
	}

	// 2. Hash the password here so the repository never sees it in clear.
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hashing failed: %w", err)
	}

	// 3. Persist the user; propagates ErrUserAlreadyExists on a taken
	// username or email.
	userID, err := s.userRepository.CreateUser(ctx, username, email, hashedPassword)
	if err != nil {
		return "", err
	}

	// 4. Issue the initial session token.
	token, err := auth.GenerateToken(userID, s.authTokenDuration)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}

	return Token(token), nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (Token, repositories.User, error) {
	// Generic error on every failure path to prevent user enumeration.
	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		return "", repositories.User{}, errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", repositories.User{}, errors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.authTokenDuration)
	if err != nil {
		return "", repositories.User{}, errors.ErrTokenGeneration
	}

	return Token(token), user, nil
}
