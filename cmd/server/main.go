package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"courier/auth"
	"courier/internal"
	"courier/repositories"
	"courier/runtime"
	"courier/server"
	"courier/services"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Exit codes to provide meaningful status to the operating system or
// service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper. Its only responsibility is
	// to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so every defer (database cleanup included)
// executes before the process exits.
func run() (int, error) {
	// 1. Configuration & logger
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	logger := logs.GetLoggerFromString(config.LogLevel)

	if config.JWTSecret != "" {
		auth.SetSigningKey(config.JWTSecret)
	}

	// 2. Durable store (sqlite via gorm)
	db, err := gorm.Open(sqlite.Open(config.DBFilepath), &gorm.Config{})
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	if err := repositories.AutoMigrate(db); err != nil {
		return exitRuntime, fmt.Errorf("migration failed: %w", err)
	}
	defer func() {
		logger.Info("Closing sqlite...")
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	// 3. Volatile store (badger) shared by presence and the conversation
	// cache, disjoint key prefixes.
	kv, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.ERROR))
	if err != nil {
		return exitRuntime, fmt.Errorf("presence store opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing badger...")
		_ = kv.Close()
	}()

	// 4. Repositories & services
	registry := runtime.NewRegistry()
	messageRepository := repositories.NewMessageRepository(db, logger)
	userRepository := repositories.NewUserRepository(db)
	presenceRepository := repositories.NewPresenceRepository(kv)
	conversationCache := repositories.NewConversationCache(kv, config.CacheTTL)

	authService := services.NewAuthService(userRepository, config.AuthTokenDuration)
	messageService := services.NewMessageService(
		logger, messageRepository, userRepository, conversationCache,
		presenceRepository, registry, config.LimitMessages,
	)
	sessionService := services.NewSessionService(
		logger,
		func(token string) (string, error) {
			claims, err := auth.ValidateToken(token)
			if err != nil {
				return "", err
			}
			return claims.UserID, nil
		},
		presenceRepository, registry, config.PresenceTTL,
	)

	srv := server.New(logger, authService, messageService, sessionService,
		config.ConnectionBufferSize, config.DeliveryTimeout)

	// 5. Context & signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)

	go func() {
		logger.Info("Server listening", "address", address)
		if err := srv.Listen(address); err != nil {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
		if err := srv.Shutdown(); err != nil {
			return exitRuntime, fmt.Errorf("shutdown error: %w", err)
		}
		return exitOK, nil
	case err := <-errChan:
		return exitRuntime, err
	}
}
