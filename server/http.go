// Package server exposes the HTTP and websocket surface of the messaging
// backend. It contains no routing-independent logic: every operation is
// delegated to the service layer.
package server

import (
	"log/slog"
	"strings"
	"time"

	"courier/auth"
	"courier/errors"
	"courier/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type Server struct {
	app      *fiber.App
	auths    services.IAuthService
	messages services.IMessageService
	sessions services.ISessionService
	log      *slog.Logger

	connectionBufferSize int
	deliveryTimeout      time.Duration
}

func New(
	log *slog.Logger,
	auths services.IAuthService,
	messages services.IMessageService,
	sessions services.ISessionService,
	connectionBufferSize int,
	deliveryTimeout time.Duration,
) *Server {
	s := &Server{
		app:                  fiber.New(fiber.Config{DisableStartupMessage: true}),
		auths:                auths,
		messages:             messages,
		sessions:             sessions,
		log:                  log,
		connectionBufferSize: connectionBufferSize,
		deliveryTimeout:      deliveryTimeout,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Post("/auth/register", s.handleRegister)
	s.app.Post("/auth/login", s.handleLogin)

	s.app.Get("/messages/:userId", s.requireAuth, s.handleGetConversation)
	s.app.Post("/messages", s.requireAuth, s.handlePostMessage)

	s.app.Use("/ws", upgradeRequired)
	s.app.Get("/ws", s.websocketHandler())
}

func (s *Server) Listen(address string) error {
	return s.app.Listen(address)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// requireAuth resolves the Bearer token and stores the caller's user id in
// the request locals.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	const prefix = "Bearer "
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, prefix) {
		return fail(c, errors.ErrInvalidToken)
	}

	claims, err := auth.ValidateToken(strings.TrimPrefix(header, prefix))
	if err != nil {
		return fail(c, errors.ErrInvalidToken)
	}
	c.Locals("userID", claims.UserID)
	return c.Next()
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body"})
	}

	token, err := s.auths.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"token":   token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body"})
	}

	token, user, err := s.auths.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Logged in successfully",
		"token":   token,
		"user":    user,
	})
}

type sendRequest struct {
	ReceiverID string `json:"receiverId" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

func (s *Server) handlePostMessage(c *fiber.Ctx) error {
	var req sendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Receiver and content are required"})
	}

	senderID := c.Locals("userID").(string)
	message, err := s.messages.Send(c.Context(), senderID, req.ReceiverID, req.Content)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

func (s *Server) handleGetConversation(c *fiber.Ctx) error {
	requesterID := c.Locals("userID").(string)
	otherID := c.Params("userId")

	page, err := s.messages.ReadConversation(c.Context(), requesterID, otherID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(errors.HTTPStatus(err)).JSON(fiber.Map{"message": err.Error()})
}
