package server

import (
	"context"
	"encoding/json"
	"time"

	"courier/domain"
	"courier/sink"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// inboundFrame is what a connected client may emit over the socket.
type inboundFrame struct {
	Type       string `json:"type"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

// outboundFrame wraps an event pushed to exactly one live connection.
type outboundFrame struct {
	Type    string         `json:"type"`
	Payload messagePayload `json:"payload"`
}

// messagePayload mirrors the delivery event: the receiver is implicit, it
// is the connection the frame is written to.
type messagePayload struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	CreatedAt time.Time `json:"createdAt"`
}

func upgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// websocketHandler drives one connection's lifecycle: authenticate the
// handshake, register presence, pump pushed events out and route inbound
// send frames, then deregister on any exit path.
func (s *Server) websocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		connectionSink := sink.NewConnectionSink(s.connectionBufferSize, s.deliveryTimeout)
		defer connectionSink.Close()

		session, err := s.sessions.Connect(conn.Query("token"), connectionSink)
		if err != nil {
			s.log.Warn("websocket handshake rejected", "error", err)
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "authentication error"))
			_ = conn.Close()
			return
		}
		defer s.sessions.Disconnect(session)

		// Write pump. The websocket connection tolerates a single writer,
		// so every outbound frame goes through this goroutine.
		go func() {
			for {
				select {
				case <-connectionSink.Done():
					return
				case message := <-connectionSink.Events:
					frame := outboundFrame{Type: "message", Payload: toPayload(message)}
					data, err := json.Marshal(frame)
					if err != nil {
						s.log.Error("encode outbound frame", "error", err)
						continue
					}
					if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
						s.log.Warn("websocket write failed",
							"user_id", session.UserID, "error", err)
						return
					}
				}
			}
		}()

		// Read loop. Blocks until the client goes away; the deferred calls
		// above take care of presence and the write pump.
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				s.log.Warn("malformed inbound frame", "user_id", session.UserID, "error", err)
				continue
			}
			if frame.Type != "send" {
				continue
			}

			if _, err := s.messages.Send(context.Background(), session.UserID,
				frame.ReceiverID, frame.Content); err != nil {
				s.log.Warn("websocket send rejected",
					"user_id", session.UserID, "error", err)
			}
		}
	})
}

func toPayload(message domain.Message) messagePayload {
	return messagePayload{
		ID:        message.ID.String(),
		Content:   message.Content,
		Sender:    message.SenderID,
		CreatedAt: message.CreatedAt,
	}
}
