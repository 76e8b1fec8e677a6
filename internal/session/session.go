// Package session owns the per-session chat transcript and the submit
// operation the display layer calls.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"college-chatbot/internal/common/logger"
	"college-chatbot/internal/common/observability"
	"college-chatbot/internal/models"
	"college-chatbot/internal/router"
)

// Session holds one conversation. The transcript is an explicit value owned
// by the session, never process-global: each session gets its own at open,
// discarded at close. The router behind it is immutable shared-read state.
type Session struct {
	id     uuid.UUID
	router *router.Router
	obs    *observability.Observability
	logger logger.Logger

	mu         sync.Mutex
	transcript []models.Message
}

func newSession(r *router.Router, greeting string, obs *observability.Observability, log logger.Logger) *Session {
	id := uuid.New()
	s := &Session{
		id:     id,
		router: r,
		obs:    obs,
		logger: log.WithFields(map[string]interface{}{"sessionId": id.String()}),
	}
	if greeting != "" {
		s.transcript = append(s.transcript, models.Message{
			Speaker: models.SpeakerBot,
			Text:    greeting,
			At:      time.Now().UTC(),
		})
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Submit routes one utterance and appends the (user, bot) turn pair to the
// transcript. On a router error nothing is appended and the error surfaces so
// the display layer can show an error state instead of a blank bot turn.
func (s *Session) Submit(ctx context.Context, utterance string) (string, error) {
	start := time.Now()

	reply, route, err := s.router.Reply(ctx, utterance)
	if err != nil {
		s.logger.Error("submit failed", map[string]interface{}{
			"error": err.Error(),
		})
		return "", err
	}

	now := time.Now().UTC()
	s.mu.Lock()
	s.transcript = append(s.transcript,
		models.Message{Speaker: models.SpeakerUser, Text: utterance, At: now},
		models.Message{Speaker: models.SpeakerBot, Text: reply, At: now},
	)
	s.mu.Unlock()

	if s.obs != nil {
		s.obs.RecordRequest(ctx, string(route))
		s.obs.RecordRequestDuration(ctx, time.Since(start), string(route))
	}

	s.logger.Debug("utterance answered", map[string]interface{}{
		"route": string(route),
	})
	return reply, nil
}

// Transcript returns a copy of the transcript in append order.
func (s *Session) Transcript() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}
