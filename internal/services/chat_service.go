package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"trippilot/skyview/internal/constants"
	"trippilot/skyview/internal/logging"
	"trippilot/skyview/internal/metrics"
	"trippilot/skyview/internal/models/dtos"
	"trippilot/skyview/internal/models/entities"
	gormModels "trippilot/skyview/internal/models/gorm"
)

var ErrEmptyMessage = errors.New("message cannot be empty")

// ChatBackend forwards a message and its UI context to the assistant.
type ChatBackend interface {
	Chat(ctx context.Context, message, uiContext string) (string, error)
}

// ChatRecorder persists chat exchanges without blocking.
type ChatRecorder interface {
	RecordChat(rec gormModels.ChatQuery) bool
}

type ChatService struct {
	backend  ChatBackend
	recorder ChatRecorder
	metrics  *metrics.MetricsRegistry
}

// NewChatService builds the service. recorder and m may be nil.
func NewChatService(backend ChatBackend, recorder ChatRecorder, m *metrics.MetricsRegistry) *ChatService {
	return &ChatService{backend: backend, recorder: recorder, metrics: m}
}

// BuildContext describes what the user is looking at.
func BuildContext(sel entities.Selection) string {
	f := sel.Flight
	if f == nil {
		return constants.ChatNoSelectionContext
	}
	const indent = " \n            "
	return fmt.Sprintf("User has selected Flight %s (%s).", f.FlightNumber, f.Airline) +
		indent + fmt.Sprintf("Route: %s to %s.", f.Origin, f.Destination) +
		indent + fmt.Sprintf("Status: %s.", f.Status) +
		indent + fmt.Sprintf("Altitude: %sft.", formatNumber(f.Altitude)) +
		indent + fmt.Sprintf("Speed: %sknots.", formatNumber(f.Speed))
}

// Send forwards message with the selection context. Backend failures are
// answered with a fallback reply, never returned as errors.
func (s *ChatService) Send(ctx context.Context, viewID, message string, sel entities.Selection) (*dtos.ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	uiContext := BuildContext(sel)
	now := time.Now()

	reply, err := s.backend.Chat(ctx, message, uiContext)
	result := "success"
	switch {
	case err != nil:
		logging.Warn("Chat backend failed", "view_id", viewID, "error", err.Error())
		reply = constants.ChatConnectionError
		result = "failure"
	case strings.TrimSpace(reply) == "":
		reply = constants.ChatEmptyReply
		result = "empty"
	}

	if s.metrics != nil {
		s.metrics.ChatRequestsTotal.WithLabelValues(result).Inc()
	}
	if s.recorder != nil {
		s.recorder.RecordChat(gormModels.ChatQuery{
			ViewID:  viewID,
			Message: message,
			Context: uiContext,
			Reply:   reply,
			Failed:  result != "success",
		})
	}

	return &dtos.ChatReply{
		Message: dtos.ChatMessage{ID: uuid.New().String(), Role: "user", Content: message, Timestamp: now},
		Reply:   dtos.ChatMessage{ID: uuid.New().String(), Role: "assistant", Content: reply, Timestamp: time.Now()},
		Context: uiContext,
	}, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
