package driving

import (
	"context"

	"github.com/custodia-labs/docfinder/internal/core/domain"
)

// ChatService answers a chat message, either with matching catalog
// documents or with conversational text.
type ChatService interface {
	// Chat handles one message. History is the caller-supplied prior
	// conversation, oldest first. Errors wrap domain.ErrStorage when the
	// catalog query fails; reasoning-service failures never surface here.
	Chat(ctx context.Context, message string, history []domain.ChatTurn) (*domain.ChatResponse, error)
}
