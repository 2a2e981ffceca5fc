package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/custodia-labs/docfinder/internal/core/domain"
	"github.com/custodia-labs/docfinder/internal/core/ports/driven"
	"github.com/custodia-labs/docfinder/internal/core/ports/driving"
)

// Ensure chatService implements ChatService
var _ driving.ChatService = (*chatService)(nil)

// Fixed chat replies
const (
	MessageNoResults = "I couldn't find any documents that match your request. Please try different terms."
	MessageFallback  = "I'm not sure how to help with that. Could you tell me which product or document type you're looking for?"
)

// ChatServiceConfig holds dependencies for the ChatService
type ChatServiceConfig struct {
	Store     driven.CatalogStore
	Extractor *IntentExtractor
	Filters   *FilterBuilder
	Logger    *zap.Logger
	Limit     int
}

// chatService implements the ChatService interface
type chatService struct {
	catalog   *catalogSearcher
	extractor *IntentExtractor
	logger    *zap.Logger
}

// NewChatService creates a new ChatService
func NewChatService(cfg ChatServiceConfig) driving.ChatService {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &chatService{
		catalog:   newCatalogSearcher(cfg.Store, cfg.Filters, cfg.Limit, cfg.Logger),
		extractor: cfg.Extractor,
		logger:    cfg.Logger,
	}
}

// Chat answers one user message. Either the reasoning service replies
// conversationally, or the message becomes a catalog search.
func (s *chatService) Chat(ctx context.Context, message string, history []domain.ChatTurn) (*domain.ChatResponse, error) {
	ext := s.extractor.Extract(ctx, message, history)

	if ext.Kind == domain.ExtractionConversation {
		msg := ext.Message
		if msg == "" {
			msg = MessageFallback
		}
		return &domain.ChatResponse{Type: domain.ResponseConversation, Message: msg}, nil
	}

	if ext.Degraded {
		s.logger.Info("chat search degraded to keywords", zap.Strings("keywords", ext.Intent.Keywords))
	}

	records, err := s.catalog.search(ctx, ext.Intent)
	if err != nil {
		return nil, err
	}

	msg := MessageNoResults
	if len(records) > 0 {
		msg = fmt.Sprintf("I found %d document(s) for you:", len(records))
	}
	return &domain.ChatResponse{
		Type:    domain.ResponseDocuments,
		Message: msg,
		Data:    records,
	}, nil
}
