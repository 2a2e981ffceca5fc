package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-labs/docfinder/internal/core/domain"
)

// Client-facing messages
const (
	msgNoMessage    = "No message provided."
	msgNoQuery      = "No query provided."
	msgNoURL        = "No URL provided."
	msgChatFailed   = "An error occurred while processing your request."
	msgSearchFailed = "search failed"
	msgInvalidBody  = "invalid request body"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

// readyTimeout bounds each dependency ping in /ready
const readyTimeout = 3 * time.Second

//go:embed web/index.html
var indexHTML []byte

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse represents a simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// ReadyResponse reports per-dependency readiness
type ReadyResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// VersionResponse represents the API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// ChatRequest is the body of POST /chat
type ChatRequest struct {
	Message string            `json:"message"`
	History []domain.ChatTurn `json:"history,omitempty"`
}

// ConversationResponse is a chat reply that carries no documents
type ConversationResponse struct {
	Type    domain.ResponseType `json:"type"`
	Message string              `json:"message"`
}

// SearchRequest is the body of POST /search
type SearchRequest struct {
	Query string `json:"query" example:"log360 datasheet"`
}

// SummarizeRequest is the body of POST /summarize
type SummarizeRequest struct {
	URL string `json:"url" example:"https://www.example.com/docs/datasheet.pdf"`
}

// SummarizeResponse is the body returned by POST /summarize
type SummarizeResponse struct {
	Summary string `json:"summary"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns ok while the process is serving
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// handleReady pings the catalog and, when configured, the summary cache.
// The catalog is required; a failing cache only degrades readiness.
//
// @Summary      Readiness check
// @Description  Pings the catalog and the optional summary cache
// @Tags         Health
// @Produce      json
// @Success      200  {object}  ReadyResponse
// @Failure      503  {object}  ReadyResponse  "Catalog unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	resp := ReadyResponse{Status: "ready", Components: map[string]string{}}
	status := http.StatusOK

	if s.catalog != nil {
		if err := ping(r.Context(), s.catalog); err != nil {
			s.logger.Warn("catalog not ready", zap.Error(err))
			resp.Components["catalog"] = "unhealthy"
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
		} else {
			resp.Components["catalog"] = "healthy"
		}
	}

	if s.cache != nil {
		if err := ping(r.Context(), s.cache); err != nil {
			s.logger.Warn("summary cache not ready", zap.Error(err))
			resp.Components["cache"] = "unhealthy"
			if status == http.StatusOK {
				resp.Status = "degraded"
			}
		} else {
			resp.Components["cache"] = "healthy"
		}
	}

	writeJSON(w, status, resp)
}

func ping(ctx context.Context, p Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()
	return p.Ping(ctx)
}

// handleVersion godoc
// @Summary      Get API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: s.version})
}

// UI

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexHTML)
}

// Assistant endpoints

// handleChat answers one chat message with documents or conversational text
//
// @Summary      Chat with the assistant
// @Description  Extracts a document intent from the message and returns matching catalog records, or a conversational reply
// @Tags         Assistant
// @Accept       json
// @Produce      json
// @Param        request  body      ChatRequest  true  "Message and recent history"
// @Success      200      {object}  domain.ChatResponse
// @Failure      400      {object}  ErrorResponse  "Invalid body or empty message"
// @Failure      500      {object}  ErrorResponse  "Catalog query failed"
// @Router       /chat [post]
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, msgNoMessage)
		return
	}

	resp, err := s.chatService.Chat(r.Context(), req.Message, req.History)
	if err != nil {
		s.logger.Error("chat failed",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.Bool("storage", errors.Is(err, domain.ErrStorage)),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, msgChatFailed)
		return
	}

	if resp.Type == domain.ResponseConversation {
		writeJSON(w, http.StatusOK, ConversationResponse{Type: resp.Type, Message: resp.Message})
		return
	}
	if resp.Data == nil {
		resp.Data = []*domain.DocumentRecord{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSearch returns matching catalog records for a single query
//
// @Summary      Search the catalog
// @Tags         Assistant
// @Accept       json
// @Produce      json
// @Param        request  body      SearchRequest  true  "Search query"
// @Success      200      {array}   domain.DocumentRecord
// @Failure      400      {object}  ErrorResponse  "Invalid body or empty query"
// @Failure      500      {object}  ErrorResponse  "Catalog query failed"
// @Router       /search [post]
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, msgNoQuery)
		return
	}

	records, err := s.searchService.Search(r.Context(), req.Query)
	if err != nil {
		s.logger.Error("search failed",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, msgSearchFailed)
		return
	}
	if records == nil {
		records = []*domain.DocumentRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// handleSummarize summarizes the document behind a link. Fetch failures and
// policy rejections are returned as summary text with status 200.
//
// @Summary      Summarize a document
// @Tags         Assistant
// @Accept       json
// @Produce      json
// @Param        request  body      SummarizeRequest  true  "Document link"
// @Success      200      {object}  SummarizeResponse
// @Failure      400      {object}  SummarizeResponse  "Missing url"
// @Router       /summarize [post]
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req SummarizeRequest
	if err := decodeJSON(w, r, &req); err != nil || strings.TrimSpace(req.URL) == "" {
		writeJSON(w, http.StatusBadRequest, SummarizeResponse{Summary: msgNoURL})
		return
	}

	summary := s.summaryService.Summarize(r.Context(), strings.TrimSpace(req.URL))
	writeJSON(w, http.StatusOK, SummarizeResponse{Summary: summary})
}

// Helper functions

// decodeJSON reads a bounded JSON body. An empty body decodes as the zero
// value so that missing fields are reported by the field checks.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
