package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/edgard/mindfulbot/internal/chat"
	"github.com/edgard/mindfulbot/internal/database"
	"github.com/edgard/mindfulbot/internal/report"
)

const maxBodyBytes = 64 << 10

type handler struct {
	deps Deps
	log  *slog.Logger
}

type sendRequest struct {
	Content string `json:"content"`
}

type sendResponse struct {
	UserMessage database.Message  `json:"userMessage"`
	Reply       *database.Message `json:"reply"`
}

type historyResponse struct {
	ConversationID string             `json:"conversationId"`
	Messages       []database.Message `json:"messages"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Store.Ping(r.Context()); err != nil {
		h.log.ErrorContext(r.Context(), "Health check failed", "error", err)
		respondError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleSend(w http.ResponseWriter, r *http.Request) {
	conversationID, ok := conversationParam(w, r)
	if !ok {
		return
	}

	var payload sendRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exchange, err := h.deps.Chat.Send(r.Context(), conversationID, payload.Content)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, chat.ErrMessageTooLong):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.ErrorContext(r.Context(), "Failed to send message", "error", err, "conversation_id", conversationID)
			respondError(w, http.StatusInternalServerError, "failed to store message")
		}
		return
	}

	ctx := r.Context()
	if h.deps.ReplyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.deps.ReplyTimeout)
		defer cancel()
	}

	reply, err := exchange.Reply.Wait(ctx)
	if err != nil {
		// The user message is stored; the reply will still land in the history.
		h.log.WarnContext(r.Context(), "Reply not ready", "error", err, "conversation_id", conversationID,
			"message_id", exchange.UserMessage.ID)
		respondJSON(w, http.StatusAccepted, sendResponse{UserMessage: exchange.UserMessage})
		return
	}

	respondJSON(w, http.StatusCreated, sendResponse{UserMessage: exchange.UserMessage, Reply: reply})
}

func (h *handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	conversationID, ok := conversationParam(w, r)
	if !ok {
		return
	}

	messages, err := h.deps.Chat.History(r.Context(), conversationID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "Failed to load history", "error", err, "conversation_id", conversationID)
		respondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	if messages == nil {
		messages = []database.Message{}
	}

	respondJSON(w, http.StatusOK, historyResponse{ConversationID: conversationID, Messages: messages})
}

func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	conversationID, ok := conversationParam(w, r)
	if !ok {
		return
	}

	summary, err := h.deps.Reports.Recompute(r.Context(), conversationID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "Failed to compute report", "error", err, "conversation_id", conversationID)
		respondError(w, http.StatusInternalServerError, "failed to compute report")
		return
	}

	respondJSON(w, http.StatusOK, report.Build(summary, h.deps.Tables.Recommendations))
}

// ConversationID maps an API path id to its conversation in the message
// store. API conversations live in their own namespace so a path id can
// never address another transport's conversation.
func ConversationID(pathID string) string {
	return "http:" + pathID
}

func conversationParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "conversationID"))
	if id == "" {
		respondError(w, http.StatusBadRequest, "conversation id is required")
		return "", false
	}
	return ConversationID(id), true
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
