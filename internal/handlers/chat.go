package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"genie-backend/internal/models"
	"genie-backend/internal/services"
	"genie-backend/internal/store"
)

type ChatHandler struct {
	adapter *services.Adapter
	convLog store.ConversationLog
	timeout time.Duration
}

func NewChatHandler(adapter *services.Adapter, conversationLog store.ConversationLog, timeout time.Duration) *ChatHandler {
	return &ChatHandler{
		adapter: adapter,
		convLog: conversationLog,
		timeout: timeout,
	}
}

// Home reports that the service is up.
func (h *ChatHandler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Chatbot is running!"})
}

// Health is the machine-readable liveness check.
func (h *ChatHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "app": "Genie"})
}

// Echo answers without calling any provider.
func (h *ChatHandler) Echo(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	json.NewDecoder(r.Body).Decode(&req)

	if req.Message == "" {
		writeJSON(w, http.StatusOK, models.EchoResponse{Reply: "Please send me a message."})
		return
	}
	writeJSON(w, http.StatusOK, models.EchoResponse{Reply: "You said: " + req.Message})
}

// Chat forwards the message to the provider and records the exchange.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "no message provided"})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "no message provided"})
		return
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = "conv-" + time.Now().UTC().Format(time.RFC3339)
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.adapter.Reply(ctx, message, conversationID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Gemini request failed: " + err.Error()})
		return
	}

	// Both turns go in as one append so a failure cannot orphan the user turn.
	err = h.convLog.Append(r.Context(), conversationID,
		store.Turn{Role: store.RoleUser, Text: message},
		store.Turn{Role: store.RoleAssistant, Text: result.Reply},
	)
	if err != nil {
		log.Printf("WARNING: failed to record conversation %s: %v", conversationID, err)
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{
		Reply:          result.Reply,
		ConversationID: conversationID,
	})
}

// History returns the recorded turns of one conversation. Unknown ids yield
// an empty list rather than 404.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")

	turns, err := h.convLog.Get(r.Context(), conversationID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load conversation"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"conversation_id": conversationID,
		"turns":           turns,
	})
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
