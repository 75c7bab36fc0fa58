package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// ContactNotifier forwards contact-form submissions to the admin inbox.
type ContactNotifier interface {
	ContactMessage(ctx context.Context, name, email, message string) error
}

type ContactHandler struct {
	notifier ContactNotifier
}

func NewContactHandler(notifier ContactNotifier) *ContactHandler {
	return &ContactHandler{notifier: notifier}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.Email) == "" || strings.TrimSpace(body.Message) == "" {
		writeError(w, http.StatusBadRequest, "name, email and message are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := h.notifier.ContactMessage(ctx, body.Name, body.Email, body.Message); err != nil {
		writeError(w, http.StatusBadGateway, "failed to send message")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
