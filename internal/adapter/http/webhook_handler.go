package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"order-relay/internal/adapter/logger"
	"order-relay/internal/domain"
	"order-relay/internal/interfaces"
)

type WebhookHandler struct {
	router interfaces.EventRouter
	logger logger.Logger
}

func NewWebhookHandler(router interfaces.EventRouter, logger logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		router: router,
		logger: logger,
	}
}

type WebhookRequest struct {
	Destination string         `json:"destination,omitempty"`
	Events      []domain.Event `json:"events"`
}

// HandleWebhook processes one delivery batch. It always acknowledges with
// 200: per-event failures are logged and swallowed so the platform does
// not redeliver, and a failing event never blocks the rest of the batch.
func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req WebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("webhook_decode_failed", "Ignoring malformed webhook body", "", nil, err)
		w.WriteHeader(http.StatusOK)
		return
	}

	for _, event := range req.Events {
		h.handleEvent(r, event)
	}

	w.WriteHeader(http.StatusOK)
}

func (h *WebhookHandler) handleEvent(r *http.Request, event domain.Event) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("event_panic_recovered", "Panic while handling event", event.WebhookEventID, nil,
				fmt.Errorf("%v", rec))
		}
	}()

	if err := h.router.Route(r.Context(), event); err != nil {
		h.logger.Error("event_failed", "Event handling failed", event.WebhookEventID, map[string]any{
			"source_type": string(event.Source.Type),
		}, err)
	}
}
