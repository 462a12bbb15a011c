package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rishabhsai/RishBOT/internal/config"
	"github.com/rishabhsai/RishBOT/internal/domain"
	"github.com/rishabhsai/RishBOT/internal/observability"
)

const defaultMaxBodyBytes = 20 << 20

// Handler handles HTTP requests.
type Handler struct {
	relay        *domain.RelayService
	maxBodyBytes int64
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(relay *domain.RelayService, cfg *config.ServerConfig) *Handler {
	maxBody := int64(defaultMaxBodyBytes)
	if cfg != nil && cfg.MaxBodyBytes > 0 {
		maxBody = cfg.MaxBodyBytes
	}

	return &Handler{
		relay:        relay,
		maxBodyBytes: maxBody,
	}
}

// HandleSolve processes problem-solving requests.
func (h *Handler) HandleSolve(w http.ResponseWriter, r *http.Request) {
	var req domain.SolveRequest
	ctx, ok := h.begin(w, r, domain.EndpointSolve, &req)
	if !ok {
		return
	}

	solution, err := h.relay.Solve(ctx, &req)
	if err != nil {
		h.fail(ctx, w, err, "Failed to solve problem")
		return
	}

	h.respond(ctx, w, http.StatusOK, map[string]string{"solution": solution})
}

// HandleWrite processes essay-writing requests.
func (h *Handler) HandleWrite(w http.ResponseWriter, r *http.Request) {
	var req domain.WriteRequest
	ctx, ok := h.begin(w, r, domain.EndpointWrite, &req)
	if !ok {
		return
	}

	essay, err := h.relay.Write(ctx, &req)
	if err != nil {
		h.fail(ctx, w, err, "Failed to generate essay")
		return
	}

	h.respond(ctx, w, http.StatusOK, map[string]string{"essay": essay})
}

// HandleModify processes text-rewriting requests.
func (h *Handler) HandleModify(w http.ResponseWriter, r *http.Request) {
	var req domain.ModifyRequest
	ctx, ok := h.begin(w, r, domain.EndpointModify, &req)
	if !ok {
		return
	}

	modified, err := h.relay.Modify(ctx, &req)
	if err != nil {
		h.fail(ctx, w, err, "Failed to modify text")
		return
	}

	h.respond(ctx, w, http.StatusOK, map[string]string{"modifiedText": modified})
}

// HandleExpandStep processes step expansion and follow-up requests.
// The response key depends on which request shape was sent.
func (h *Handler) HandleExpandStep(w http.ResponseWriter, r *http.Request) {
	var req domain.ExpandStepRequest
	ctx, ok := h.begin(w, r, domain.EndpointExpandStep, &req)
	if !ok {
		return
	}

	expanded, err := h.relay.ExpandStep(ctx, &req)
	if err != nil {
		h.fail(ctx, w, err, "Failed to expand step")
		return
	}

	key := "expandedContent"
	if req.IsFollowUp() {
		key = "expandedStep"
	}

	h.respond(ctx, w, http.StatusOK, map[string]string{key: expanded})
}

// HandleChat processes tutoring chat requests.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	ctx, ok := h.begin(w, r, domain.EndpointChat, &req)
	if !ok {
		return
	}

	response, err := h.relay.Chat(ctx, &req)
	if err != nil {
		h.fail(ctx, w, err, "Failed to process chat message")
		return
	}

	h.respond(ctx, w, http.StatusOK, map[string]string{"response": response})
}

// HandleAnalyzeScreen extracts text from a screenshot.
func (h *Handler) HandleAnalyzeScreen(w http.ResponseWriter, r *http.Request) {
	var req domain.AnalyzeScreenRequest
	ctx, ok := h.begin(w, r, domain.EndpointAnalyzeScreen, &req)
	if !ok {
		return
	}

	result, err := h.relay.AnalyzeScreen(ctx, &req)
	if err != nil {
		h.fail(ctx, w, err, "Failed to analyze screen content")
		return
	}

	h.respond(ctx, w, http.StatusOK, result)
}

// HandleScreenChat answers questions about extracted screen text.
func (h *Handler) HandleScreenChat(w http.ResponseWriter, r *http.Request) {
	var req domain.ScreenChatRequest
	ctx, ok := h.begin(w, r, domain.EndpointScreenChat, &req)
	if !ok {
		return
	}

	response, err := h.relay.ScreenChat(ctx, &req)
	if err != nil {
		h.fail(ctx, w, err, "Failed to get AI response")
		return
	}

	h.respond(ctx, w, http.StatusOK, map[string]string{"response": response})
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.respond(r.Context(), w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// begin enforces POST and decodes the JSON body into dst.
// It writes the error response itself and reports false when the request
// must not proceed.
func (h *Handler) begin(
	w http.ResponseWriter,
	r *http.Request,
	endpoint domain.Endpoint,
	dst interface{},
) (context.Context, bool) {
	ctx := observability.WithEndpoint(r.Context(), string(endpoint))

	// Early validation.
	if r.Method != http.MethodPost {
		h.respondError(ctx, w, http.StatusMethodNotAllowed, "method not allowed")
		return ctx, false
	}

	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		logger := observability.FromContext(ctx)

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Info("request body too large", observability.Int64("limit", tooLarge.Limit))
			h.respondError(ctx, w, http.StatusRequestEntityTooLarge, "request body too large")
			return ctx, false
		}

		logger.Info("invalid request body", observability.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return ctx, false
	}

	observability.FromContext(ctx).Info("relay request received")

	return ctx, true
}

// fail maps a relay error to a response. Validation messages are returned
// as-is; anything else gets the endpoint's generic message.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, err error, message string) {
	logger := observability.FromContext(ctx)

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		logger.Info("request rejected", observability.String("reason", validationErr.Message))
		h.respondError(ctx, w, http.StatusBadRequest, validationErr.Message)
		return
	}

	logger.Error("relay failed", observability.Error(err))
	h.respondError(ctx, w, http.StatusInternalServerError, message)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	h.respond(ctx, w, status, map[string]string{"error": message})
}

func (h *Handler) respond(ctx context.Context, w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Already written status, can't change it, just log.
		observability.FromContext(ctx).Error("failed to encode response", observability.Error(err))
	}
}
