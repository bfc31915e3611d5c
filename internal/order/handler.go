package order

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"foxi-food/internal/apperrors"
	"foxi-food/internal/common/logger"
)

const createTimeout = 30 * time.Second

type Handler struct {
	service *Service
	log     *logger.Logger
}

func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /orders", h.create)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), createTimeout)
	defer cancel()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var req CreateOrderRequest
	if err := dec.Decode(&req); err != nil {
		apperrors.WriteError(w, apperrors.Validation("body", "invalid JSON payload"))
		return
	}

	order, err := h.service.CreateOrder(ctx, &req)
	if err != nil {
		h.log.Debug("create_order_rejected", map[string]any{"reason": err.Error()})
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusCreated, order)
}
