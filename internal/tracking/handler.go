package tracking

import (
	"encoding/json"
	"net/http"
	"strconv"

	"foxi-food/internal/apperrors"
	"foxi-food/internal/common/logger"
	"foxi-food/internal/domain"
)

const defaultListLimit = 50

type Handler struct {
	service *Service
	log     *logger.Logger
}

func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /orders/{order_number}", h.get)
	mux.HandleFunc("GET /restaurants/{id}/orders", h.listByRestaurant)
	mux.HandleFunc("PATCH /orders/{order_number}/status", h.updateStatus)
	mux.HandleFunc("PATCH /orders/{order_number}/payment", h.updatePayment)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrder(r.Context(), r.PathValue("order_number"))
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) listByRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		apperrors.WriteError(w, apperrors.Validation("id", "id must be a positive integer"))
		return
	}
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 200 {
			apperrors.WriteError(w, apperrors.Validation("limit", "limit must be between 1 and 200"))
			return
		}
		limit = n
	}
	view, err := h.service.ListRestaurantOrders(r.Context(), id, limit)
	if err != nil {
		h.log.Error("list_restaurant_orders_failed", err, map[string]any{"restaurant_id": id})
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		apperrors.WriteError(w, apperrors.Validation("body", "invalid JSON payload"))
		return
	}
	order, err := h.service.UpdateStatus(r.Context(),
		r.PathValue("order_number"), domain.OrderStatus(body.Status))
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) updatePayment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PaymentStatus string `json:"payment_status"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		apperrors.WriteError(w, apperrors.Validation("body", "invalid JSON payload"))
		return
	}
	order, err := h.service.UpdatePayment(r.Context(),
		r.PathValue("order_number"), domain.PaymentStatus(body.PaymentStatus))
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, order)
}
