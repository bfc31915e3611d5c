package restaurant

import (
	"encoding/json"
	"net/http"
	"strconv"

	"foxi-food/internal/apperrors"
	"foxi-food/internal/common/logger"
)

type Handler struct {
	service *Service
	log     *logger.Logger
}

func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /restaurants", h.list)
	mux.HandleFunc("POST /restaurants", h.create)
	mux.HandleFunc("GET /restaurants/stats", h.stats)
	mux.HandleFunc("GET /restaurants/{id}", h.get)
	mux.HandleFunc("PATCH /restaurants/{id}", h.update)
	mux.HandleFunc("DELETE /restaurants/{id}", h.deactivate)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("id", "id must be a positive integer")
	}
	return id, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.service.List(r.Context())
	if err != nil {
		h.log.Error("list_restaurants_failed", err, nil)
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	rest, err := h.service.Get(r.Context(), id)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, rest)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeUpsert(r)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	rest, err := h.service.Create(r.Context(), req)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusCreated, rest)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	req, err := decodeUpsert(r)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	rest, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, rest)
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	if err := h.service.Deactivate(r.Context(), id); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.log.Error("restaurant_stats_failed", err, nil)
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, stats)
}

func decodeUpsert(r *http.Request) (*UpsertRequest, error) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var req UpsertRequest
	if err := dec.Decode(&req); err != nil {
		return nil, apperrors.Validation("body", "invalid JSON payload")
	}
	return &req, nil
}
