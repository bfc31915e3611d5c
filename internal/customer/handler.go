package customer

import (
	"net/http"
	"strconv"

	"foxi-food/internal/apperrors"
	"foxi-food/internal/common/logger"
)

type Handler struct {
	repo *Repository
	log  *logger.Logger
}

func NewHandler(repo *Repository, log *logger.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /customers", h.list)
	mux.HandleFunc("GET /customers/{id}", h.get)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	customers, err := h.repo.ListCustomers(r.Context())
	if err != nil {
		h.log.Error("list_customers_failed", err, nil)
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, customers)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		apperrors.WriteError(w, apperrors.Validation("id", "id must be a positive integer"))
		return
	}
	c, err := h.repo.GetCustomer(r.Context(), id)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, c)
}
