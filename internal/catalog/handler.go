package catalog

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
	mux.HandleFunc("GET /restaurants/{id}/menu", h.menu)

	mux.HandleFunc("GET /restaurants/{id}/categories", h.listCategories)
	mux.HandleFunc("POST /restaurants/{id}/categories", h.createCategory)
	mux.HandleFunc("PATCH /restaurants/{id}/categories/{category_id}", h.updateCategory)
	mux.HandleFunc("DELETE /restaurants/{id}/categories/{category_id}", h.disableCategory)

	mux.HandleFunc("GET /restaurants/{id}/menu-items", h.listMenuItems)
	mux.HandleFunc("POST /restaurants/{id}/menu-items", h.createMenuItem)
	mux.HandleFunc("GET /restaurants/{id}/menu-items/{item_id}", h.getMenuItem)
	mux.HandleFunc("PATCH /restaurants/{id}/menu-items/{item_id}", h.updateMenuItem)
	mux.HandleFunc("DELETE /restaurants/{id}/menu-items/{item_id}", h.disableMenuItem)
}

func pathInt(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation(name, name+" must be a positive integer")
	}
	return id, nil
}

func pathPair(r *http.Request, child string) (int64, int64, error) {
	restaurantID, err := pathInt(r, "id")
	if err != nil {
		return 0, 0, err
	}
	childID, err := pathInt(r, child)
	if err != nil {
		return 0, 0, err
	}
	return restaurantID, childID, nil
}

func decode[T any](r *http.Request) (*T, error) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var req T
	if err := dec.Decode(&req); err != nil {
		return nil, apperrors.Validation("body", "invalid JSON payload")
	}
	return &req, nil
}

func (h *Handler) menu(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	menu, err := h.service.GetMenu(r.Context(), id)
	if err != nil {
		h.log.Error("get_menu_failed", err, map[string]any{"restaurant_id": id})
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, menu)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	categories, err := h.service.ListCategories(r.Context(), id)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, categories)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	req, err := decode[CategoryRequest](r)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	c, err := h.service.CreateCategory(r.Context(), id, req)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	restaurantID, categoryID, err := pathPair(r, "category_id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	req, err := decode[CategoryRequest](r)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	c, err := h.service.UpdateCategory(r.Context(), restaurantID, categoryID, req)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) disableCategory(w http.ResponseWriter, r *http.Request) {
	restaurantID, categoryID, err := pathPair(r, "category_id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	if err := h.service.DisableCategory(r.Context(), restaurantID, categoryID); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listMenuItems(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	items, err := h.service.ListMenuItems(r.Context(), id)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	req, err := decode[MenuItemRequest](r)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	item, err := h.service.CreateMenuItem(r.Context(), id, req)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	restaurantID, itemID, err := pathPair(r, "item_id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	item, err := h.service.GetMenuItemFor(r.Context(), restaurantID, itemID)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	restaurantID, itemID, err := pathPair(r, "item_id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	req, err := decode[MenuItemRequest](r)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	item, err := h.service.UpdateMenuItem(r.Context(), restaurantID, itemID, req)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) disableMenuItem(w http.ResponseWriter, r *http.Request) {
	restaurantID, itemID, err := pathPair(r, "item_id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	if err := h.service.DisableMenuItem(r.Context(), restaurantID, itemID); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
