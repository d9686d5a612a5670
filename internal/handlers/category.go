package handlers

import (
	"net/http"

	"Catalog/internal/service"

	"go.uber.org/zap"
)

type CategoryHandler struct {
	CategoryService *service.CategoryService
	Logger          *zap.SugaredLogger
}

func NewCategoryHandler(categoryService *service.CategoryService, logger *zap.SugaredLogger) *CategoryHandler {
	return &CategoryHandler{CategoryService: categoryService, Logger: logger}
}

type categoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.CategoryService.List(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	out := make([]categoryResponse, 0, len(cats))
	for i := range cats {
		out = append(out, toCategoryResponse(&cats[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErrorMessage(w, http.StatusNotFound, "Category not found")
		return
	}
	c, err := h.CategoryService.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(c))
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if _, err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	name := ""
	if req.Name != nil {
		name = *req.Name
	}
	c, err := h.CategoryService.Create(r.Context(), name, req.Description)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryResponse(c))
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErrorMessage(w, http.StatusNotFound, "Category not found")
		return
	}
	var req categoryRequest
	if _, err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	c, err := h.CategoryService.Update(r.Context(), id, service.CategoryPatch{Name: req.Name, Description: req.Description})
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(c))
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErrorMessage(w, http.StatusNotFound, "Category not found")
		return
	}
	if err := h.CategoryService.Delete(r.Context(), id); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Category deleted successfully")
}
