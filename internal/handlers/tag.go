package handlers

import (
	"net/http"

	"Catalog/internal/service"

	"go.uber.org/zap"
)

type TagHandler struct {
	TagService *service.TagService
	Logger     *zap.SugaredLogger
}

func NewTagHandler(tagService *service.TagService, logger *zap.SugaredLogger) *TagHandler {
	return &TagHandler{TagService: tagService, Logger: logger}
}

type tagRequest struct {
	Name string `json:"name"`
}

func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.TagService.List(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	out := make([]tagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, toTagResponse(&tags[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErrorMessage(w, http.StatusNotFound, "Tag not found")
		return
	}
	t, err := h.TagService.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toTagResponse(t))
}

func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if _, err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	t, err := h.TagService.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTagResponse(t))
}

// Rename - PUT /api/tags/{id}, только администратор.
func (h *TagHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErrorMessage(w, http.StatusNotFound, "Tag not found")
		return
	}
	var req tagRequest
	if _, err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	t, err := h.TagService.Rename(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toTagResponse(t))
}

func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErrorMessage(w, http.StatusNotFound, "Tag not found")
		return
	}
	if err := h.TagService.Delete(r.Context(), id); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Tag deleted successfully")
}
