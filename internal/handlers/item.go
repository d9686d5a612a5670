package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"Catalog/internal/middleware"
	"Catalog/internal/repo"
	"Catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ItemHandler - JSON API элементов каталога.
type ItemHandler struct {
	ItemService *service.ItemService
	Logger      *zap.SugaredLogger
}

// NewItemHandler создаёт хендлер items
func NewItemHandler(itemService *service.ItemService, logger *zap.SugaredLogger) *ItemHandler {
	return &ItemHandler{ItemService: itemService, Logger: logger}
}

type itemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	CategoryID  *int64   `json:"category_id"`
	TagIDs      *[]int64 `json:"tag_ids"`
}

func (req itemRequest) input() service.ItemInput {
	return service.ItemInput{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		TagIDs:      req.TagIDs,
	}
}

// optionalInt - как в query-параметрах: нечисловое значение считается отсутствующим.
func optionalInt(v string) *int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// parseItemFilter читает search, category_id и повторяющийся tag_id.
func parseItemFilter(q url.Values) repo.ItemFilter {
	f := repo.ItemFilter{Text: q.Get("search")}
	if id, err := strconv.ParseInt(q.Get("category_id"), 10, 64); err == nil && id > 0 {
		f.CategoryID = &id
	}
	for _, raw := range q["tag_id"] {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			f.TagIDs = append(f.TagIDs, id)
		}
	}
	return f
}

// List - листинг с фильтрами; limit/offset работают только без фильтров.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := service.ItemQuery{
		Filter: parseItemFilter(q),
		Limit:  optionalInt(q.Get("limit")),
		Offset: optionalInt(q.Get("offset")),
	}
	page, err := h.ItemService.List(r.Context(), query)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, itemListResponse{
		Items:  toItemResponses(page.Items),
		Total:  page.Total,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErrorMessage(w, http.StatusNotFound, "Item not found")
		return
	}
	it, err := h.ItemService.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponse(it))
}

func (h *ItemHandler) GetByUUID(w http.ResponseWriter, r *http.Request) {
	it, err := h.ItemService.GetByUUID(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponse(it))
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if _, err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	actor, _ := middleware.UserFromContext(r.Context())
	it, err := h.ItemService.Create(r.Context(), actor, req.input())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toItemResponse(it))
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErrorMessage(w, http.StatusNotFound, "Item not found")
		return
	}
	var req itemRequest
	if _, err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	actor, _ := middleware.UserFromContext(r.Context())
	it, err := h.ItemService.Update(r.Context(), actor, id, req.input())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponse(it))
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErrorMessage(w, http.StatusNotFound, "Item not found")
		return
	}
	actor, _ := middleware.UserFromContext(r.Context())
	if err := h.ItemService.Delete(r.Context(), actor, id); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Item deleted successfully")
}
