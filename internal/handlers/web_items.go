package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"Catalog/internal/middleware"
	"Catalog/internal/model"
	"Catalog/internal/service"
)

type indexPage struct {
	Items      []model.Item
	Categories []model.Category
}

func (h *WebHandler) Index(w http.ResponseWriter, r *http.Request) {
	limit := indexItems
	page, err := h.ItemService.List(r.Context(), service.ItemQuery{Limit: &limit})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	cats, err := h.CategoryService.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "index", "Home", indexPage{Items: page.Items, Categories: cats})
}

func (h *WebHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msgs := h.formError(err)
	http.Error(w, strings.Join(msgs, "; "), status)
}

type itemsPage struct {
	Items      []model.Item
	Categories []model.Category
	Tags       []model.Tag
	Search     string
	CategoryID int64
	TagIDs     []int64
	Page       int
	TotalPages int
}

// ItemList - листинг по 10 на страницу; с фильтрами выводится всё найденное.
func (h *WebHandler) ItemList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pageNum, err := strconv.Atoi(q.Get("page"))
	if err != nil || pageNum < 1 {
		pageNum = 1
	}
	pageNum = min(pageNum, maxPage)
	limit, offset := itemsPerPage, (pageNum-1)*itemsPerPage
	filter := parseItemFilter(q)

	res, err := h.ItemService.List(r.Context(), service.ItemQuery{Filter: filter, Limit: &limit, Offset: &offset})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	cats, err := h.CategoryService.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	tags, err := h.TagService.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data := itemsPage{
		Items:      res.Items,
		Categories: cats,
		Tags:       tags,
		Search:     filter.Text,
		TagIDs:     filter.TagIDs,
		Page:       pageNum,
		TotalPages: int((res.Total + itemsPerPage - 1) / itemsPerPage),
	}
	if filter.CategoryID != nil {
		data.CategoryID = *filter.CategoryID
	}
	h.render(w, r, http.StatusOK, "items", "Items", data)
}

type itemPage struct {
	Item      *model.Item
	CanModify bool
}

func (h *WebHandler) ItemView(w http.ResponseWriter, r *http.Request) {
	it, ok := h.loadItem(w, r)
	if !ok {
		return
	}
	user, _ := middleware.UserFromContext(r.Context())
	h.render(w, r, http.StatusOK, "item", it.Name, itemPage{Item: it, CanModify: service.CanModify(user, it)})
}

// loadItem находит элемент из URL; при промахе уводит на список с сообщением.
func (h *WebHandler) loadItem(w http.ResponseWriter, r *http.Request) (*model.Item, bool) {
	id, ok := pathID(r, "id")
	if !ok {
		h.redirect(w, r, "/items", "danger", "Item not found.")
		return nil, false
	}
	it, err := h.ItemService.Get(r.Context(), id)
	if err != nil {
		if service.IsNotFound(err) {
			h.redirect(w, r, "/items", "danger", "Item not found.")
		} else {
			h.fail(w, r, err)
		}
		return nil, false
	}
	return it, true
}

type itemFormPage struct {
	Action      string
	Name        string
	Description string
	CategoryID  int64
	TagIDs      []int64
	Categories  []model.Category
	Tags        []model.Tag
}

func (h *WebHandler) itemForm(w http.ResponseWriter, r *http.Request, status int, title string, form itemFormPage, errs ...string) {
	var err error
	if form.Categories, err = h.CategoryService.List(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	if form.Tags, err = h.TagService.List(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, status, "item_form", title, form, errs...)
}

func readItemForm(r *http.Request, action string) (itemFormPage, error) {
	if err := r.ParseForm(); err != nil {
		return itemFormPage{}, err
	}
	return itemFormPage{
		Action:      action,
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		CategoryID:  formInt64(r.PostFormValue("category_id")),
		TagIDs:      formIDs(r.PostForm["tag_ids"]),
	}, nil
}

func (f itemFormPage) input() service.ItemInput {
	name, desc, cat, tags := f.Name, f.Description, f.CategoryID, f.TagIDs
	return service.ItemInput{Name: &name, Description: &desc, CategoryID: &cat, TagIDs: &tags}
}

func (h *WebHandler) CreateItemForm(w http.ResponseWriter, r *http.Request) {
	h.itemForm(w, r, http.StatusOK, "New item", itemFormPage{Action: "/items/create"})
}

func (h *WebHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	form, err := readItemForm(r, "/items/create")
	if err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	user, _ := middleware.UserFromContext(r.Context())
	it, err := h.ItemService.Create(r.Context(), user, form.input())
	if err != nil {
		status, msgs := h.formError(err)
		h.itemForm(w, r, status, "New item", form, msgs...)
		return
	}
	h.redirect(w, r, fmt.Sprintf("/items/%d", it.ID), "success", "Item created successfully!")
}

// editable загружает элемент и проверяет право его менять.
func (h *WebHandler) editable(w http.ResponseWriter, r *http.Request) (*model.Item, bool) {
	it, ok := h.loadItem(w, r)
	if !ok {
		return nil, false
	}
	user, _ := middleware.UserFromContext(r.Context())
	if !service.CanModify(user, it) {
		h.redirect(w, r, fmt.Sprintf("/items/%d", it.ID), "danger", "You do not have permission to modify this item.")
		return nil, false
	}
	return it, true
}

func (h *WebHandler) EditItemForm(w http.ResponseWriter, r *http.Request) {
	it, ok := h.editable(w, r)
	if !ok {
		return
	}
	form := itemFormPage{
		Action:      fmt.Sprintf("/items/%d/edit", it.ID),
		Name:        it.Name,
		Description: it.Description,
		TagIDs:      it.TagIDs(),
	}
	if it.CategoryID != nil {
		form.CategoryID = *it.CategoryID
	}
	h.itemForm(w, r, http.StatusOK, "Edit item", form)
}

func (h *WebHandler) EditItem(w http.ResponseWriter, r *http.Request) {
	it, ok := h.editable(w, r)
	if !ok {
		return
	}
	form, err := readItemForm(r, fmt.Sprintf("/items/%d/edit", it.ID))
	if err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	user, _ := middleware.UserFromContext(r.Context())
	if _, err := h.ItemService.Update(r.Context(), user, it.ID, form.input()); err != nil {
		status, msgs := h.formError(err)
		h.itemForm(w, r, status, "Edit item", form, msgs...)
		return
	}
	h.redirect(w, r, fmt.Sprintf("/items/%d", it.ID), "success", "Item updated successfully!")
}

func (h *WebHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	it, ok := h.editable(w, r)
	if !ok {
		return
	}
	user, _ := middleware.UserFromContext(r.Context())
	if err := h.ItemService.Delete(r.Context(), user, it.ID); err != nil {
		h.fail(w, r, err)
		return
	}
	h.redirect(w, r, "/items", "success", "Item deleted successfully!")
}

type categoriesPage struct {
	Categories []model.Category
}

func (h *WebHandler) CategoryList(w http.ResponseWriter, r *http.Request) {
	cats, err := h.CategoryService.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "categories", "Categories", categoriesPage{Categories: cats})
}

type categoryFormPage struct {
	Name        string
	Description string
}

func (h *WebHandler) CreateCategoryForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "category_form", "New category", categoryFormPage{})
}

func (h *WebHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	form := categoryFormPage{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
	}
	var desc *string
	if form.Description != "" {
		desc = &form.Description
	}
	if _, err := h.CategoryService.Create(r.Context(), form.Name, desc); err != nil {
		status, msgs := h.formError(err)
		h.render(w, r, status, "category_form", "New category", form, msgs...)
		return
	}
	h.redirect(w, r, "/categories", "success", "Category created successfully!")
}
