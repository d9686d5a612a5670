package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"Catalog/internal/model"
	"Catalog/internal/repo"

	"go.uber.org/zap"
)

const maxItemNameLen = 100

// ItemService инкапсулирует бизнес-логику работы с Item: валидацию, поиск и права владельца.
type ItemService struct {
	items      repo.ItemRepository
	categories repo.CategoryRepository
	logger     *zap.SugaredLogger
}

func NewItemService(items repo.ItemRepository, categories repo.CategoryRepository, logger *zap.SugaredLogger) *ItemService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ItemService{items: items, categories: categories, logger: logger}
}

// ItemInput - данные создания или частичного обновления. nil означает «поле не передано».
// CategoryID = 0 при обновлении снимает категорию.
type ItemInput struct {
	Name        *string
	Description *string
	CategoryID  *int64
	TagIDs      *[]int64
}

func (in ItemInput) IsEmpty() bool {
	return in.Name == nil && in.Description == nil && in.CategoryID == nil && in.TagIDs == nil
}

// ItemQuery - параметры листинга. Limit/Offset применяются только без фильтров.
type ItemQuery struct {
	Filter repo.ItemFilter
	Limit  *int
	Offset *int
}

// ItemPage - результат листинга. Total - число всех элементов (с учётом только категории).
type ItemPage struct {
	Items []model.Item
	Total int64
}

// ValidateItem проверяет поля элемента. partial=true проверяет только переданные поля.
func ValidateItem(in ItemInput, partial bool) error {
	var msgs []string
	switch {
	case in.Name == nil:
		if !partial {
			msgs = append(msgs, "Name is required")
		}
	case strings.TrimSpace(*in.Name) == "":
		msgs = append(msgs, "Name cannot be empty")
	}
	switch {
	case in.Description == nil:
		if !partial {
			msgs = append(msgs, "Description is required")
		}
	case strings.TrimSpace(*in.Description) == "":
		msgs = append(msgs, "Description cannot be empty")
	}
	if in.Name != nil && utf8.RuneCountInString(*in.Name) > maxItemNameLen {
		msgs = append(msgs, "Name must be less than 100 characters")
	}
	if len(msgs) > 0 {
		return NewValidationError(msgs...)
	}
	return nil
}

// CanModify - владелец или администратор.
func CanModify(actor *model.User, it *model.Item) bool {
	return actor != nil && it != nil && (actor.IsAdmin || it.OwnedBy(actor.ID))
}

func (s *ItemService) List(ctx context.Context, q ItemQuery) (*ItemPage, error) {
	var (
		items []model.Item
		err   error
	)
	if q.Filter.IsEmpty() {
		limit, offset := -1, 0
		if q.Limit != nil && *q.Limit >= 0 {
			limit = *q.Limit
		}
		if q.Offset != nil && *q.Offset > 0 {
			offset = *q.Offset
		}
		items, err = s.items.ListItems(ctx, limit, offset)
	} else {
		items, err = s.items.SearchItems(ctx, q.Filter)
	}
	if err != nil {
		return nil, err
	}
	total, err := s.items.CountItems(ctx, q.Filter.CategoryID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return &ItemPage{Items: items, Total: total}, nil
}

func (s *ItemService) Get(ctx context.Context, id int64) (*model.Item, error) {
	it, err := s.items.GetItemByID(ctx, id)
	return s.found(it, err)
}

func (s *ItemService) GetByUUID(ctx context.Context, uuid string) (*model.Item, error) {
	it, err := s.items.GetItemByUUID(ctx, uuid)
	return s.found(it, err)
}

func (s *ItemService) found(it *model.Item, err error) (*model.Item, error) {
	miss, err := missing(it, err)
	if err != nil {
		return nil, err
	}
	if miss {
		return nil, errItemNotFound
	}
	return it, nil
}

var errItemNotFound = wrapNotFound("item")

// Create создаёт элемент от имени actor.
func (s *ItemService) Create(ctx context.Context, actor *model.User, in ItemInput) (*model.Item, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	if err := ValidateItem(in, false); err != nil {
		return nil, err
	}
	it := &model.Item{Name: *in.Name, Description: *in.Description, OwnerID: &actor.ID}
	if in.CategoryID != nil && *in.CategoryID != 0 {
		if err := s.checkCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		id := *in.CategoryID
		it.CategoryID = &id
	}
	var tagIDs []int64
	if in.TagIDs != nil {
		tagIDs = *in.TagIDs
	}
	created, err := s.items.CreateItem(ctx, it, tagIDs)
	if err != nil {
		return nil, conflict(err, "item")
	}
	s.logger.Infow("item created", "item_id", created.ID, "uuid", created.UUID, "owner_id", actor.ID)
	return created, nil
}

// Update применяет частичное обновление. Изменять может только владелец или администратор.
func (s *ItemService) Update(ctx context.Context, actor *model.User, id int64, in ItemInput) (*model.Item, error) {
	it, err := s.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.IsEmpty() {
		return nil, ErrEmptyPatch
	}
	if err := ValidateItem(in, true); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.CategoryID != nil {
		if *in.CategoryID == 0 {
			updates["category_id"] = nil
		} else {
			if err := s.checkCategory(ctx, *in.CategoryID); err != nil {
				return nil, err
			}
			updates["category_id"] = *in.CategoryID
		}
	}

	updated, err := s.items.UpdateItem(ctx, it.ID, updates, in.TagIDs)
	if err != nil {
		return nil, notFound(err, "item")
	}
	s.logger.Infow("item updated", "item_id", it.ID, "actor_id", actor.ID)
	return updated, nil
}

// Delete удаляет элемент. Удалять может только владелец или администратор.
func (s *ItemService) Delete(ctx context.Context, actor *model.User, id int64) error {
	it, err := s.authorize(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.items.DeleteItem(ctx, it.ID); err != nil {
		return notFound(err, "item")
	}
	s.logger.Infow("item deleted", "item_id", it.ID, "actor_id", actor.ID)
	return nil
}

func (s *ItemService) authorize(ctx context.Context, actor *model.User, id int64) (*model.Item, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	it, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanModify(actor, it) {
		s.logger.Warnw("item modification denied", "item_id", id, "actor_id", actor.ID)
		return nil, ErrForbidden
	}
	return it, nil
}

func (s *ItemService) checkCategory(ctx context.Context, id int64) error {
	c, err := s.categories.GetCategoryByID(ctx, id)
	miss, err := missing(c, err)
	if err != nil {
		return err
	}
	if miss {
		return NewValidationError("Category not found")
	}
	return nil
}
