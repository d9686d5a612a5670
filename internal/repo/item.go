package repo

import (
	"context"
	"time"

	"Catalog/internal/model"

	"gorm.io/gorm"
)

// ItemFilter - условия поиска элементов. Все заданные условия объединяются через AND.
type ItemFilter struct {
	// Text ищется как подстрока без учёта регистра в name или description.
	Text       string
	CategoryID *int64
	// TagIDs - элемент должен иметь каждую из перечисленных меток.
	TagIDs []int64
}

// IsEmpty сообщает, что ни одно условие не задано.
func (f ItemFilter) IsEmpty() bool {
	return f.Text == "" && f.CategoryID == nil && len(f.TagIDs) == 0
}

// ItemRepository определяет контракт доступа к Item для слоя сервиса.
type ItemRepository interface {
	// CreateItem создаёт элемент и привязывает существующие метки из tagIDs (неизвестные id игнорируются).
	CreateItem(ctx context.Context, it *model.Item, tagIDs []int64) (*model.Item, error)
	GetItemByID(ctx context.Context, id int64) (*model.Item, error)
	GetItemByUUID(ctx context.Context, uuid string) (*model.Item, error)
	// ListItems возвращает элементы в порядке вставки. limit < 0 - без ограничения.
	ListItems(ctx context.Context, limit, offset int) ([]model.Item, error)
	SearchItems(ctx context.Context, f ItemFilter) ([]model.Item, error)
	CountItems(ctx context.Context, categoryID *int64) (int64, error)
	// UpdateItem применяет патч полей; tagIDs != nil заменяет набор меток целиком.
	UpdateItem(ctx context.Context, id int64, updates map[string]any, tagIDs *[]int64) (*model.Item, error)
	DeleteItem(ctx context.Context, id int64) error
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepository создаёт реализацию репозитория для Item.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

// withRelations подгружает владельца, категорию и метки.
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Owner").
		Preload("Category").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") })
}

func (r *itemRepo) CreateItem(ctx context.Context, it *model.Item, tagIDs []int64) (*model.Item, error) {
	it.Tags = nil
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Owner", "Category", "Tags").Create(it).Error; err != nil {
			return translate(err)
		}
		return setItemTags(tx, it.ID, tagIDs)
	})
	if err != nil {
		return nil, err
	}
	return r.GetItemByID(ctx, it.ID)
}

func (r *itemRepo) GetItemByID(ctx context.Context, id int64) (*model.Item, error) {
	var it model.Item
	if err := withRelations(r.db.WithContext(ctx)).First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) GetItemByUUID(ctx context.Context, uuid string) (*model.Item, error) {
	var it model.Item
	if err := withRelations(r.db.WithContext(ctx)).Where("uuid = ?", uuid).First(&it).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) ListItems(ctx context.Context, limit, offset int) ([]model.Item, error) {
	q := withRelations(r.db.WithContext(ctx)).Order("items.id")
	if limit >= 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	var items []model.Item
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepo) SearchItems(ctx context.Context, f ItemFilter) ([]model.Item, error) {
	q := withRelations(r.db.WithContext(ctx)).Model(&model.Item{})
	if f.Text != "" {
		// регистр снимает БД с обеих сторон: SQLite LOWER меняет только ASCII
		like := "%" + escapeLike(f.Text) + "%"
		q = q.Where(`(LOWER(items.name) LIKE LOWER(?) ESCAPE '\' OR LOWER(items.description) LIKE LOWER(?) ESCAPE '\')`, like, like)
	}
	if f.CategoryID != nil {
		q = q.Where("items.category_id = ?", *f.CategoryID)
	}
	for _, tagID := range uniqueIDs(f.TagIDs) {
		q = q.Where("EXISTS (SELECT 1 FROM item_tags WHERE item_tags.item_id = items.id AND item_tags.tag_id = ?)", tagID)
	}
	var items []model.Item
	if err := q.Order("items.id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepo) CountItems(ctx context.Context, categoryID *int64) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Item{})
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *itemRepo) UpdateItem(ctx context.Context, id int64, updates map[string]any, tagIDs *[]int64) (*model.Item, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var it model.Item
		if err := tx.First(&it, id).Error; err != nil {
			return err
		}
		patch := make(map[string]any, len(updates)+1)
		for k, v := range updates {
			patch[k] = v
		}
		// updated_at меняется при любом обновлении, в том числе только меток
		patch["updated_at"] = time.Now().UTC()
		if err := tx.Model(&it).Updates(patch).Error; err != nil {
			return translate(err)
		}
		if tagIDs != nil {
			if err := tx.Exec("DELETE FROM item_tags WHERE item_id = ?", id).Error; err != nil {
				return err
			}
			return setItemTags(tx, id, *tagIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetItemByID(ctx, id)
}

func (r *itemRepo) DeleteItem(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM item_tags WHERE item_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Item{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// setItemTags привязывает к элементу метки, которые реально существуют.
func setItemTags(tx *gorm.DB, itemID int64, tagIDs []int64) error {
	ids := uniqueIDs(tagIDs)
	if len(ids) == 0 {
		return nil
	}
	var existing []int64
	if err := tx.Model(&model.Tag{}).Where("id IN ?", ids).Order("id").Pluck("id", &existing).Error; err != nil {
		return err
	}
	for _, tagID := range existing {
		if err := tx.Exec("INSERT INTO item_tags (item_id, tag_id) VALUES (?, ?)", itemID, tagID).Error; err != nil {
			return err
		}
	}
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
