package repo

import (
	"context"

	"Catalog/internal/model"

	"gorm.io/gorm"
)

// CategoryRepository - доступ к категориям.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, c *model.Category) (*model.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, id int64, updates map[string]any) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) CreateCategory(ctx context.Context, c *model.Category) (*model.Category, error) {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, translate(err)
	}
	return c, nil
}

func (r *categoryRepo) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	var list []model.Category
	if err := r.db.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *categoryRepo) UpdateCategory(ctx context.Context, id int64, updates map[string]any) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, id).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&c).Updates(updates).Error; err != nil {
			return translate(err)
		}
		return tx.First(&c, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteCategory удаляет категорию и отвязывает от неё элементы.
func (r *categoryRepo) DeleteCategory(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&model.Item{}).Where("category_id = ?", id).Update("category_id", nil).Error
	})
}
