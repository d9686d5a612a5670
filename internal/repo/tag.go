package repo

import (
	"context"

	"Catalog/internal/model"

	"gorm.io/gorm"
)

// TagRepository - доступ к меткам.
type TagRepository interface {
	CreateTag(ctx context.Context, t *model.Tag) (*model.Tag, error)
	GetTagByID(ctx context.Context, id int64) (*model.Tag, error)
	GetTagByName(ctx context.Context, name string) (*model.Tag, error)
	ListTags(ctx context.Context) ([]model.Tag, error)
	RenameTag(ctx context.Context, id int64, name string) (*model.Tag, error)
	DeleteTag(ctx context.Context, id int64) error
}

type tagRepo struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepo{db: db}
}

func (r *tagRepo) CreateTag(ctx context.Context, t *model.Tag) (*model.Tag, error) {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, translate(err)
	}
	return t, nil
}

func (r *tagRepo) GetTagByID(ctx context.Context, id int64) (*model.Tag, error) {
	var t model.Tag
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tagRepo) GetTagByName(ctx context.Context, name string) (*model.Tag, error) {
	var t model.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tagRepo) ListTags(ctx context.Context) ([]model.Tag, error) {
	var list []model.Tag
	if err := r.db.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *tagRepo) RenameTag(ctx context.Context, id int64, name string) (*model.Tag, error) {
	var t model.Tag
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&t, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&t).Update("name", name).Error; err != nil {
			return translate(err)
		}
		t.Name = name
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTag удаляет метку вместе со связями item_tags.
func (r *tagRepo) DeleteTag(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Tag{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Exec("DELETE FROM item_tags WHERE tag_id = ?", id).Error
	})
}
