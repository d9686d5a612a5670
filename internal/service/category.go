package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"Catalog/internal/model"
	"Catalog/internal/repo"
)

const maxCategoryNameLen = 50

type CategoryService struct {
	repo repo.CategoryRepository
}

func NewCategoryService(r repo.CategoryRepository) *CategoryService {
	return &CategoryService{repo: r}
}

// CategoryPatch - частичное обновление категории.
type CategoryPatch struct {
	Name        *string
	Description *string
}

func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("Name is required")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return NewValidationError("Name must be less than 50 characters")
	}
	return nil
}

func (s *CategoryService) Create(ctx context.Context, name string, description *string) (*model.Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, 0, name); err != nil {
		return nil, err
	}
	c, err := s.repo.CreateCategory(ctx, &model.Category{Name: name, Description: description})
	if err != nil {
		return nil, conflict(err, "category")
	}
	return c, nil
}

func (s *CategoryService) ensureFree(ctx context.Context, selfID int64, name string) error {
	c, err := s.repo.GetCategoryByName(ctx, name)
	miss, err := missing(c, err)
	if err != nil {
		return err
	}
	if !miss && c.ID != selfID {
		return wrapConflict("category")
	}
	return nil
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*model.Category, error) {
	c, err := s.repo.GetCategoryByID(ctx, id)
	miss, err := missing(c, err)
	if err != nil {
		return nil, err
	}
	if miss {
		return nil, wrapNotFound("category")
	}
	return c, nil
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *CategoryService) Update(ctx context.Context, id int64, p CategoryPatch) (*model.Category, error) {
	if p.Name == nil && p.Description == nil {
		return nil, ErrEmptyPatch
	}
	updates := map[string]any{}
	if p.Name != nil {
		if err := validateCategoryName(*p.Name); err != nil {
			return nil, err
		}
		if err := s.ensureFree(ctx, id, *p.Name); err != nil {
			return nil, err
		}
		updates["name"] = *p.Name
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	c, err := s.repo.UpdateCategory(ctx, id, updates)
	if err != nil {
		return nil, conflict(notFound(err, "category"), "category")
	}
	return c, nil
}

// Delete удаляет категорию; элементы остаются без категории.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return notFound(s.repo.DeleteCategory(ctx, id), "category")
}
