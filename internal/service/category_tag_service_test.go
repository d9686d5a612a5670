package service

import (
	"Catalog/internal/model"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()
	m := new(mockCategoryRepo)
	svc := NewCategoryService(m)

	m.On("GetCategoryByName", mock.Anything, "Books").Return(nil, gorm.ErrRecordNotFound).Once()
	m.On("CreateCategory", mock.Anything, mock.MatchedBy(func(c *model.Category) bool {
		return c.Name == "Books" && c.Description != nil && *c.Description == "paper"
	})).Return(&model.Category{ID: 1, Name: "Books"}, nil).Once()

	c, err := svc.Create(ctx, "Books", strPtr("paper"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)

	m.On("GetCategoryByName", mock.Anything, "Books").Return(&model.Category{ID: 1, Name: "Books"}, nil).Once()
	_, err = svc.Create(ctx, "Books", nil)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "category already exists", err.Error())

	_, err = svc.Create(ctx, "", nil)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"Name is required"}, ve.Messages)

	_, err = svc.Create(ctx, strings.Repeat("c", 51), nil)
	assert.ErrorAs(t, err, &ve)
	m.AssertExpectations(t)
}

func TestCategoryService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	m := new(mockCategoryRepo)
	svc := NewCategoryService(m)

	_, err := svc.Update(ctx, 1, CategoryPatch{})
	assert.ErrorIs(t, err, ErrEmptyPatch)

	// переименование в собственное имя - не конфликт
	m.On("GetCategoryByName", mock.Anything, "Books").Return(&model.Category{ID: 1, Name: "Books"}, nil).Once()
	m.On("UpdateCategory", mock.Anything, int64(1), map[string]any{"name": "Books", "description": "d"}).
		Return(&model.Category{ID: 1, Name: "Books"}, nil).Once()
	_, err = svc.Update(ctx, 1, CategoryPatch{Name: strPtr("Books"), Description: strPtr("d")})
	require.NoError(t, err)

	m.On("GetCategoryByName", mock.Anything, "Games").Return(&model.Category{ID: 2, Name: "Games"}, nil).Once()
	_, err = svc.Update(ctx, 1, CategoryPatch{Name: strPtr("Games")})
	assert.ErrorIs(t, err, ErrConflict)

	m.On("UpdateCategory", mock.Anything, int64(9), map[string]any{"description": "d"}).Return(nil, gorm.ErrRecordNotFound).Once()
	_, err = svc.Update(ctx, 9, CategoryPatch{Description: strPtr("d")})
	assert.ErrorIs(t, err, ErrNotFound)

	m.On("DeleteCategory", mock.Anything, int64(1)).Return(nil).Once()
	m.On("DeleteCategory", mock.Anything, int64(9)).Return(gorm.ErrRecordNotFound).Once()
	assert.NoError(t, svc.Delete(ctx, 1))
	assert.ErrorIs(t, svc.Delete(ctx, 9), ErrNotFound)

	m.On("GetCategoryByID", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound).Once()
	_, err = svc.Get(ctx, 9)
	assert.ErrorIs(t, err, ErrNotFound)
	m.AssertExpectations(t)
}

func TestTagService(t *testing.T) {
	ctx := context.Background()
	m := new(mockTagRepo)
	svc := NewTagService(m)

	m.On("GetTagByName", mock.Anything, "go").Return(nil, gorm.ErrRecordNotFound).Once()
	m.On("CreateTag", mock.Anything, &model.Tag{Name: "go"}).Return(&model.Tag{ID: 1, Name: "go"}, nil).Once()
	tg, err := svc.Create(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, int64(1), tg.ID)

	m.On("GetTagByName", mock.Anything, "go").Return(&model.Tag{ID: 1, Name: "go"}, nil).Once()
	_, err = svc.Create(ctx, "go")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Create(ctx, strings.Repeat("t", 31))
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	m.On("GetTagByName", mock.Anything, "golang").Return(nil, gorm.ErrRecordNotFound).Once()
	m.On("RenameTag", mock.Anything, int64(1), "golang").Return(&model.Tag{ID: 1, Name: "golang"}, nil).Once()
	tg, err = svc.Rename(ctx, 1, "golang")
	require.NoError(t, err)
	assert.Equal(t, "golang", tg.Name)

	m.On("GetTagByName", mock.Anything, "x").Return(nil, gorm.ErrRecordNotFound).Once()
	m.On("RenameTag", mock.Anything, int64(5), "x").Return(nil, gorm.ErrRecordNotFound).Once()
	_, err = svc.Rename(ctx, 5, "x")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Rename(ctx, 1, " ")
	assert.ErrorAs(t, err, &ve)

	m.On("DeleteTag", mock.Anything, int64(5)).Return(gorm.ErrRecordNotFound).Once()
	assert.ErrorIs(t, svc.Delete(ctx, 5), ErrNotFound)
	m.AssertExpectations(t)
}
