package service

import (
	"Catalog/internal/model"
	"Catalog/internal/repo"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) user(args mock.Arguments) (*model.User, error) {
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	return m.user(m.Called(ctx, user))
}
func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return m.user(m.Called(ctx, id))
}
func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.user(m.Called(ctx, username))
}
func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.user(m.Called(ctx, email))
}
func (m *mockUserRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.User); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) UpdateUser(ctx context.Context, id int64, updates map[string]any) (*model.User, error) {
	return m.user(m.Called(ctx, id, updates))
}
func (m *mockUserRepo) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

// мок для repo.ItemRepository
type mockItemRepo struct{ mock.Mock }

func (m *mockItemRepo) item(args mock.Arguments) (*model.Item, error) {
	if v, ok := args.Get(0).(*model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) items(args mock.Arguments) ([]model.Item, error) {
	if v, ok := args.Get(0).([]model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) CreateItem(ctx context.Context, it *model.Item, tagIDs []int64) (*model.Item, error) {
	return m.item(m.Called(ctx, it, tagIDs))
}
func (m *mockItemRepo) GetItemByID(ctx context.Context, id int64) (*model.Item, error) {
	return m.item(m.Called(ctx, id))
}
func (m *mockItemRepo) GetItemByUUID(ctx context.Context, uuid string) (*model.Item, error) {
	return m.item(m.Called(ctx, uuid))
}
func (m *mockItemRepo) ListItems(ctx context.Context, limit, offset int) ([]model.Item, error) {
	return m.items(m.Called(ctx, limit, offset))
}
func (m *mockItemRepo) SearchItems(ctx context.Context, f repo.ItemFilter) ([]model.Item, error) {
	return m.items(m.Called(ctx, f))
}
func (m *mockItemRepo) CountItems(ctx context.Context, categoryID *int64) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockItemRepo) UpdateItem(ctx context.Context, id int64, updates map[string]any, tagIDs *[]int64) (*model.Item, error) {
	return m.item(m.Called(ctx, id, updates, tagIDs))
}
func (m *mockItemRepo) DeleteItem(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.ItemRepository = (*mockItemRepo)(nil)

// мок для repo.CategoryRepository
type mockCategoryRepo struct{ mock.Mock }

func (m *mockCategoryRepo) category(args mock.Arguments) (*model.Category, error) {
	if v, ok := args.Get(0).(*model.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) CreateCategory(ctx context.Context, c *model.Category) (*model.Category, error) {
	return m.category(m.Called(ctx, c))
}
func (m *mockCategoryRepo) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	return m.category(m.Called(ctx, id))
}
func (m *mockCategoryRepo) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	return m.category(m.Called(ctx, name))
}
func (m *mockCategoryRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCategoryRepo) UpdateCategory(ctx context.Context, id int64, updates map[string]any) (*model.Category, error) {
	return m.category(m.Called(ctx, id, updates))
}
func (m *mockCategoryRepo) DeleteCategory(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.CategoryRepository = (*mockCategoryRepo)(nil)

// мок для repo.TagRepository
type mockTagRepo struct{ mock.Mock }

func (m *mockTagRepo) tag(args mock.Arguments) (*model.Tag, error) {
	if v, ok := args.Get(0).(*model.Tag); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTagRepo) CreateTag(ctx context.Context, t *model.Tag) (*model.Tag, error) {
	return m.tag(m.Called(ctx, t))
}
func (m *mockTagRepo) GetTagByID(ctx context.Context, id int64) (*model.Tag, error) {
	return m.tag(m.Called(ctx, id))
}
func (m *mockTagRepo) GetTagByName(ctx context.Context, name string) (*model.Tag, error) {
	return m.tag(m.Called(ctx, name))
}
func (m *mockTagRepo) ListTags(ctx context.Context) ([]model.Tag, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Tag); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockTagRepo) RenameTag(ctx context.Context, id int64, name string) (*model.Tag, error) {
	return m.tag(m.Called(ctx, id, name))
}
func (m *mockTagRepo) DeleteTag(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.TagRepository = (*mockTagRepo)(nil)

// мок для repo.SessionRepository
type mockSessionRepo struct{ mock.Mock }

func (m *mockSessionRepo) CreateSession(ctx context.Context, s *model.Session) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockSessionRepo) GetSession(ctx context.Context, id string) (*model.Session, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Session); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSessionRepo) DeleteSession(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.SessionRepository = (*mockSessionRepo)(nil)
