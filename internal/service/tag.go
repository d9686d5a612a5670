package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"Catalog/internal/model"
	"Catalog/internal/repo"
)

const maxTagNameLen = 30

type TagService struct {
	repo repo.TagRepository
}

func NewTagService(r repo.TagRepository) *TagService {
	return &TagService{repo: r}
}

func validateTagName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("Name is required")
	}
	if utf8.RuneCountInString(name) > maxTagNameLen {
		return NewValidationError("Name must be less than 30 characters")
	}
	return nil
}

func (s *TagService) Create(ctx context.Context, name string) (*model.Tag, error) {
	if err := validateTagName(name); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, 0, name); err != nil {
		return nil, err
	}
	t, err := s.repo.CreateTag(ctx, &model.Tag{Name: name})
	if err != nil {
		return nil, conflict(err, "tag")
	}
	return t, nil
}

func (s *TagService) ensureFree(ctx context.Context, selfID int64, name string) error {
	t, err := s.repo.GetTagByName(ctx, name)
	miss, err := missing(t, err)
	if err != nil {
		return err
	}
	if !miss && t.ID != selfID {
		return wrapConflict("tag")
	}
	return nil
}

func (s *TagService) Get(ctx context.Context, id int64) (*model.Tag, error) {
	t, err := s.repo.GetTagByID(ctx, id)
	miss, err := missing(t, err)
	if err != nil {
		return nil, err
	}
	if miss {
		return nil, wrapNotFound("tag")
	}
	return t, nil
}

func (s *TagService) List(ctx context.Context) ([]model.Tag, error) {
	return s.repo.ListTags(ctx)
}

func (s *TagService) Rename(ctx context.Context, id int64, name string) (*model.Tag, error) {
	if err := validateTagName(name); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, id, name); err != nil {
		return nil, err
	}
	t, err := s.repo.RenameTag(ctx, id, name)
	if err != nil {
		return nil, conflict(notFound(err, "tag"), "tag")
	}
	return t, nil
}

// Delete удаляет метку и снимает её со всех элементов.
func (s *TagService) Delete(ctx context.Context, id int64) error {
	return notFound(s.repo.DeleteTag(ctx, id), "tag")
}
