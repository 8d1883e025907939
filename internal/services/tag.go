package services

import (
	"context"

	"github.com/somnologia/somnologia/internal/model"
	"github.com/somnologia/somnologia/internal/store"
	"github.com/somnologia/somnologia/internal/validate"
)

type TagService struct {
	store store.Store
}

func NewTagService(s store.Store) *TagService {
	return &TagService{store: s}
}

func (s *TagService) Create(ctx context.Context, patch model.TagPatch) (*model.Tag, error) {
	if err := validate.CreateTag(patch.Name, patch.Description); err != nil {
		return nil, validationErr(err)
	}
	t := &model.Tag{
		Name:        *patch.Name,
		Description: patch.Description,
	}
	return s.store.Tags().Create(ctx, t)
}

func (s *TagService) Get(ctx context.Context, id int64) (*model.Tag, error) {
	return s.store.Tags().Get(ctx, id)
}

func (s *TagService) List(ctx context.Context) ([]*model.Tag, error) {
	return s.store.Tags().List(ctx)
}

// Update applies the non-nil patch fields to the stored tag.
func (s *TagService) Update(ctx context.Context, id int64, patch model.TagPatch) (*model.Tag, error) {
	cur, err := s.store.Tags().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		cur.Name = *patch.Name
	}
	if patch.Description != nil {
		cur.Description = patch.Description
	}
	if err := validate.Name(cur.Name); err != nil {
		return nil, validationErr(err)
	}
	if err := validate.MaxLen("description", cur.Description, 2000); err != nil {
		return nil, validationErr(err)
	}
	return s.store.Tags().Update(ctx, cur)
}

func (s *TagService) Delete(ctx context.Context, id int64) error {
	return s.store.Tags().Delete(ctx, id)
}
