package services

import (
	"context"
	"time"

	"github.com/somnologia/somnologia/internal/model"
	"github.com/somnologia/somnologia/internal/store"
	"github.com/somnologia/somnologia/internal/validate"
)

const dreamDateLayout = "2006-01-02"

type DreamService struct {
	store store.Store
}

func NewDreamService(s store.Store) *DreamService {
	return &DreamService{store: s}
}

// Create persists a new dream. When no dream date is given it defaults to
// yesterday, on the assumption that entries are usually journaled the morning
// after.
func (s *DreamService) Create(ctx context.Context, patch model.DreamPatch) (*model.Dream, error) {
	if err := validate.CreateDream(patch.Description, patch.DreamDate); err != nil {
		return nil, validationErr(err)
	}

	d := &model.Dream{
		Description: *patch.Description,
		DreamDate:   patch.DreamDate,
	}
	if d.DreamDate == nil {
		yesterday := time.Now().AddDate(0, 0, -1).Format(dreamDateLayout)
		d.DreamDate = &yesterday
	}

	personIDs := []int64{}
	if patch.Persons != nil {
		personIDs = append(personIDs, *patch.Persons...)
	}
	tagIDs := []int64{}
	if patch.Tags != nil {
		tagIDs = append(tagIDs, *patch.Tags...)
	}
	return s.store.Dreams().Create(ctx, d, personIDs, tagIDs)
}

func (s *DreamService) Get(ctx context.Context, id int64) (*model.Dream, error) {
	return s.store.Dreams().Get(ctx, id)
}

func (s *DreamService) List(ctx context.Context) ([]*model.Dream, error) {
	return s.store.Dreams().List(ctx)
}

// Update applies the non-nil patch fields. Omitted person/tag sets keep the
// current associations; empty sets clear them.
func (s *DreamService) Update(ctx context.Context, id int64, patch model.DreamPatch) (*model.Dream, error) {
	cur, err := s.store.Dreams().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Description != nil {
		cur.Description = *patch.Description
	}
	if patch.DreamDate != nil {
		cur.DreamDate = patch.DreamDate
	}
	if err := validate.NonEmpty("description", cur.Description); err != nil {
		return nil, validationErr(err)
	}
	if err := validate.DreamDate(cur.DreamDate); err != nil {
		return nil, validationErr(err)
	}

	var personIDs, tagIDs []int64
	if patch.Persons != nil {
		personIDs = append([]int64{}, *patch.Persons...)
	}
	if patch.Tags != nil {
		tagIDs = append([]int64{}, *patch.Tags...)
	}
	return s.store.Dreams().Update(ctx, cur, personIDs, tagIDs)
}

func (s *DreamService) Delete(ctx context.Context, id int64) error {
	return s.store.Dreams().Delete(ctx, id)
}
