package services

import (
	"context"
	"fmt"

	"github.com/somnologia/somnologia/internal/model"
	"github.com/somnologia/somnologia/internal/store"
	"github.com/somnologia/somnologia/internal/validate"
)

// validationErr tags a rule failure with the sentinel the transport layer
// maps to a 400.
func validationErr(err error) error {
	return fmt.Errorf("%v: %w", err, model.ErrValidation)
}

type PersonService struct {
	store store.Store
}

func NewPersonService(s store.Store) *PersonService {
	return &PersonService{store: s}
}

func (s *PersonService) Create(ctx context.Context, patch model.PersonPatch) (*model.Person, error) {
	if err := validate.CreatePerson(patch.Name, patch.Description, patch.PhotoURL); err != nil {
		return nil, validationErr(err)
	}
	p := &model.Person{
		Name:        *patch.Name,
		Description: patch.Description,
		PhotoURL:    patch.PhotoURL,
	}
	return s.store.Persons().Create(ctx, p)
}

func (s *PersonService) Get(ctx context.Context, id int64) (*model.Person, error) {
	return s.store.Persons().Get(ctx, id)
}

func (s *PersonService) List(ctx context.Context) ([]*model.Person, error) {
	return s.store.Persons().List(ctx)
}

// Update applies the non-nil patch fields to the stored person.
func (s *PersonService) Update(ctx context.Context, id int64, patch model.PersonPatch) (*model.Person, error) {
	cur, err := s.store.Persons().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		cur.Name = *patch.Name
	}
	if patch.Description != nil {
		cur.Description = patch.Description
	}
	if patch.PhotoURL != nil {
		cur.PhotoURL = patch.PhotoURL
	}
	if err := validate.Name(cur.Name); err != nil {
		return nil, validationErr(err)
	}
	if err := validate.MaxLen("description", cur.Description, 2000); err != nil {
		return nil, validationErr(err)
	}
	return s.store.Persons().Update(ctx, cur)
}

func (s *PersonService) Delete(ctx context.Context, id int64) error {
	return s.store.Persons().Delete(ctx, id)
}
