package services

import (
	"context"
	"fmt"

	"github.com/somnologia/somnologia/internal/interpreter"
	"github.com/somnologia/somnologia/internal/model"
	"github.com/somnologia/somnologia/internal/store"
	"github.com/somnologia/somnologia/internal/validate"
)

// InterpretService is the gateway between the journal and the interpretation
// provider. The provider call happens outside any store transaction so a slow
// or hung provider never holds a store lock.
type InterpretService struct {
	store    store.Store
	provider interpreter.Interpreter
}

func NewInterpretService(s store.Store, p interpreter.Interpreter) *InterpretService {
	return &InterpretService{store: s, provider: p}
}

// Interpret analyzes the description and, when dreamID is given, persists the
// resulting interpretation onto that dream.
func (s *InterpretService) Interpret(ctx context.Context, description string, dreamID *int64) (*model.Interpretation, error) {
	if err := validate.NonEmpty("description", description); err != nil {
		return nil, validationErr(err)
	}

	// Snapshot of suggestible entities, taken before the provider call.
	persons, err := s.store.Persons().List(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := s.store.Tags().List(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.provider.Analyze(ctx, description, interpreter.Known{Persons: persons, Tags: tags})
	if err != nil {
		return nil, fmt.Errorf("interpret: %w", err)
	}

	// Image generation is best-effort; a failure never fails the request.
	if img, err := s.provider.GenerateImage(ctx, description, res.Interpretation); err == nil && img != nil {
		res.GeneratedImageURL = img
	}

	if dreamID != nil {
		if err := s.store.Dreams().SetInterpretation(ctx, *dreamID, res.Interpretation, res.GeneratedImageURL); err != nil {
			return nil, err
		}
	}
	return res, nil
}
