// Package interpreter defines the boundary to the dream-interpretation
// provider. Callers depend only on the Interpreter interface so a real AI
// backend can replace the rule-based default without touching the services.
package interpreter

import (
	"context"

	"github.com/somnologia/somnologia/internal/model"
)

// Known is a snapshot of existing entities the provider may suggest from.
// Providers must never create entities themselves.
type Known struct {
	Persons []*model.Person
	Tags    []*model.Tag
}

type Interpreter interface {
	// Analyze produces an interpretation for the description plus suggested
	// references into the known entities. An unreachable provider returns an
	// error wrapping model.ErrUnavailable.
	Analyze(ctx context.Context, description string, known Known) (*model.Interpretation, error)

	// GenerateImage returns a URL for an image representing the dream, or nil
	// when the provider cannot produce one.
	GenerateImage(ctx context.Context, description, interpretation string) (*string, error)
}
