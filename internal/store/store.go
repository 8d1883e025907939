package store

import (
	"context"

	"github.com/somnologia/somnologia/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (e.g., sqlite, postgres).
type Store interface {
	Persons() Persons
	Tags() Tags
	Dreams() Dreams
	Dashboard() Dashboard
}

type Persons interface {
	Create(ctx context.Context, p *model.Person) (*model.Person, error)
	Get(ctx context.Context, id int64) (*model.Person, error)
	List(ctx context.Context) ([]*model.Person, error)
	Update(ctx context.Context, p *model.Person) (*model.Person, error)
	// Delete removes the person and detaches it from any dreams referencing it.
	Delete(ctx context.Context, id int64) error
}

type Tags interface {
	Create(ctx context.Context, t *model.Tag) (*model.Tag, error)
	Get(ctx context.Context, id int64) (*model.Tag, error)
	List(ctx context.Context) ([]*model.Tag, error)
	Update(ctx context.Context, t *model.Tag) (*model.Tag, error)
	// Delete removes the tag and detaches it from any dreams referencing it.
	Delete(ctx context.Context, id int64) error
}

type Dreams interface {
	// Create persists the dream together with its person/tag associations in
	// one transaction. A reference to a missing person or tag fails the whole
	// call with model.ErrValidation.
	Create(ctx context.Context, d *model.Dream, personIDs, tagIDs []int64) (*model.Dream, error)
	Get(ctx context.Context, id int64) (*model.Dream, error)
	List(ctx context.Context) ([]*model.Dream, error)
	// Update replaces the dream's mutable fields. A nil personIDs or tagIDs
	// slice keeps the current associations; an empty slice clears them.
	Update(ctx context.Context, d *model.Dream, personIDs, tagIDs []int64) (*model.Dream, error)
	SetInterpretation(ctx context.Context, id int64, interpretation string, imageURL *string) error
	Delete(ctx context.Context, id int64) error
}

type Dashboard interface {
	// Snapshot returns dashboard aggregates computed inside a single read
	// transaction: the `recent` most recent dreams and per-person dream counts.
	Snapshot(ctx context.Context, recent int) (*model.DashboardData, error)
}
