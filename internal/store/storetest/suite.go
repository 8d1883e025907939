package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/somnologia/somnologia/internal/model"
	"github.com/somnologia/somnologia/internal/store"
)

func strptr(s string) *string { return &s }

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// Persons: create / get roundtrip
	ana, err := s.Persons().Create(ctx, &model.Person{Name: "Ana", Description: strptr("sister")})
	if err != nil {
		t.Fatalf("CreatePerson: %v", err)
	}
	if ana.ID == 0 || ana.CreationTime.IsZero() {
		t.Fatalf("CreatePerson: missing id or creation time: %+v", ana)
	}
	if got, err := s.Persons().Get(ctx, ana.ID); err != nil || got.Name != "Ana" || got.Description == nil || *got.Description != "sister" {
		t.Fatalf("GetPerson: got=%+v err=%v", got, err)
	}

	// Duplicate name must conflict
	if _, err := s.Persons().Create(ctx, &model.Person{Name: "Ana"}); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate person name: want ErrConflict, got %v", err)
	}

	bruno, err := s.Persons().Create(ctx, &model.Person{Name: "Bruno"})
	if err != nil {
		t.Fatalf("CreatePerson bruno: %v", err)
	}

	// Update keeps identity, replaces fields
	ana.Description = strptr("older sister")
	if got, err := s.Persons().Update(ctx, ana); err != nil || *got.Description != "older sister" {
		t.Fatalf("UpdatePerson: got=%+v err=%v", got, err)
	}
	// Renaming onto an existing name conflicts
	bruno.Name = "Ana"
	if _, err := s.Persons().Update(ctx, bruno); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("rename onto taken name: want ErrConflict, got %v", err)
	}
	bruno.Name = "Bruno"

	// List is name-ordered
	if lst, err := s.Persons().List(ctx); err != nil || len(lst) != 2 || lst[0].Name != "Ana" || lst[1].Name != "Bruno" {
		t.Fatalf("ListPersons: n=%d err=%v", len(lst), err)
	}

	// Tags
	lucid, err := s.Tags().Create(ctx, &model.Tag{Name: "lucid"})
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if _, err := s.Tags().Create(ctx, &model.Tag{Name: "lucid"}); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate tag name: want ErrConflict, got %v", err)
	}
	nightmare, err := s.Tags().Create(ctx, &model.Tag{Name: "nightmare"})
	if err != nil {
		t.Fatalf("CreateTag nightmare: %v", err)
	}

	// Dreams: create with associations
	d1, err := s.Dreams().Create(ctx, &model.Dream{Description: "flying over a city"},
		[]int64{ana.ID}, []int64{lucid.ID})
	if err != nil {
		t.Fatalf("CreateDream: %v", err)
	}
	if len(d1.Persons) != 1 || d1.Persons[0].ID != ana.ID || len(d1.Tags) != 1 || d1.Tags[0].ID != lucid.ID {
		t.Fatalf("CreateDream associations: %+v", d1)
	}

	// Dangling references are rejected atomically
	if _, err := s.Dreams().Create(ctx, &model.Dream{Description: "bad refs"}, []int64{99999}, nil); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("dangling person ref: want ErrValidation, got %v", err)
	}
	if _, err := s.Dreams().Create(ctx, &model.Dream{Description: "bad refs"}, nil, []int64{99999}); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("dangling tag ref: want ErrValidation, got %v", err)
	}
	if lst, err := s.Dreams().List(ctx); err != nil || len(lst) != 1 {
		t.Fatalf("failed creates must not persist: n=%d err=%v", len(lst), err)
	}

	time.Sleep(5 * time.Millisecond) // keep creation-time ordering unambiguous
	d2, err := s.Dreams().Create(ctx, &model.Dream{Description: "chased through a forest", DreamDate: strptr("2026-08-20")},
		[]int64{ana.ID, bruno.ID}, []int64{nightmare.ID})
	if err != nil {
		t.Fatalf("CreateDream d2: %v", err)
	}

	// List is most recent first
	if lst, err := s.Dreams().List(ctx); err != nil || len(lst) != 2 || lst[0].ID != d2.ID || lst[1].ID != d1.ID {
		t.Fatalf("ListDreams order: err=%v", err)
	}

	// Update: nil association slices keep current sets
	d1.Description = "flying over a bright city"
	upd, err := s.Dreams().Update(ctx, d1, nil, nil)
	if err != nil || upd.Description != "flying over a bright city" {
		t.Fatalf("UpdateDream: got=%+v err=%v", upd, err)
	}
	if len(upd.Persons) != 1 || len(upd.Tags) != 1 {
		t.Fatalf("UpdateDream must keep associations: %+v", upd)
	}
	if !upd.CreationTime.Equal(d1.CreationTime) {
		t.Fatalf("UpdateDream must not touch creation time")
	}

	// Update: empty slices clear associations
	upd, err = s.Dreams().Update(ctx, d1, []int64{}, []int64{})
	if err != nil || len(upd.Persons) != 0 || len(upd.Tags) != 0 {
		t.Fatalf("UpdateDream clear associations: got=%+v err=%v", upd, err)
	}
	// restore
	if _, err := s.Dreams().Update(ctx, d1, []int64{ana.ID}, []int64{lucid.ID}); err != nil {
		t.Fatalf("UpdateDream restore: %v", err)
	}

	// SetInterpretation
	img := strptr("/static/images/dream_placeholder.png")
	if err := s.Dreams().SetInterpretation(ctx, d1.ID, "a calm dream", img); err != nil {
		t.Fatalf("SetInterpretation: %v", err)
	}
	if got, err := s.Dreams().Get(ctx, d1.ID); err != nil || got.Interpretation == nil || *got.Interpretation != "a calm dream" || got.GeneratedImageURL == nil {
		t.Fatalf("Get after SetInterpretation: got=%+v err=%v", got, err)
	}

	// Dashboard: consistent counts and recent ordering
	dash, err := s.Dashboard().Snapshot(ctx, 3)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if len(dash.LatestDreams) != 2 || dash.LatestDreams[0].ID != d2.ID {
		t.Fatalf("Dashboard latest dreams: %+v", dash.LatestDreams)
	}
	counts := map[string]int{}
	for _, s := range dash.PersonsSummary {
		counts[s.Name] = s.QtyDreams
	}
	if counts["Ana"] != 2 || counts["Bruno"] != 1 {
		t.Fatalf("Dashboard counts: %v", counts)
	}
	if len(dash.ChartLabels) != len(dash.PersonsSummary) || len(dash.ChartData) != len(dash.PersonsSummary) {
		t.Fatalf("Dashboard chart arrays must parallel the summary")
	}

	// Recent limit caps the list
	if dash, err := s.Dashboard().Snapshot(ctx, 1); err != nil || len(dash.LatestDreams) != 1 || dash.LatestDreams[0].ID != d2.ID {
		t.Fatalf("Dashboard recent limit: %v", err)
	}

	// Deleting a referenced tag detaches it from dreams (cascade policy)
	if err := s.Tags().Delete(ctx, lucid.ID); err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}
	if got, err := s.Dreams().Get(ctx, d1.ID); err != nil || len(got.Tags) != 0 {
		t.Fatalf("tag delete must detach from dream: got=%+v err=%v", got, err)
	}

	// Deleting a referenced person detaches it and drops its count row
	if err := s.Persons().Delete(ctx, bruno.ID); err != nil {
		t.Fatalf("DeletePerson: %v", err)
	}
	if got, err := s.Dreams().Get(ctx, d2.ID); err != nil || len(got.Persons) != 1 {
		t.Fatalf("person delete must detach from dream: got=%+v err=%v", got, err)
	}
	if dash, err := s.Dashboard().Snapshot(ctx, 3); err != nil || len(dash.PersonsSummary) != 1 {
		t.Fatalf("Dashboard after person delete: %v", err)
	}

	// Deleting a dream removes it and its join rows; persons survive
	if err := s.Dreams().Delete(ctx, d1.ID); err != nil {
		t.Fatalf("DeleteDream: %v", err)
	}
	if _, err := s.Dreams().Get(ctx, d1.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Get deleted dream: want ErrNotFound, got %v", err)
	}
	if _, err := s.Persons().Get(ctx, ana.ID); err != nil {
		t.Fatalf("person must survive dream delete: %v", err)
	}

	// NotFound surface for every entity kind
	if _, err := s.Persons().Get(ctx, 99999); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetPerson unknown id: %v", err)
	}
	if _, err := s.Tags().Get(ctx, 99999); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetTag unknown id: %v", err)
	}
	if err := s.Persons().Delete(ctx, 99999); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("DeletePerson unknown id: %v", err)
	}
	if err := s.Tags().Delete(ctx, 99999); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("DeleteTag unknown id: %v", err)
	}
	if err := s.Dreams().Delete(ctx, 99999); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("DeleteDream unknown id: %v", err)
	}
	if _, err := s.Persons().Update(ctx, &model.Person{ID: 99999, Name: "ghost"}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdatePerson unknown id: %v", err)
	}
	if err := s.Dreams().SetInterpretation(ctx, 99999, "x", nil); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("SetInterpretation unknown id: %v", err)
	}
}
