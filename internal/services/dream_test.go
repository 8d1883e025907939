package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somnologia/somnologia/internal/interpreter"
	"github.com/somnologia/somnologia/internal/model"
	"github.com/somnologia/somnologia/internal/store"
	"github.com/somnologia/somnologia/internal/store/sqlite"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := sqlite.New(filepath.Join(t.TempDir(), "somnologia-test.db"))
	require.NoError(t, err)
	return st
}

func strptr(s string) *string { return &s }

func TestDreamCreateDefaultsDateToYesterday(t *testing.T) {
	svc := NewDreamService(newTestStore(t))

	d, err := svc.Create(context.Background(), model.DreamPatch{Description: strptr("a quiet forest")})
	require.NoError(t, err)
	require.NotNil(t, d.DreamDate)

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	assert.Equal(t, yesterday, *d.DreamDate)
}

func TestDreamCreateKeepsExplicitDate(t *testing.T) {
	svc := NewDreamService(newTestStore(t))

	d, err := svc.Create(context.Background(), model.DreamPatch{
		Description: strptr("a quiet forest"),
		DreamDate:   strptr("2026-01-15"),
	})
	require.NoError(t, err)
	require.NotNil(t, d.DreamDate)
	assert.Equal(t, "2026-01-15", *d.DreamDate)
}

func TestDreamCreateRejectsBadDate(t *testing.T) {
	svc := NewDreamService(newTestStore(t))

	_, err := svc.Create(context.Background(), model.DreamPatch{
		Description: strptr("a quiet forest"),
		DreamDate:   strptr("15/01/2026"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestDreamUpdateCannotBlankDescription(t *testing.T) {
	st := newTestStore(t)
	svc := NewDreamService(st)

	d, err := svc.Create(context.Background(), model.DreamPatch{Description: strptr("original")})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), d.ID, model.DreamPatch{Description: strptr("   ")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestPersonUpdatePartial(t *testing.T) {
	st := newTestStore(t)
	svc := NewPersonService(st)

	p, err := svc.Create(context.Background(), model.PersonPatch{
		Name:        strptr("Ana"),
		Description: strptr("college friend"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), p.ID, model.PersonPatch{PhotoURL: strptr("/img/ana.png")})
	require.NoError(t, err)
	assert.Equal(t, "Ana", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "college friend", *updated.Description)
	require.NotNil(t, updated.PhotoURL)
	assert.Equal(t, "/img/ana.png", *updated.PhotoURL)
}

func TestInterpretRequiresDescription(t *testing.T) {
	svc := NewInterpretService(newTestStore(t), interpreter.NewArtemidorus())

	_, err := svc.Interpret(context.Background(), "   ", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestInterpretPersistsWhenDreamGiven(t *testing.T) {
	st := newTestStore(t)
	dreamSvc := NewDreamService(st)
	svc := NewInterpretService(st, interpreter.NewArtemidorus())

	d, err := dreamSvc.Create(context.Background(), model.DreamPatch{Description: strptr("a lucid flight")})
	require.NoError(t, err)

	res, err := svc.Interpret(context.Background(), d.Description, &d.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Interpretation)
	require.NotNil(t, res.GeneratedImageURL)

	got, err := dreamSvc.Get(context.Background(), d.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Interpretation)
	assert.Equal(t, res.Interpretation, *got.Interpretation)
	require.NotNil(t, got.GeneratedImageURL)
}

func TestDashboardUsesDefaultRecent(t *testing.T) {
	st := newTestStore(t)
	dreamSvc := NewDreamService(st)
	svc := NewDashboardService(st, 0)

	for _, desc := range []string{"one", "two", "three", "four"} {
		_, err := dreamSvc.Create(context.Background(), model.DreamPatch{Description: strptr(desc)})
		require.NoError(t, err)
	}

	dash, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, dash.LatestDreams, DefaultRecentDreams)
}
