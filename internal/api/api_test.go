package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somnologia/somnologia/internal/interpreter"
	"github.com/somnologia/somnologia/internal/model"
	"github.com/somnologia/somnologia/internal/store/sqlite"
)

// newTestServer spins up the full router over a fresh sqlite store with the
// rule-based interpreter.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := sqlite.New(filepath.Join(t.TempDir(), "somnologia.db"))
	require.NoError(t, err)

	router := NewRouter(st, interpreter.NewArtemidorus(), 0, zerolog.Nop())
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createPerson(t *testing.T, srv *httptest.Server, name string) model.Person {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/persons/", map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[model.Person](t, resp)
}

func createTag(t *testing.T, srv *httptest.Server, name string) model.Tag {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/tags/", map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[model.Tag](t, resp)
}

func createDream(t *testing.T, srv *httptest.Server, description string, personIDs, tagIDs []int64) model.Dream {
	t.Helper()
	payload := map[string]any{"description": description}
	if personIDs != nil {
		payload["persons"] = personIDs
	}
	if tagIDs != nil {
		payload["tags"] = tagIDs
	}
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/dreams/", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[model.Dream](t, resp)
}

func TestPersonCRUD(t *testing.T) {
	srv := newTestServer(t)

	p := createPerson(t, srv, "Ana")
	assert.Equal(t, "Ana", p.Name)
	assert.False(t, p.CreationTime.IsZero())

	resp := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/v1/persons/%d/", srv.URL, p.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[model.Person](t, resp)
	assert.Equal(t, p.ID, got.ID)

	resp = doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/v1/persons/%d/", srv.URL, p.ID),
		map[string]any{"description": "college friend"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[model.Person](t, resp)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "college friend", *updated.Description)
	assert.Equal(t, "Ana", updated.Name, "partial update must keep untouched fields")

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/persons/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]model.Person](t, resp)
	require.Len(t, list, 1)

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/v1/persons/%d/", srv.URL, p.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/v1/persons/%d/", srv.URL, p.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCreatePersonValidation(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/persons/", map[string]any{"description": "nameless"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "validation_error", body["kind"])
}

func TestDuplicateNameRejected(t *testing.T) {
	srv := newTestServer(t)

	createPerson(t, srv, "Ana")
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/persons/", map[string]any{"name": "Ana"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "validation_error", body["kind"])
}

func TestDreamWithAssociations(t *testing.T) {
	srv := newTestServer(t)

	ana := createPerson(t, srv, "Ana")
	lucid := createTag(t, srv, "lucid")

	d := createDream(t, srv, "flying over a city", []int64{ana.ID}, []int64{lucid.ID})
	require.Len(t, d.Persons, 1)
	assert.Equal(t, "Ana", d.Persons[0].Name)
	require.Len(t, d.Tags, 1)
	assert.Equal(t, "lucid", d.Tags[0].Name)
	require.NotNil(t, d.DreamDate, "dream date must default when omitted")

	// Dangling reference is rejected and nothing is created.
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/dreams/",
		map[string]any{"description": "bad refs", "persons": []int64{9999}})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/dreams/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]model.Dream](t, resp)
	assert.Len(t, list, 1)
}

func TestDreamUpdateAssociationSemantics(t *testing.T) {
	srv := newTestServer(t)

	ana := createPerson(t, srv, "Ana")
	lucid := createTag(t, srv, "lucid")
	d := createDream(t, srv, "a quiet beach", []int64{ana.ID}, []int64{lucid.ID})

	// Omitting persons/tags keeps the existing associations.
	resp := doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/v1/dreams/%d/", srv.URL, d.ID),
		map[string]any{"description": "a quiet beach at dusk"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[model.Dream](t, resp)
	assert.Equal(t, "a quiet beach at dusk", updated.Description)
	assert.Len(t, updated.Persons, 1)
	assert.Len(t, updated.Tags, 1)

	// An explicit empty list clears them.
	resp = doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/v1/dreams/%d/", srv.URL, d.ID),
		map[string]any{"persons": []int64{}, "tags": []int64{}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cleared := decode[model.Dream](t, resp)
	assert.Empty(t, cleared.Persons)
	assert.Empty(t, cleared.Tags)
}

func TestTagDeleteDetachesFromDreams(t *testing.T) {
	srv := newTestServer(t)

	lucid := createTag(t, srv, "lucid")
	d := createDream(t, srv, "aware mid-dream", nil, []int64{lucid.ID})

	resp := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/v1/tags/%d/", srv.URL, lucid.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/v1/dreams/%d/", srv.URL, d.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[model.Dream](t, resp)
	assert.Empty(t, got.Tags, "dream survives with the tag detached")
}

func TestDashboard(t *testing.T) {
	srv := newTestServer(t)

	ana := createPerson(t, srv, "Ana")
	bruno := createPerson(t, srv, "Bruno")
	createDream(t, srv, "first", []int64{ana.ID}, nil)
	createDream(t, srv, "second", []int64{ana.ID, bruno.ID}, nil)
	createDream(t, srv, "third", nil, nil)
	createDream(t, srv, "fourth", nil, nil)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/dashboard/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dash := decode[model.DashboardData](t, resp)

	require.Len(t, dash.LatestDreams, 3)
	assert.Equal(t, "fourth", dash.LatestDreams[0].Description)
	assert.Equal(t, "third", dash.LatestDreams[1].Description)
	assert.Equal(t, "second", dash.LatestDreams[2].Description)

	require.Len(t, dash.PersonsSummary, 2)
	assert.Equal(t, "Ana", dash.PersonsSummary[0].Name)
	assert.Equal(t, 2, dash.PersonsSummary[0].QtyDreams)
	assert.Equal(t, "Bruno", dash.PersonsSummary[1].Name)
	assert.Equal(t, 1, dash.PersonsSummary[1].QtyDreams)

	assert.Equal(t, []string{"Ana", "Bruno"}, dash.ChartLabels)
	assert.Equal(t, []int{2, 1}, dash.ChartData)
}

func TestInterpret(t *testing.T) {
	srv := newTestServer(t)

	ana := createPerson(t, srv, "Ana")
	lucid := createTag(t, srv, "lucid")

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/interpret/",
		map[string]any{"description": "a lucid dream where Ana and Carlos were flying"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[model.Interpretation](t, resp)

	assert.NotEmpty(t, out.Interpretation)
	assert.Equal(t, []int64{ana.ID}, out.SuggestedPersonIDs)
	assert.Contains(t, out.SuggestedNewPersonNames, "Carlos")
	assert.Equal(t, []int64{lucid.ID}, out.SuggestedTagIDs)
	require.NotNil(t, out.GeneratedImageURL)
}

func TestInterpretEmptyDescription(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/interpret/", map[string]any{"description": "  "})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "validation_error", body["kind"])
}

func TestInterpretPersistsToDream(t *testing.T) {
	srv := newTestServer(t)

	d := createDream(t, srv, "a lucid dream about flying", nil, nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/interpret/",
		map[string]any{"description": d.Description, "dreamId": d.ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/v1/dreams/%d/", srv.URL, d.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[model.Dream](t, resp)
	require.NotNil(t, got.Interpretation)
	assert.NotEmpty(t, *got.Interpretation)
	require.NotNil(t, got.GeneratedImageURL)
}

func TestInterpretUnknownDream(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/interpret/",
		map[string]any{"description": "a dream", "dreamId": 424242})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/api/health/db")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestNotFoundRoutes(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/tags/12345/", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/dreams/12345/", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestInvalidJSONBody(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/persons/", bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
