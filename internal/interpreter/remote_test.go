package interpreter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somnologia/somnologia/internal/model"
)

func TestRemoteAnalyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/analyze", r.URL.Path)

		var req analyzeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "I met Ana at work", req.Description)
		require.Len(t, req.Persons, 1)
		assert.Equal(t, "Ana", req.Persons[0].Name)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(analyzeResponse{
			Interpretation:     "workplace anxiety",
			SuggestedPersonIDs: []int64{1},
			SuggestedTagIDs:    []int64{11},
		})
	}))
	defer srv.Close()

	rm := NewRemote(srv.URL, 5*time.Second)
	known := Known{
		Persons: []*model.Person{{ID: 1, Name: "Ana"}},
		Tags:    []*model.Tag{{ID: 11, Name: "realistic"}},
	}

	out, err := rm.Analyze(context.Background(), "I met Ana at work", known)
	require.NoError(t, err)
	assert.Equal(t, "workplace anxiety", out.Interpretation)
	assert.Equal(t, []int64{1}, out.SuggestedPersonIDs)
	assert.Equal(t, []int64{11}, out.SuggestedTagIDs)
	// nil slices in the wire response normalize to empty.
	assert.NotNil(t, out.SuggestedNewPersonNames)
}

func TestRemoteAnalyzeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	rm := NewRemote(srv.URL, 5*time.Second)
	_, err := rm.Analyze(context.Background(), "anything", Known{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnavailable))
}

func TestRemoteAnalyzeUnreachable(t *testing.T) {
	// Port 1 is never listening.
	rm := NewRemote("http://127.0.0.1:1", 500*time.Millisecond)
	_, err := rm.Analyze(context.Background(), "anything", Known{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnavailable))
}

func TestRemoteGenerateImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/image", r.URL.Path)
		url := "https://img.example/dream.png"
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(imageResponse{ImageURL: &url})
	}))
	defer srv.Close()

	rm := NewRemote(srv.URL, 5*time.Second)
	url, err := rm.GenerateImage(context.Background(), "a dream", "an interpretation")
	require.NoError(t, err)
	require.NotNil(t, url)
	assert.Equal(t, "https://img.example/dream.png", *url)
}
