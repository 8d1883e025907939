package interpreter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/somnologia/somnologia/internal/model"
)

// Remote forwards dream text to an external interpretation service over HTTP.
// One attempt per request; any transport failure or non-200 surfaces as
// model.ErrUnavailable.
type Remote struct {
	client *resty.Client
}

// NewRemote creates a Remote provider against the given base URL.
func NewRemote(baseURL string, timeout time.Duration) *Remote {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	return &Remote{client: c}
}

// entityRef is the name/id pair shipped to the provider so it can suggest
// existing entities without seeing the full records.
type entityRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type analyzeRequest struct {
	Description string      `json:"description"`
	Persons     []entityRef `json:"persons"`
	Tags        []entityRef `json:"tags"`
}

type analyzeResponse struct {
	Interpretation          string   `json:"interpretation"`
	SuggestedPersonIDs      []int64  `json:"suggestedPersonIds"`
	SuggestedNewPersonNames []string `json:"suggestedNewPersonNames"`
	SuggestedTagIDs         []int64  `json:"suggestedTagIds"`
}

type imageRequest struct {
	Description    string `json:"description"`
	Interpretation string `json:"interpretation,omitempty"`
}

type imageResponse struct {
	ImageURL *string `json:"imageUrl"`
}

func (r *Remote) Analyze(ctx context.Context, description string, known Known) (*model.Interpretation, error) {
	req := analyzeRequest{
		Description: description,
		Persons:     make([]entityRef, 0, len(known.Persons)),
		Tags:        make([]entityRef, 0, len(known.Tags)),
	}
	for _, p := range known.Persons {
		req.Persons = append(req.Persons, entityRef{ID: p.ID, Name: p.Name})
	}
	for _, t := range known.Tags {
		req.Tags = append(req.Tags, entityRef{ID: t.ID, Name: t.Name})
	}

	resp, err := r.client.R().SetContext(ctx).SetBody(&req).Post("/v1/analyze")
	if err != nil {
		return nil, fmt.Errorf("interpreter request: %v: %w", err, model.ErrUnavailable)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("interpreter status %d: %s: %w", resp.StatusCode(), resp.String(), model.ErrUnavailable)
	}

	var ar analyzeResponse
	if err := json.Unmarshal(resp.Body(), &ar); err != nil {
		return nil, fmt.Errorf("decode interpreter response: %v: %w", err, model.ErrUnavailable)
	}

	out := &model.Interpretation{
		Interpretation:          ar.Interpretation,
		SuggestedPersonIDs:      ar.SuggestedPersonIDs,
		SuggestedNewPersonNames: ar.SuggestedNewPersonNames,
		SuggestedTagIDs:         ar.SuggestedTagIDs,
	}
	if out.SuggestedPersonIDs == nil {
		out.SuggestedPersonIDs = []int64{}
	}
	if out.SuggestedNewPersonNames == nil {
		out.SuggestedNewPersonNames = []string{}
	}
	if out.SuggestedTagIDs == nil {
		out.SuggestedTagIDs = []int64{}
	}
	return out, nil
}

// GenerateImage asks the provider for an image URL; best-effort, so failures
// are reported to the caller who may ignore them.
func (r *Remote) GenerateImage(ctx context.Context, description, interpretation string) (*string, error) {
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(&imageRequest{Description: description, Interpretation: interpretation}).
		Post("/v1/image")
	if err != nil {
		return nil, fmt.Errorf("interpreter image request: %v: %w", err, model.ErrUnavailable)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("interpreter image status %d: %w", resp.StatusCode(), model.ErrUnavailable)
	}
	var ir imageResponse
	if err := json.Unmarshal(resp.Body(), &ir); err != nil {
		return nil, fmt.Errorf("decode image response: %v: %w", err, model.ErrUnavailable)
	}
	return ir.ImageURL, nil
}
