package model

import "time"

// Person is a named individual, fictional character, or archetype that can
// appear in dreams.
type Person struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	PhotoURL     *string   `json:"photoUrl,omitempty"`
	CreationTime time.Time `json:"creationTime"`
}

// Tag is a descriptive label for dreams, e.g. "lucid" or "nightmare".
type Tag struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	CreationTime time.Time `json:"creationTime"`
}

// Dream is a single journal entry. Persons and Tags are embedded on reads;
// writes reference them by ID.
type Dream struct {
	ID                int64     `json:"id"`
	Description       string    `json:"description"`
	DreamDate         *string   `json:"dreamDate,omitempty"`
	Interpretation    *string   `json:"interpretation,omitempty"`
	GeneratedImageURL *string   `json:"generatedImageUrl,omitempty"`
	CreationTime      time.Time `json:"creationTime"`
	Persons           []*Person `json:"persons"`
	Tags              []*Tag    `json:"tags"`
}

// PersonPatch carries optional fields for creating or partially updating a
// Person. Nil means "leave unchanged" on update.
type PersonPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PhotoURL    *string `json:"photoUrl"`
}

// TagPatch is the create/update payload for a Tag.
type TagPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// DreamPatch is the create/update payload for a Dream. Persons and Tags are
// ID sets; nil keeps the current associations, an empty slice clears them.
type DreamPatch struct {
	Description *string  `json:"description"`
	DreamDate   *string  `json:"dreamDate"`
	Persons     *[]int64 `json:"persons"`
	Tags        *[]int64 `json:"tags"`
}

// PersonSummary is a Person with its dream count, as shown on the dashboard.
type PersonSummary struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	PhotoURL  *string `json:"photoUrl,omitempty"`
	QtyDreams int     `json:"qtyDreams"`
}

// DashboardData is the read-only aggregated view over the store. ChartLabels
// and ChartData are parallel arrays derived from PersonsSummary for charting
// clients.
type DashboardData struct {
	LatestDreams   []*Dream         `json:"latestDreams"`
	PersonsSummary []*PersonSummary `json:"personsSummary"`
	ChartLabels    []string         `json:"chartLabels"`
	ChartData      []int            `json:"chartData"`
}

// Interpretation is the payload produced by the interpretation gateway.
// Suggested IDs reference existing entities only; names of unknown persons
// found in the description are reported separately and never auto-created.
type Interpretation struct {
	Interpretation          string   `json:"interpretation"`
	SuggestedPersonIDs      []int64  `json:"suggestedPersonIds"`
	SuggestedNewPersonNames []string `json:"suggestedNewPersonNames"`
	SuggestedTagIDs         []int64  `json:"suggestedTagIds"`
	GeneratedImageURL       *string  `json:"generatedImageUrl,omitempty"`
}
