package interpreter

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/somnologia/somnologia/internal/model"
)

// placeholderImageURL is served from static assets until a real image
// generator is wired in.
const placeholderImageURL = "/static/images/dream_placeholder.png"

// capitalizedWord matches candidate person names in a description.
var capitalizedWord = regexp.MustCompile(`\b[A-Z][a-z]+\b`)

// tagKeywords maps a tag name to description keywords that suggest it. Only
// tags that already exist in the store are ever suggested.
var tagKeywords = map[string][]string{
	"lucid":     {"lucid", "aware", "control", "realize", "wake up"},
	"nightmare": {"nightmare", "scary", "fear", "monster", "chase", "anxiety"},
	"fantasy":   {"flying", "magic", "mythical", "dragon", "unicorn", "adventure"},
	"realistic": {"work", "school", "daily life", "routine", "normal"},
}

// Artemidorus is the deterministic rule-based interpreter used when no real
// AI provider is configured. Named for the author of the Oneirocritica.
type Artemidorus struct{}

func NewArtemidorus() *Artemidorus { return &Artemidorus{} }

func (a *Artemidorus) Analyze(_ context.Context, description string, known Known) (*model.Interpretation, error) {
	out := &model.Interpretation{
		SuggestedPersonIDs:      []int64{},
		SuggestedNewPersonNames: []string{},
		SuggestedTagIDs:         []int64{},
	}
	if description == "" {
		return out, nil
	}

	out.Interpretation = fmt.Sprintf(
		"Interpretation for %q: this dream suggests deep subconscious processing related to recurring waking-life themes.",
		truncate(description, 100),
	)

	// Person matching: capitalized words against known names, case-insensitive.
	knownPersons := make(map[string]int64, len(known.Persons))
	for _, p := range known.Persons {
		knownPersons[strings.ToLower(p.Name)] = p.ID
	}
	seenIDs := map[int64]bool{}
	seenNew := map[string]bool{}
	for _, name := range capitalizedWord.FindAllString(description, -1) {
		if id, ok := knownPersons[strings.ToLower(name)]; ok {
			if !seenIDs[id] {
				seenIDs[id] = true
				out.SuggestedPersonIDs = append(out.SuggestedPersonIDs, id)
			}
		} else if !seenNew[name] {
			seenNew[name] = true
			out.SuggestedNewPersonNames = append(out.SuggestedNewPersonNames, name)
		}
	}
	sort.Strings(out.SuggestedNewPersonNames)

	// Tag suggestion: keyword table filtered down to tags that exist.
	knownTags := make(map[string]int64, len(known.Tags))
	for _, t := range known.Tags {
		knownTags[strings.ToLower(t.Name)] = t.ID
	}
	lower := strings.ToLower(description)
	suggested := map[int64]bool{}
	for tagName, keywords := range tagKeywords {
		id, ok := knownTags[tagName]
		if !ok {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				if !suggested[id] {
					suggested[id] = true
					out.SuggestedTagIDs = append(out.SuggestedTagIDs, id)
				}
				break
			}
		}
	}
	sort.Slice(out.SuggestedTagIDs, func(i, j int) bool { return out.SuggestedTagIDs[i] < out.SuggestedTagIDs[j] })

	return out, nil
}

// GenerateImage returns a static placeholder; Artemidorus draws no pictures.
func (a *Artemidorus) GenerateImage(_ context.Context, _, _ string) (*string, error) {
	url := placeholderImageURL
	return &url, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
