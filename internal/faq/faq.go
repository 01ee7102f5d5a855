// Package faq loads and shapes the FAQ corpus shown in the viewer pane
// and indexed by the search service.
package faq

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/sreehariX/sarcv2/internal/models"
)

// Entry is one flattened question/answer pair with its category.
type Entry struct {
	Category string `json:"category"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// rawItem matches the per-category items in faqs.json
type rawItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Load reads a faqs.json file shaped {category: [{question, answer}, ...]}
// and flattens it into an ordered entry list. Categories are ordered by
// name so the flattened ranks are stable across runs.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read FAQ file: %w", err)
	}

	return Parse(data)
}

// Parse flattens raw faqs.json content into entries.
func Parse(data []byte) ([]Entry, error) {
	var byCategory map[string][]rawItem
	if err := json.Unmarshal(data, &byCategory); err != nil {
		return nil, fmt.Errorf("failed to parse FAQ file: %w", err)
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var entries []Entry
	for _, category := range categories {
		for _, item := range byCategory[category] {
			entries = append(entries, Entry{
				Category: category,
				Question: item.Question,
				Answer:   item.Answer,
			})
		}
	}

	return entries, nil
}

// Matches converts entries to the wire match type used by the search
// service and the widget.
func Matches(entries []Entry) []models.Match {
	matches := make([]models.Match, len(entries))
	for i, entry := range entries {
		matches[i] = models.Match{
			Answer:   entry.Answer,
			Category: entry.Category,
			Question: entry.Question,
		}
	}
	return matches
}
