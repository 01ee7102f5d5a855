// Package models defines the shared data shapes exchanged between the
// widget, the search client and the FAQ search service.
package models

// Match is one ranked result returned by the search service. The service's
// own ranking order is authoritative; consumers never re-sort matches.
type Match struct {
	Answer   string `json:"answer"`
	Category string `json:"category"`
	Question string `json:"question"`
}
