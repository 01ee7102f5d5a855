package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sreehariX/sarcv2/internal/faq"
)

var testEntries = []faq.Entry{
	{Category: "Billing", Question: "What is the refund policy?", Answer: "Refunds are available within 30 days of purchase."},
	{Category: "Billing", Question: "How do I update my payment method?", Answer: "Open account settings and choose payment."},
	{Category: "Courses", Question: "How long does a course take?", Answer: "Most courses take eight weeks."},
	{Category: "Courses", Question: "Can I pause my enrollment?", Answer: "Enrollment can be paused once per term."},
}

func postSearch(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSearchEndpointRanksResults(t *testing.T) {
	srv := New("127.0.0.1:0", testEntries)

	rec := postSearch(t, srv.Handler(), `{"query":"refund policy"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var results []RankedMatch
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("response is not a JSON array: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("no results for a query with an exact match")
	}
	if results[0].Question != "What is the refund policy?" {
		t.Errorf("top result = %q", results[0].Question)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Similarity > results[i-1].Similarity {
			t.Errorf("results not sorted: %f after %f",
				results[i].Similarity, results[i-1].Similarity)
		}
	}
}

func TestSearchEndpointEmptyResultsIsArray(t *testing.T) {
	srv := New("127.0.0.1:0", testEntries)

	rec := postSearch(t, srv.Handler(), `{"query":"zzzz qqqq"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %s, want [] not null", got)
	}
}

func TestSearchEndpointRejectsBlankQuery(t *testing.T) {
	srv := New("127.0.0.1:0", testEntries)

	for _, body := range []string{`{"query":""}`, `{"query":"   "}`, `{}`} {
		rec := postSearch(t, srv.Handler(), body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status for %s = %d, want 400", body, rec.Code)
		}
	}
}

func TestSearchEndpointRejectsMalformedBody(t *testing.T) {
	srv := New("127.0.0.1:0", testEntries)

	rec := postSearch(t, srv.Handler(), `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSearchEndpointAllowsAnyOrigin(t *testing.T) {
	srv := New("127.0.0.1:0", testEntries)

	rec := postSearch(t, srv.Handler(), `{"query":"refund"}`)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := New("127.0.0.1:0", testEntries)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRankerCapsResults(t *testing.T) {
	entries := make([]faq.Entry, 0, 8)
	for i := 0; i < 8; i++ {
		entries = append(entries, faq.Entry{
			Category: "General",
			Question: "refund question variant",
			Answer:   "refund answer",
		})
	}
	ranker := NewRanker(faq.Matches(entries))

	ranked := ranker.Rank("refund")
	if len(ranked) != maxResults {
		t.Errorf("got %d results, want %d", len(ranked), maxResults)
	}
}

func TestRankerScoresOverlap(t *testing.T) {
	ranker := NewRanker(faq.Matches(testEntries))

	ranked := ranker.Rank("pause enrollment")
	if len(ranked) == 0 {
		t.Fatal("no results")
	}
	if ranked[0].Question != "Can I pause my enrollment?" {
		t.Errorf("top result = %q", ranked[0].Question)
	}
	if ranked[0].Similarity != 1.0 {
		t.Errorf("similarity = %f, want 1.0 for full overlap", ranked[0].Similarity)
	}
}

func TestRankerEmptyQueryAfterStopwords(t *testing.T) {
	ranker := NewRanker(faq.Matches(testEntries))

	if got := ranker.Rank("what is the"); len(got) != 0 {
		t.Errorf("got %d results for stopword-only query", len(got))
	}
}
