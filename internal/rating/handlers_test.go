package rating_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/parthjadhav85/MyTools-Website/internal/config"
	"github.com/parthjadhav85/MyTools-Website/internal/rating"
)

var testSeeds = config.RatingSeeds{
	PlaceholderVotes:   125,
	PlaceholderAverage: 4.8,
	SeedVotes:          120,
	SeedScore:          576,
}

// fakeStore implements rating.RatingStore in memory with the same seeding
// semantics as the real store.
type fakeStore struct {
	seeds config.RatingSeeds
	rows  map[string]*rating.Rating
}

func newFakeStore(seeds config.RatingSeeds) *fakeStore {
	return &fakeStore{seeds: seeds, rows: map[string]*rating.Rating{}}
}

func (f *fakeStore) Get(ctx context.Context, toolName string) (*rating.Rating, error) {
	row, ok := f.rows[rating.Key(toolName)]
	if !ok {
		return nil, rating.ErrNotRated
	}
	clone := *row
	return &clone, nil
}

func (f *fakeStore) Submit(ctx context.Context, toolName string, stars int) (*rating.Rating, error) {
	key := rating.Key(toolName)
	row, ok := f.rows[key]
	if !ok {
		row = &rating.Rating{ToolName: key, Votes: f.seeds.SeedVotes, TotalScore: f.seeds.SeedScore}
		f.rows[key] = row
	}
	row.Votes++
	row.TotalScore += stars
	clone := *row
	return &clone, nil
}

func newRatingServer(t *testing.T) (*httptest.Server, *fakeStore) {
	t.Helper()

	store := newFakeStore(testSeeds)
	handler := &rating.Handler{Store: store, Seeds: testSeeds}

	r := chi.NewRouter()
	r.Route("/api", func(api chi.Router) {
		handler.SetupRoutes(api)
	})

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts, store
}

func getBody(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, strings.TrimSpace(buf.String())
}

func rate(t *testing.T, url, toolName string, stars int) map[string]interface{} {
	t.Helper()

	payload, _ := json.Marshal(map[string]interface{}{"toolName": toolName, "stars": stars})
	resp, err := http.Post(url+"/api/rate", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST /api/rate: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

// TestGetRating_Placeholder verifies an unrated tool returns the fixed social
// proof numbers, serialized with one decimal.
func TestGetRating_Placeholder(t *testing.T) {
	ts, _ := newRatingServer(t)

	status, body := getBody(t, ts.URL+"/api/rating/newtool")
	if status != http.StatusOK {
		t.Errorf("expected 200, got %d", status)
	}
	if body != `{"votes":125,"average":4.8}` {
		t.Errorf("unexpected placeholder body: %s", body)
	}
}

// TestSubmitRating_FirstVote verifies the seeded baseline is applied before the
// first real vote: 120+1 votes, (576+5)/121 = 4.8.
func TestSubmitRating_FirstVote(t *testing.T) {
	ts, _ := newRatingServer(t)

	out := rate(t, ts.URL, "newtool", 5)
	if out["success"] != true {
		t.Errorf("expected success, got %v", out)
	}
	if out["votes"] != float64(121) {
		t.Errorf("expected 121 votes, got %v", out["votes"])
	}
	if out["average"] != 4.8 {
		t.Errorf("expected average 4.8, got %v", out["average"])
	}
}

// TestSubmitRating_Accumulates verifies sequential votes compound and the
// average is recomputed from cumulative totals each time.
func TestSubmitRating_Accumulates(t *testing.T) {
	ts, store := newRatingServer(t)

	first := rate(t, ts.URL, "pdf-merge", 5)
	second := rate(t, ts.URL, "pdf-merge", 1)

	if first["votes"] != float64(121) || second["votes"] != float64(122) {
		t.Errorf("votes did not accumulate: %v then %v", first["votes"], second["votes"])
	}

	row, err := store.Get(context.Background(), "pdf-merge")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if row.TotalScore != 576+5+1 {
		t.Errorf("expected total score %d, got %d", 576+5+1, row.TotalScore)
	}

	status, body := getBody(t, ts.URL+"/api/rating/pdf-merge")
	if status != http.StatusOK {
		t.Errorf("expected 200, got %d", status)
	}
	// 582/122 = 4.7704..., shown as 4.8
	if body != `{"votes":122,"average":4.8}` {
		t.Errorf("unexpected body after two votes: %s", body)
	}
}

// TestSubmitRating_StarsUnvalidated documents the deliberate absence of a
// range check on stars.
func TestSubmitRating_StarsUnvalidated(t *testing.T) {
	ts, _ := newRatingServer(t)

	out := rate(t, ts.URL, "newtool", 99)
	if out["success"] != true {
		t.Errorf("expected out-of-range stars to be accepted, got %v", out)
	}
}

func TestSubmitRating_MissingToolName(t *testing.T) {
	ts, _ := newRatingServer(t)

	payload, _ := json.Marshal(map[string]interface{}{"stars": 5})
	resp, err := http.Post(ts.URL+"/api/rate", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST /api/rate: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

// TestGetRating_CaseFolded verifies differently-cased names share one aggregate.
func TestGetRating_CaseFolded(t *testing.T) {
	ts, _ := newRatingServer(t)

	rate(t, ts.URL, "PDF-Merge", 5)

	status, body := getBody(t, ts.URL+"/api/rating/pdf-merge")
	if status != http.StatusOK {
		t.Errorf("expected 200, got %d", status)
	}
	if body != `{"votes":121,"average":4.8}` {
		t.Errorf("expected the vote under the folded key, got: %s", body)
	}
}

func TestKey(t *testing.T) {
	if got := rating.Key("  PDF-Merge "); got != "pdf-merge" {
		t.Errorf("expected folded trimmed key, got %q", got)
	}
}

func TestAverageMarshal(t *testing.T) {
	tests := []struct {
		in   rating.Average
		want string
	}{
		{rating.Average(5), "5.0"},
		{rating.Average(4.76), "4.8"},
		{rating.Average(4.74), "4.7"},
		{rating.Average(0), "0.0"},
	}

	for _, tt := range tests {
		got, err := json.Marshal(tt.in)
		if err != nil {
			t.Fatalf("marshal %v: %v", tt.in, err)
		}
		if string(got) != tt.want {
			t.Errorf("Average(%v): expected %s, got %s", float64(tt.in), tt.want, got)
		}
	}
}
