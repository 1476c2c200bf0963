package notion

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testToken = "secret_token"
	testDB    = "db-1"
	statsID   = "stats-page"
)

// fakeNotion serves a goal database keyed by title plus standalone pages.
type fakeNotion struct {
	mu      sync.Mutex
	titles  map[string]string   // title -> page id
	hours   map[string]*float64 // page id -> hours, nil means null
	patches []string
	failOn  map[string]bool // page ids whose PATCH fails
}

func newFakeNotion(t *testing.T) (*fakeNotion, *httptest.Server) {
	f := &fakeNotion{
		titles: map[string]string{},
		hours:  map[string]*float64{},
		failOn: map[string]bool{},
	}
	srv := httptest.NewServer(http.HandlerFunc(f.serve(t)))
	t.Cleanup(srv.Close)
	return f, srv
}

func num(v float64) *float64 { return &v }

func (f *fakeNotion) page(id string) map[string]any {
	return map[string]any{
		"object": "page",
		"id":     id,
		"properties": map[string]any{
			HoursProperty: map[string]any{"type": "number", "number": f.hours[id]},
		},
	}
}

func (f *fakeNotion) value(id string) *float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hours[id]
}

func (f *fakeNotion) patched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.patches...)
}

func notionError(w http.ResponseWriter, status int, code, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"object": "error", "status": status, "code": code, "message": msg})
}

func (f *fakeNotion) serve(t *testing.T) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if r.Header.Get("Authorization") != "Bearer "+testToken {
			notionError(w, http.StatusUnauthorized, "unauthorized", "API token is invalid.")
			return
		}
		assert.Equal(t, DefaultVersion, r.Header.Get("Notion-Version"))

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/databases/"+testDB+"/query":
			var body struct {
				Filter struct {
					Property string `json:"property"`
					Title    struct {
						Equals string `json:"equals"`
					} `json:"title"`
				} `json:"filter"`
			}
			if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
				notionError(w, http.StatusBadRequest, "validation_error", "bad body")
				return
			}
			assert.Equal(t, TitleProperty, body.Filter.Property)
			results := []any{}
			if id, ok := f.titles[body.Filter.Title.Equals]; ok {
				results = append(results, f.page(id))
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"object": "list", "results": results})
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/pages/"):
			id := strings.TrimPrefix(r.URL.Path, "/pages/")
			if _, ok := f.hours[id]; !ok {
				notionError(w, http.StatusNotFound, "object_not_found", "Could not find page.")
				return
			}
			_ = json.NewEncoder(w).Encode(f.page(id))
		case r.Method == http.MethodPatch && strings.HasPrefix(r.URL.Path, "/pages/"):
			id := strings.TrimPrefix(r.URL.Path, "/pages/")
			if f.failOn[id] {
				notionError(w, http.StatusConflict, "conflict_error", "Conflict occurred while saving.")
				return
			}
			var body struct {
				Properties map[string]struct {
					Number float64 `json:"number"`
				} `json:"properties"`
			}
			if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
				notionError(w, http.StatusBadRequest, "validation_error", "bad body")
				return
			}
			v := body.Properties[HoursProperty].Number
			f.hours[id] = &v
			f.patches = append(f.patches, id)
			_ = json.NewEncoder(w).Encode(f.page(id))
		default:
			notionError(w, http.StatusNotFound, "invalid_request_url", "Invalid request URL.")
		}
	}
}

func newTestLedger(srv *httptest.Server, stats string) *Ledger {
	client := NewClient(context.Background(), srv.URL, "", testToken, testDB, srv.Client())
	return NewLedger(client, stats, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRecordAchievementUpdatesGoalAndStats(t *testing.T) {
	fake, srv := newFakeNotion(t)
	fake.titles["Read"] = "goal-read"
	fake.hours["goal-read"] = num(5)
	fake.hours[statsID] = num(40)

	res, err := newTestLedger(srv, statsID).RecordAchievement(context.Background(), "Read", 1)
	require.NoError(t, err)

	assert.Equal(t, 6.0, *fake.value("goal-read"))
	assert.Equal(t, 41.0, *fake.value(statsID))
	require.NotNil(t, res.Goal)
	assert.Equal(t, 5.0, res.Goal.Before)
	assert.Equal(t, 6.0, res.Goal.After)
	require.NotNil(t, res.Stats)
	assert.Equal(t, 40.0, res.Stats.Before)
	assert.Equal(t, 41.0, res.Stats.After)
	assert.Equal(t, []string{"goal-read", statsID}, fake.patched())
}

func TestRecordAchievementTreatsNullAsZero(t *testing.T) {
	fake, srv := newFakeNotion(t)
	fake.titles["Gym"] = "goal-gym"
	fake.hours["goal-gym"] = nil
	fake.hours[statsID] = nil

	_, err := newTestLedger(srv, statsID).RecordAchievement(context.Background(), "Gym", 1.5)
	require.NoError(t, err)
	assert.Equal(t, 1.5, *fake.value("goal-gym"))
	assert.Equal(t, 1.5, *fake.value(statsID))
}

func TestRecordAchievementGoalNotFoundWritesNothing(t *testing.T) {
	fake, srv := newFakeNotion(t)
	fake.hours[statsID] = num(10)

	res, err := newTestLedger(srv, statsID).RecordAchievement(context.Background(), "Unknown", 1)
	assert.ErrorIs(t, err, ErrGoalNotFound)
	assert.Nil(t, res.Goal)
	assert.Nil(t, res.Stats)
	assert.Empty(t, fake.patched())
	assert.Equal(t, 10.0, *fake.value(statsID))
}

func TestRecordAchievementStatsUpdatedWhenGoalWriteFails(t *testing.T) {
	fake, srv := newFakeNotion(t)
	fake.titles["Read"] = "goal-read"
	fake.hours["goal-read"] = num(5)
	fake.hours[statsID] = num(40)
	fake.failOn["goal-read"] = true

	res, err := newTestLedger(srv, statsID).RecordAchievement(context.Background(), "Read", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpdateFailed)
	assert.ErrorIs(t, res.Goal.Err, ErrUpdateFailed)
	assert.NoError(t, res.Stats.Err)

	assert.Equal(t, 5.0, *fake.value("goal-read"))
	assert.Equal(t, 41.0, *fake.value(statsID))

	var apiErr *APIError
	require.ErrorAs(t, res.Goal.Err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "conflict_error", apiErr.Code)
}

func TestRecordAchievementGoalKeptWhenStatsWriteFails(t *testing.T) {
	fake, srv := newFakeNotion(t)
	fake.titles["Read"] = "goal-read"
	fake.hours["goal-read"] = num(5)
	fake.hours[statsID] = num(40)
	fake.failOn[statsID] = true

	res, err := newTestLedger(srv, statsID).RecordAchievement(context.Background(), "Read", 1)
	require.Error(t, err)
	assert.NoError(t, res.Goal.Err)
	assert.ErrorIs(t, res.Stats.Err, ErrUpdateFailed)
	assert.Equal(t, 6.0, *fake.value("goal-read"))
}

func TestRecordAchievementMissingStatsPage(t *testing.T) {
	fake, srv := newFakeNotion(t)
	fake.titles["Read"] = "goal-read"
	fake.hours["goal-read"] = num(2)

	res, err := newTestLedger(srv, "nope").RecordAchievement(context.Background(), "Read", 1)
	require.Error(t, err)
	assert.ErrorIs(t, res.Stats.Err, ErrQueryFailed)
	assert.Equal(t, 3.0, *fake.value("goal-read"))
}

func TestRecordAchievementWithoutStatsConfigured(t *testing.T) {
	fake, srv := newFakeNotion(t)
	fake.titles["Read"] = "goal-read"
	fake.hours["goal-read"] = num(2)

	res, err := newTestLedger(srv, "").RecordAchievement(context.Background(), "Read", 1)
	require.NoError(t, err)
	assert.ErrorIs(t, res.Stats.Err, ErrStatsNotConfigured)
	assert.Equal(t, []string{"goal-read"}, fake.patched())
}

func TestQueryFailureIsReported(t *testing.T) {
	_, srv := newFakeNotion(t)
	client := NewClient(context.Background(), srv.URL, "", "bad-token", testDB, srv.Client())
	ledger := NewLedger(client, statsID, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := ledger.RecordAchievement(context.Background(), "Read", 1)
	assert.ErrorIs(t, err, ErrQueryFailed)
	assert.NotErrorIs(t, err, ErrGoalNotFound)
	assert.Contains(t, err.Error(), "API token is invalid.")
}

func TestPageHours(t *testing.T) {
	p := &Page{Properties: map[string]json.RawMessage{}}
	assert.Zero(t, p.Hours())

	p.Properties[HoursProperty] = json.RawMessage(`{"type":"number","number":null}`)
	assert.Zero(t, p.Hours())

	p.Properties[HoursProperty] = json.RawMessage(`{"type":"number","number":7.25}`)
	assert.Equal(t, 7.25, p.Hours())
}
