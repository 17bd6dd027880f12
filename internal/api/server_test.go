package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lifeverse/internal/catalog"
	"lifeverse/internal/config"
	"lifeverse/internal/game"
)

type memStore struct {
	m map[string][]byte
}

func (s *memStore) Put(_ context.Context, key string, blob []byte) error {
	s.m[key] = append([]byte(nil), blob...)
	return nil
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	b, ok := s.m[key]
	if !ok {
		return nil, game.ErrNoSave
	}
	return b, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	svc := game.NewService(cat, &memStore{m: map[string][]byte{}}, nil, 1)
	srv := New(config.APIConfig{}, nil, svc)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url, body string, out any) int {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	if code := getJSON(t, ts.URL+"/healthz", nil); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
}

func TestLeaderboardStub(t *testing.T) {
	ts := newTestServer(t)
	var out struct {
		Status string `json:"status"`
		Data   []any  `json:"data"`
	}
	if code := getJSON(t, ts.URL+"/api/leaderboard", &out); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if out.Status != "success" || out.Data == nil || len(out.Data) != 0 {
		t.Fatalf("payload = %+v", out)
	}
}

func TestStateEndpoint(t *testing.T) {
	ts := newTestServer(t)
	var view game.StateView
	if code := getJSON(t, ts.URL+"/v1/state", &view); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if view.Ledger.Cash != game.StartingCash || view.Stats.Age != 18 {
		t.Fatalf("unexpected starting state: %+v", view)
	}
}

func TestActionRejectionStatusCodes(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		path, body string
		want       int
	}{
		{"/v1/actions/work", "", http.StatusBadRequest},                      // no job
		{"/v1/actions/crime", `{"id":"jaywalking"}`, http.StatusNotFound},    // unknown tier
		{"/v1/actions/gamble", `{"amount":50}`, http.StatusBadRequest},       // below minimum
		{"/v1/actions/child", "", http.StatusBadRequest},                     // no spouse
		{"/v1/actions/does-not-exist", "", http.StatusNotFound},              // unknown action
		{"/v1/events/resolve", `{"choice":0}`, http.StatusBadRequest},        // nothing pending
	}
	for _, tc := range tests {
		if code := postJSON(t, ts.URL+tc.path, tc.body, nil); code != tc.want {
			t.Fatalf("%s: status = %d, want %d", tc.path, code, tc.want)
		}
	}
}

func TestActionSuccessReturnsState(t *testing.T) {
	ts := newTestServer(t)
	var out struct {
		Message string         `json:"message"`
		State   game.StateView `json:"state"`
	}
	code := postJSON(t, ts.URL+"/v1/actions/apply-job", `{"id":"fastfood"}`, &out)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if out.State.Job != "Fast Food Worker" {
		t.Fatalf("job = %q", out.State.Job)
	}
}

func TestAdvanceClock(t *testing.T) {
	ts := newTestServer(t)
	var view game.StateView
	code := postJSON(t, ts.URL+"/v1/clock/advance", `{"minutes":1440}`, &view)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if view.Clock.Day != 2 {
		t.Fatalf("day = %d, want 2", view.Clock.Day)
	}
	if code := postJSON(t, ts.URL+"/v1/clock/advance", `{"minutes":0}`, nil); code != http.StatusBadRequest {
		t.Fatalf("zero minutes accepted: %d", code)
	}
}

func TestSaveLoadCycle(t *testing.T) {
	ts := newTestServer(t)
	postJSON(t, ts.URL+"/v1/actions/apply-job", `{"id":"fastfood"}`, nil)
	if code := postJSON(t, ts.URL+"/v1/save", "", nil); code != http.StatusOK {
		t.Fatalf("save failed")
	}
	postJSON(t, ts.URL+"/v1/reset", "", nil)
	var view game.StateView
	if code := postJSON(t, ts.URL+"/v1/load", "", &view); code != http.StatusOK {
		t.Fatalf("load failed")
	}
	if view.Job != "Fast Food Worker" {
		t.Fatalf("job after load = %q", view.Job)
	}
}

func TestCatalogEndpoint(t *testing.T) {
	ts := newTestServer(t)
	var jobs []catalog.Job
	if code := getJSON(t, ts.URL+"/v1/catalog/jobs", &jobs); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(jobs) == 0 {
		t.Fatalf("no jobs returned")
	}
	if code := getJSON(t, ts.URL+"/v1/catalog/unicorns", nil); code != http.StatusNotFound {
		t.Fatalf("unknown kind status = %d", code)
	}
}
