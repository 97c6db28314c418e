package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"movielist-cli/mockapi"
	"movielist-cli/model"
)

func serveBody(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mylist" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchList_OK(t *testing.T) {
	server := serveBody(t, `{
  "To Watch": [
    {"movieId": 1, "title": "Alpha", "poster_url": "https://example.com/a.jpg", "year": 2021, "genre": ["Drama"]},
    {"movieId": "2", "title": "beta", "year": "2019", "genre": "Comedy, Romance"}
  ],
  "Watched": [
    {"movieId": 3, "title": "Gamma"}
  ]
}`)

	list, err := newTestClient(server).FetchList(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(list.ToWatch) != 2 || len(list.Watched) != 1 {
		t.Fatalf("unexpected buckets: %+v", list)
	}
	second := list.ToWatch[1]
	if second.MovieID != 2 || second.Year != "2019" || len(second.Genre) != 2 || second.Genre[1] != "Romance" {
		t.Fatalf("unexpected tolerant decode: %+v", second)
	}
	if list.ToWatch[0].Year != "2021" {
		t.Fatalf("expected numeric year to decode, got %q", list.ToWatch[0].Year)
	}
	if list.Watched[0].DisplayYear() != "2024" || list.Watched[0].DisplayGenre() != "Action, Adventure" {
		t.Fatalf("unexpected display fallbacks: %+v", list.Watched[0])
	}
}

func TestFetchList_MalformedShapesFallBackToEmpty(t *testing.T) {
	cases := map[string]string{
		"missing watched":  `{"To Watch": [{"movieId": 1, "title": "Alpha"}]}`,
		"missing to watch": `{"Watched": []}`,
		"null bucket":      `{"To Watch": [], "Watched": null}`,
		"bucket not array": `{"To Watch": {}, "Watched": []}`,
		"array body":       `[]`,
		"not json":         `<html>oops</html>`,
		"empty body":       ``,
		"bad entry":        `{"To Watch": [{"movieId": "abc"}], "Watched": []}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			server := serveBody(t, body)
			list, err := newTestClient(server).FetchList(context.Background())
			if err != nil {
				t.Fatalf("expected absorbed error, got %v", err)
			}
			if list.ToWatch == nil || list.Watched == nil {
				t.Fatalf("expected non-nil buckets, got %#v", list)
			}
			if len(list.ToWatch) != 0 || len(list.Watched) != 0 {
				t.Fatalf("expected both buckets empty, got %+v", list)
			}
		})
	}
}

func TestFetchList_TransportFailureReturnsEmptyAndError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server)
	client.maxAttempts = 1
	list, err := client.FetchList(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if len(list.ToWatch) != 0 || len(list.Watched) != 0 || list.ToWatch == nil {
		t.Fatalf("expected empty buckets, got %#v", list)
	}
}

func TestAddToList_PostsBody(t *testing.T) {
	var got model.AddRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/mylist/add" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Fatalf("unexpected content type: %s", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	if err := newTestClient(server).AddToList(context.Background(), 42, model.StatusWatched); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got.MovieID != 42 || got.Status != model.StatusWatched {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestAddToList_ReturnsFailureWithoutRetry(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := newTestClient(server).AddToList(context.Background(), 42, model.StatusToWatch)
	if err == nil {
		t.Fatal("expected error to be returned to the caller")
	}
	if n := atomic.LoadInt32(&attempts); n != 1 {
		t.Fatalf("expected a single attempt, got %d", n)
	}
}

func TestAddToList_Validation(t *testing.T) {
	client := NewClient(nil)
	if err := client.AddToList(context.Background(), 0, model.StatusWatched); err == nil {
		t.Fatal("expected error for invalid id")
	}
	if err := client.AddToList(context.Background(), 1, model.Status("Later")); err == nil {
		t.Fatal("expected error for invalid status")
	}
}

// The server gives no read-your-write guarantee, so callers must refetch and
// tolerate a list that does not show the new entry yet.
func TestAddThenFetch_NoSynchronousConsistency(t *testing.T) {
	var adds int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/mylist/add":
			atomic.AddInt32(&adds, 1)
			w.WriteHeader(http.StatusCreated)
		case "/mylist":
			// replica lag: the add has not landed yet
			_, _ = w.Write([]byte(`{"To Watch": [], "Watched": []}`))
		}
	}))
	defer server.Close()

	client := newTestClient(server)
	if err := client.AddToList(context.Background(), 42, model.StatusWatched); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	list, err := client.FetchList(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if n := atomic.LoadInt32(&adds); n != 1 {
		t.Fatalf("expected the add to reach the server, got %d", n)
	}
	// the client reports what the server returned; it never patches the entry in itself
	if len(list.Watched) != 0 {
		t.Fatalf("expected the lagging server view, got %+v", list.Watched)
	}
}

func TestWatchlist_AgainstMockAPI(t *testing.T) {
	api := mockapi.New(mockapi.Seed(), nil)
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	client := newTestClient(server)
	ctx := context.Background()

	if err := client.AddToList(ctx, 1, model.StatusToWatch); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := client.AddToList(ctx, 1, model.StatusWatched); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	list, err := client.FetchList(ctx)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(list.ToWatch) != 0 || len(list.Watched) != 1 || list.Watched[0].MovieID != 1 {
		t.Fatalf("unexpected list: %+v", list)
	}

	items, err := client.FetchCatalog(ctx)
	if err != nil || len(items) != len(mockapi.Seed()) {
		t.Fatalf("unexpected catalog: %d items, err %v", len(items), err)
	}
	if _, err := client.FetchDetail(ctx, 999); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
