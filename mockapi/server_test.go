package mockapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"movielist-cli/model"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := New(Seed(), nil)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func TestCatalog_ListsSeedInOrder(t *testing.T) {
	_, ts := newTestServer(t)

	res, err := http.Get(ts.URL + "/movies/all")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	defer res.Body.Close()

	var items []model.CatalogItem
	if err := json.NewDecoder(res.Body).Decode(&items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != len(Seed()) {
		t.Fatalf("expected %d items, got %d", len(Seed()), len(items))
	}
	if items[0].ID != 1 || items[1].Type != model.TypeShow {
		t.Fatalf("unexpected items: %+v", items[:2])
	}
}

func TestDetail_StatusCodes(t *testing.T) {
	_, ts := newTestServer(t)

	cases := map[string]int{
		"/movies?id=1":   http.StatusOK,
		"/movies?id=999": http.StatusNotFound,
		"/movies?id=abc": http.StatusBadRequest,
		"/movies":        http.StatusBadRequest,
	}
	for path, want := range cases {
		res, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("%s: expected nil error, got %v", path, err)
		}
		res.Body.Close()
		if res.StatusCode != want {
			t.Fatalf("%s: expected %d, got %d", path, want, res.StatusCode)
		}
	}
}

func TestAdd_KeepsBucketsDisjoint(t *testing.T) {
	s, ts := newTestServer(t)

	post := func(body string) int {
		res, err := http.Post(ts.URL+"/mylist/add", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		res.Body.Close()
		return res.StatusCode
	}

	if code := post(`{"movieId":2,"status":"To Watch"}`); code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}
	if code := post(`{"movieId":2,"status":"Watched"}`); code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}

	list := s.List()
	if len(list.ToWatch) != 0 {
		t.Fatalf("expected item to leave To Watch, got %+v", list.ToWatch)
	}
	if len(list.Watched) != 1 || list.Watched[0].MovieID != 2 || list.Watched[0].Year != "2008" {
		t.Fatalf("unexpected Watched bucket: %+v", list.Watched)
	}

	if code := post(`{"movieId":2,"status":"Later"}`); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad status, got %d", code)
	}
	if code := post(`{"movieId":404,"status":"Watched"}`); code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", code)
	}
}

func TestList_AlwaysHasBothKeys(t *testing.T) {
	_, ts := newTestServer(t)

	res, err := http.Get(ts.URL + "/mylist")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	defer res.Body.Close()

	var shape map[string]json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&shape); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"To Watch", "Watched"} {
		if got := strings.TrimSpace(string(shape[key])); got != "[]" {
			t.Fatalf("expected empty array for %q, got %s", key, got)
		}
	}
}
