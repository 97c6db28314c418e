package model

import (
	"encoding/json"
	"testing"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"To Watch": StatusToWatch,
		"to-watch": StatusToWatch,
		"towatch":  StatusToWatch,
		"WATCHED":  StatusWatched,
	}
	for input, want := range cases {
		got, err := ParseStatus(input)
		if err != nil {
			t.Fatalf("%q: expected nil error, got %v", input, err)
		}
		if got != want {
			t.Fatalf("%q: expected %q, got %q", input, want, got)
		}
	}
	if _, err := ParseStatus("later"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestDate_AcceptsDateAndTimestamp(t *testing.T) {
	var detail MovieDetail
	if err := json.Unmarshal([]byte(`{"id":1,"release_date":"2010-07-16"}`), &detail); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if detail.ReleaseDate.Year() != "2010" {
		t.Fatalf("unexpected year: %s", detail.ReleaseDate.Year())
	}
	if err := json.Unmarshal([]byte(`{"id":1,"release_date":"2016-11-11T00:00:00Z"}`), &detail); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if detail.ReleaseDate.Year() != "2016" {
		t.Fatalf("unexpected year: %s", detail.ReleaseDate.Year())
	}
	if err := json.Unmarshal([]byte(`{"id":1,"release_date":null}`), &detail); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !detail.ReleaseDate.IsZero() || detail.ReleaseDate.Year() != "" {
		t.Fatalf("expected zero date, got %v", detail.ReleaseDate)
	}
}

func TestCatalogItem_Initial(t *testing.T) {
	if got := (CatalogItem{Title: "  élan"}).Initial(); got != "É" {
		t.Fatalf("expected É, got %q", got)
	}
	if got := (CatalogItem{}).Initial(); got != "?" {
		t.Fatalf("expected ?, got %q", got)
	}
}

func TestMyList_Bucket(t *testing.T) {
	list := EmptyList()
	list.Watched = append(list.Watched, WatchlistEntry{MovieID: 3})
	if len(list.Bucket(StatusWatched)) != 1 || len(list.Bucket(StatusToWatch)) != 0 {
		t.Fatalf("unexpected buckets: %+v", list)
	}
	if list.Bucket(Status("nope")) != nil {
		t.Fatal("expected nil for unknown status")
	}
}
