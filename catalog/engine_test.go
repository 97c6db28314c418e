package catalog

import (
	"fmt"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"movielist-cli/model"
)

func items(defs ...string) []model.CatalogItem {
	out := make([]model.CatalogItem, 0, len(defs))
	for i, def := range defs {
		title, kind, _ := strings.Cut(def, ":")
		if kind == "" {
			kind = string(model.TypeMovie)
		}
		out = append(out, model.CatalogItem{ID: i + 1, Title: title, Type: model.ItemType(kind)})
	}
	return out
}

func titles(list []model.CatalogItem) string {
	parts := make([]string, len(list))
	for i, item := range list {
		parts[i] = item.Title
	}
	return strings.Join(parts, ",")
}

func TestMatchQuery_CaseInsensitiveSubstring(t *testing.T) {
	all := items("Alpha", "beta", "Gamma")

	for _, q := range []string{"a", "A"} {
		got := titles(MatchQuery(all, q))
		if got != "Alpha,beta,Gamma" {
			t.Fatalf("query %q: expected all titles containing a, got %s", q, got)
		}
	}
	if got := titles(MatchQuery(all, "ET")); got != "beta" {
		t.Fatalf("expected beta, got %s", got)
	}
	if got := titles(MatchQuery(all, "lph")); got != "Alpha" {
		t.Fatalf("expected Alpha, got %s", got)
	}
}

func TestMatchQuery_EmptyReturnsEverything(t *testing.T) {
	all := items("Gamma", "Alpha", "beta")
	got := MatchQuery(all, "")
	if titles(got) != titles(all) {
		t.Fatalf("expected unchanged collection, got %s", titles(got))
	}
	got[0].Title = "mutated"
	if all[0].Title != "Gamma" {
		t.Fatal("expected input slice to be left untouched")
	}
}

func TestFilterByType(t *testing.T) {
	all := items("Alpha:movie", "beta:show", "Gamma:movie", "Delta:Show")

	if got := titles(FilterByType(all, FilterShow)); got != "beta" {
		t.Fatalf("expected exact type match, got %s", got)
	}
	if got := titles(FilterByType(all, FilterMovie)); got != "Alpha,Gamma" {
		t.Fatalf("expected movies, got %s", got)
	}
	if got := titles(FilterByType(all, FilterAll)); got != titles(all) {
		t.Fatalf("expected all items in order, got %s", got)
	}
}

func TestSortByTitle_LocaleAwareStableIdempotent(t *testing.T) {
	all := items("Gamma", "Alpha", "beta")
	once := SortByTitle(all, language.English)
	if got := titles(once); got != "Alpha,beta,Gamma" {
		t.Fatalf("expected Alpha,beta,Gamma, got %s", got)
	}
	twice := SortByTitle(once, language.English)
	if titles(twice) != titles(once) {
		t.Fatalf("expected idempotent sort, got %s", titles(twice))
	}
	if titles(all) != "Gamma,Alpha,beta" {
		t.Fatalf("expected input order untouched, got %s", titles(all))
	}

	dupes := []model.CatalogItem{
		{ID: 1, Title: "Same"},
		{ID: 2, Title: "Other"},
		{ID: 3, Title: "Same"},
	}
	sorted := SortByTitle(dupes, language.English)
	if sorted[1].ID != 1 || sorted[2].ID != 3 {
		t.Fatalf("expected stable order for equal titles, got %+v", sorted)
	}
}

func TestSortByTitle_PreservesMultiset(t *testing.T) {
	all := items("b", "a", "c", "a", "B", "é", "e")
	sorted := SortByTitle(all, language.English)
	count := map[string]int{}
	for _, item := range all {
		count[fmt.Sprintf("%d/%s", item.ID, item.Title)]++
	}
	for _, item := range sorted {
		count[fmt.Sprintf("%d/%s", item.ID, item.Title)]--
	}
	for key, n := range count {
		if n != 0 {
			t.Fatalf("multiset changed for %s: %d", key, n)
		}
	}
}

func TestDerive_IndependentUsesLastFilterOnly(t *testing.T) {
	all := items("Alpha:movie", "beta:show", "Gamma:movie")
	state := NewViewState()
	state.Query = "alp"
	state.TypeFilter = FilterShow

	state.last = actionType
	if got := titles(Derive(all, state, PolicyIndependent, language.English)); got != "beta" {
		t.Fatalf("expected type filter alone, got %s", got)
	}
	state.last = actionQuery
	if got := titles(Derive(all, state, PolicyIndependent, language.English)); got != "Alpha" {
		t.Fatalf("expected query alone, got %s", got)
	}
}

func TestDerive_ComposedAppliesBoth(t *testing.T) {
	all := items("Alpha:movie", "Alpaca:show", "Gamma:movie")
	state := NewViewState()
	state.Query = "alp"
	state.TypeFilter = FilterShow
	if got := titles(Derive(all, state, PolicyComposed, language.English)); got != "Alpaca" {
		t.Fatalf("expected composed filter, got %s", got)
	}
}

func TestColumns_GridNeverChangesView(t *testing.T) {
	all := items("Gamma", "Alpha")
	state := NewViewState()
	list := Derive(all, state, PolicyIndependent, language.English)
	state.GridMode = true
	grid := Derive(all, state, PolicyIndependent, language.English)
	if titles(list) != titles(grid) {
		t.Fatalf("expected same view, got %s vs %s", titles(list), titles(grid))
	}
	if Columns(state) != 2 {
		t.Fatalf("expected 2 columns in grid mode, got %d", Columns(state))
	}
}

func TestParsePolicy(t *testing.T) {
	if p, err := ParsePolicy("Composed"); err != nil || p != PolicyComposed {
		t.Fatalf("expected composed, got %q %v", p, err)
	}
	if p, err := ParsePolicy(""); err != nil || p != PolicyIndependent {
		t.Fatalf("expected independent default, got %q %v", p, err)
	}
	if _, err := ParsePolicy("both"); err == nil {
		t.Fatal("expected error")
	}
}
