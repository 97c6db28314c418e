package catalog

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"movielist-cli/model"
)

type TypeFilter string

const (
	FilterAll   TypeFilter = "all"
	FilterMovie TypeFilter = "movie"
	FilterShow  TypeFilter = "show"
)

func ParseTypeFilter(value string) (TypeFilter, error) {
	switch TypeFilter(strings.TrimSpace(value)) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterMovie:
		return FilterMovie, nil
	case FilterShow:
		return FilterShow, nil
	default:
		return "", fmt.Errorf("unknown type filter %q", value)
	}
}

// Policy decides how the text query and the type filter combine.
type Policy string

const (
	// PolicyIndependent applies only the most recent filter action to the full collection.
	PolicyIndependent Policy = "independent"
	// PolicyComposed applies query and type filter together.
	PolicyComposed Policy = "composed"
)

func ParsePolicy(value string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(value))) {
	case "", PolicyIndependent:
		return PolicyIndependent, nil
	case PolicyComposed:
		return PolicyComposed, nil
	default:
		return "", fmt.Errorf("unknown filter policy %q (want %q or %q)", value, PolicyIndependent, PolicyComposed)
	}
}

type filterAction int

const (
	actionNone filterAction = iota
	actionQuery
	actionType
)

// ViewState is the screen-local state that drives the displayed view.
type ViewState struct {
	Query      string
	TypeFilter TypeFilter
	SortActive bool
	GridMode   bool

	last filterAction
}

func NewViewState() ViewState {
	return ViewState{TypeFilter: FilterAll}
}

// MatchQuery keeps items whose title contains q, ignoring case.
func MatchQuery(items []model.CatalogItem, q string) []model.CatalogItem {
	if q == "" {
		return slices.Clone(items)
	}
	needle := strings.ToLower(q)
	out := make([]model.CatalogItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), needle) {
			out = append(out, item)
		}
	}
	return out
}

// FilterByType keeps items whose type equals t exactly. FilterAll keeps everything.
func FilterByType(items []model.CatalogItem, t TypeFilter) []model.CatalogItem {
	if t == FilterAll || t == "" {
		return slices.Clone(items)
	}
	out := make([]model.CatalogItem, 0, len(items))
	for _, item := range items {
		if string(item.Type) == string(t) {
			out = append(out, item)
		}
	}
	return out
}

// SortByTitle returns a stable, locale-aware ascending copy of items.
func SortByTitle(items []model.CatalogItem, tag language.Tag) []model.CatalogItem {
	out := slices.Clone(items)
	col := collate.New(tag)
	slices.SortStableFunc(out, func(a, b model.CatalogItem) int {
		return col.CompareString(a.Title, b.Title)
	})
	return out
}

// Derive computes the displayed sequence from the full collection.
func Derive(items []model.CatalogItem, state ViewState, policy Policy, tag language.Tag) []model.CatalogItem {
	var out []model.CatalogItem
	switch policy {
	case PolicyComposed:
		out = FilterByType(MatchQuery(items, state.Query), state.TypeFilter)
	default:
		switch state.last {
		case actionQuery:
			out = MatchQuery(items, state.Query)
		case actionType:
			out = FilterByType(items, state.TypeFilter)
		default:
			out = slices.Clone(items)
		}
	}
	if state.SortActive {
		out = SortByTitle(out, tag)
	}
	return out
}

// Columns is the layout width of the view; it never affects order or membership.
func Columns(state ViewState) int {
	if state.GridMode {
		return 2
	}
	return 1
}
