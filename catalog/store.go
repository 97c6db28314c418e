package catalog

import (
	"golang.org/x/text/language"

	"movielist-cli/model"
)

var typeCycle = []TypeFilter{FilterAll, FilterMovie, FilterShow}

// Store holds the fetched collection and the view derived from it.
// It is owned by a single screen and is not safe for concurrent use.
type Store struct {
	items     []model.CatalogItem
	displayed []model.CatalogItem
	state     ViewState
	policy    Policy
	tag       language.Tag
}

func NewStore(policy Policy, tag language.Tag) *Store {
	if policy == "" {
		policy = PolicyIndependent
	}
	return &Store{
		state:  NewViewState(),
		policy: policy,
		tag:    tag,
	}
}

// Replace swaps the whole collection. The view state is kept.
func (s *Store) Replace(items []model.CatalogItem) {
	s.items = items
	s.recompute()
}

func (s *Store) SetQuery(q string) {
	s.state.Query = q
	s.filterAction(actionQuery)
}

func (s *Store) SetTypeFilter(t TypeFilter) {
	if t == "" {
		t = FilterAll
	}
	s.state.TypeFilter = t
	s.filterAction(actionType)
}

func (s *Store) CycleTypeFilter() TypeFilter {
	next := FilterAll
	for i, t := range typeCycle {
		if t == s.state.TypeFilter {
			next = typeCycle[(i+1)%len(typeCycle)]
			break
		}
	}
	s.SetTypeFilter(next)
	return next
}

func (s *Store) ToggleSort() bool {
	s.state.SortActive = !s.state.SortActive
	s.recompute()
	return s.state.SortActive
}

func (s *Store) ToggleGrid() bool {
	s.state.GridMode = !s.state.GridMode
	return s.state.GridMode
}

func (s *Store) Items() []model.CatalogItem     { return s.items }
func (s *Store) Displayed() []model.CatalogItem { return s.displayed }
func (s *Store) State() ViewState               { return s.state }
func (s *Store) Policy() Policy                 { return s.policy }
func (s *Store) Columns() int                   { return Columns(s.state) }

func (s *Store) filterAction(action filterAction) {
	s.state.last = action
	if s.policy == PolicyIndependent {
		// a new filter action overwrites any earlier sort
		s.state.SortActive = false
	}
	s.recompute()
}

func (s *Store) recompute() {
	s.displayed = Derive(s.items, s.state, s.policy, s.tag)
}
