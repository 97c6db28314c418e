package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	ForceQuit    key.Binding
	Quit         key.Binding
	Back         key.Binding
	Open         key.Binding
	Navigate     key.Binding
	CycleType    key.Binding
	Sort         key.Binding
	Grid         key.Binding
	Refresh      key.Binding
	MyList       key.Binding
	Retry        key.Binding
	AddToWatch   key.Binding
	MarkWatched  key.Binding
	SwitchBucket key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		ForceQuit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Quit:         key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Open:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Navigate:     key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("↑↓←→", "move")),
		CycleType:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "type")),
		Sort:         key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "sort A-Z")),
		Grid:         key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "grid/list")),
		Refresh:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
		MyList:       key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "my list")),
		Retry:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		AddToWatch:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "to watch")),
		MarkWatched:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "watched")),
		SwitchBucket: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch list")),
	}
}

// screenKeys is the help.KeyMap for a single screen.
type screenKeys []key.Binding

func (s screenKeys) ShortHelp() []key.Binding  { return s }
func (s screenKeys) FullHelp() [][]key.Binding { return [][]key.Binding{s} }

func (k keyMap) forState(state appState) screenKeys {
	switch state {
	case stateCatalog:
		return screenKeys{k.Navigate, k.Open, k.CycleType, k.Sort, k.Grid, k.Refresh, k.MyList, k.ForceQuit}
	case stateCatalogError:
		return screenKeys{k.Retry, k.MyList, k.ForceQuit}
	case stateDetail:
		return screenKeys{k.AddToWatch, k.MarkWatched, k.MyList, k.Back, k.Quit}
	case stateDetailError:
		return screenKeys{k.Retry, k.Back, k.Quit}
	case stateMyList:
		return screenKeys{k.SwitchBucket, k.Back, k.Quit}
	case stateListError:
		return screenKeys{k.Retry, k.SwitchBucket, k.Back, k.Quit}
	default:
		return screenKeys{k.Back, k.ForceQuit}
	}
}
