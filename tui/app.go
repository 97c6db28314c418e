package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"

	"movielist-cli/catalog"
	"movielist-cli/model"
	"movielist-cli/service"
	"movielist-cli/store"
)

const addTimeout = 15 * time.Second

type appState int

const (
	stateLoadingCatalog appState = iota
	stateCatalog
	stateCatalogError
	stateLoadingDetail
	stateDetail
	stateDetailError
	stateLoadingList
	stateMyList
	stateListError
)

// Options wires the screens to their collaborators. Store may be nil.
type Options struct {
	Client   *service.Client
	Store    *store.Store
	Logger   *slog.Logger
	Policy   catalog.Policy
	Language language.Tag
}

type appModel struct {
	client *service.Client
	store  *store.Store
	logger *slog.Logger

	state  appState
	width  int
	height int

	// catalog screen
	catalog    *catalog.Store
	catalogGen int
	catalogErr error
	search     textinput.Model
	itemList   list.Model
	recent     map[int]bool

	// detail screen
	detailID     int
	detail       model.MovieDetail
	detailGen    int
	detailErr    error
	detailCancel context.CancelFunc
	detailView   viewport.Model
	adding       map[addKey]bool

	// my list screen
	myList         model.MyList
	listGen        int
	listErr        error
	listCancel     context.CancelFunc
	bucket         model.Status
	bucketList     list.Model
	listReturnTo   appState
	listReturnToOK bool

	spinner spinner.Model
	help    help.Model
	keys    keyMap
	status  string
}

type addKey struct {
	id     int
	status model.Status
}

type catalogMsg struct {
	gen       int
	items     []model.CatalogItem
	fromCache bool
	stale     bool
	err       error
}

type detailMsg struct {
	gen    int
	id     int
	detail model.MovieDetail
	err    error
}

type listMsg struct {
	gen  int
	list model.MyList
	err  error
}

type addMsg struct {
	id     int
	title  string
	status model.Status
	err    error
}

func New(opts Options) tea.Model {
	client := opts.Client
	if client == nil {
		client = service.NewClient(nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tag := opts.Language
	if tag == language.Und {
		tag = language.English
	}

	m := appModel{
		client:  client,
		store:   opts.Store,
		logger:  logger,
		state:   stateLoadingCatalog,
		catalog: catalog.NewStore(opts.Policy, tag),
		recent:  map[int]bool{},
		adding:  map[addKey]bool{},
		bucket:  model.StatusToWatch,
		myList:  model.EmptyList(),
		keys:    newKeyMap(),
		help:    help.New(),
	}

	ti := textinput.New()
	ti.Placeholder = "Search movies and shows..."
	ti.Prompt = "› "
	ti.CharLimit = 100
	ti.Width = 40
	ti.Focus()
	m.search = ti

	m.itemList = newList("Movie Collection")
	m.bucketList = newList(string(model.StatusToWatch))
	m.detailView = viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	m.catalogGen = 1
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.fetchCatalogCmd(m.catalogGen, true), m.spinner.Tick, textinput.Blink)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}
		m = next

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoadingState() {
			return m, cmd
		}
		return m, nil

	case catalogMsg:
		if msg.gen != m.catalogGen {
			m.logger.Debug("tui.stale_catalog", "gen", msg.gen, "current", m.catalogGen)
			return m, nil
		}
		if msg.err != nil && len(msg.items) == 0 {
			m.catalogErr = msg.err
			if len(m.catalog.Items()) > 0 {
				m.status = fmt.Sprintf("Refresh failed: %v", msg.err)
				return m, nil
			}
			if m.onCatalogScreen() {
				m.state = stateCatalogError
			} else {
				m.status = "Failed to load the catalog"
			}
			return m, nil
		}
		m.catalogErr = nil
		m.catalog.Replace(msg.items)
		m.loadRecent()
		m.refreshCatalogItems()
		switch {
		case msg.stale:
			m.status = "Offline: showing the last saved catalog"
		case msg.fromCache:
			m.status = fmt.Sprintf("Loaded %d titles (cached)", len(msg.items))
		default:
			m.status = fmt.Sprintf("Loaded %d titles", len(msg.items))
		}
		if m.state == stateLoadingCatalog || m.state == stateCatalogError {
			m.state = stateCatalog
		}
		return m, nil

	case detailMsg:
		if msg.gen != m.detailGen || msg.id != m.detailID {
			m.logger.Debug("tui.stale_detail", "id", msg.id, "gen", msg.gen, "current", m.detailGen)
			return m, nil
		}
		if msg.err != nil {
			m.detailErr = msg.err
			m.state = stateDetailError
			return m, nil
		}
		m.detailErr = nil
		m.detail = msg.detail
		m.detailView.SetContent(m.renderDetail())
		m.detailView.GotoTop()
		m.state = stateDetail
		if m.store != nil {
			if err := m.store.RememberViewed(msg.detail.Item()); err != nil {
				m.logger.Warn("tui.remember_viewed_failed", "id", msg.id, "err", err)
			} else {
				m.recent[msg.id] = true
				m.refreshCatalogItems()
			}
		}
		return m, nil

	case listMsg:
		if msg.gen != m.listGen {
			m.logger.Debug("tui.stale_list", "gen", msg.gen, "current", m.listGen)
			return m, nil
		}
		m.myList = msg.list
		m.listErr = msg.err
		if msg.err != nil {
			m.state = stateListError
			return m, nil
		}
		m.refreshBucketItems()
		m.state = stateMyList
		return m, nil

	case addMsg:
		delete(m.adding, addKey{id: msg.id, status: msg.status})
		if msg.err != nil {
			m.status = fmt.Sprintf("Could not add %s to %s: %v", msg.title, msg.status, msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("Added %s to %s", msg.title, msg.status)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateCatalog:
		m.itemList, cmd = m.itemList.Update(msg)
	case stateDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case stateMyList:
		m.bucketList, cmd = m.bucketList.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	body := ""
	switch m.state {
	case stateLoadingCatalog, stateLoadingDetail, stateLoadingList:
		body = m.loadingView()
	case stateCatalog:
		body = m.catalogView()
	case stateCatalogError:
		body = errorView("Failed to load the catalog", m.catalogErr)
	case stateDetail:
		body = m.detailView.View()
	case stateDetailError:
		body = errorView("Failed to load movie details", m.detailErr)
	case stateMyList:
		body = m.myListView()
	case stateListError:
		body = m.bucketTabs() + "\n\n" + errorView("Failed to load your list. Please try again later.", nil)
	}

	footer := m.help.View(m.keys.forState(m.state))
	if m.status != "" {
		footer = hint(m.status) + "\n" + footer
	}
	return header + "\n\n" + body + "\n\n" + footer
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Movie Collection")
	sub := []string{}
	switch m.state {
	case stateLoadingCatalog, stateCatalog, stateCatalogError:
		state := m.catalog.State()
		sub = append(sub, "Type: "+typeLabel(state.TypeFilter))
		if state.SortActive {
			sub = append(sub, "Sort: A-Z")
		}
		if state.GridMode {
			sub = append(sub, "View: grid")
		} else {
			sub = append(sub, "View: list")
		}
		sub = append(sub, "Filters: "+string(m.catalog.Policy()))
	case stateLoadingDetail, stateDetail, stateDetailError:
		if m.detail.Title != "" && m.detail.ID == m.detailID {
			sub = append(sub, m.detail.Title)
		} else {
			sub = append(sub, fmt.Sprintf("Item #%d", m.detailID))
		}
	case stateLoadingList, stateMyList, stateListError:
		sub = append(sub, "My List")
	}
	meta := ""
	if len(sub) > 0 {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(strings.Join(sub, " • "))
	}
	return title + meta
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit, true
	}

	switch m.state {
	case stateLoadingCatalog, stateCatalog, stateCatalogError:
		return m.handleCatalogKey(msg)
	case stateLoadingDetail, stateDetail, stateDetailError:
		return m.handleDetailKey(msg)
	case stateLoadingList, stateMyList, stateListError:
		return m.handleListKey(msg)
	}
	return m, nil, false
}

func (m appModel) handleCatalogKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Refresh), m.state == stateCatalogError && key.Matches(msg, m.keys.Retry):
		return m.reloadCatalog()
	case key.Matches(msg, m.keys.MyList):
		return m.openMyList(m.state)
	}
	if m.state != stateCatalog {
		return m, nil, true
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.catalog.SetQuery("")
			m.refreshCatalogItems()
		}
		return m, nil, true
	case key.Matches(msg, m.keys.CycleType):
		m.catalog.CycleTypeFilter()
		m.refreshCatalogItems()
		return m, nil, true
	case key.Matches(msg, m.keys.Sort):
		m.catalog.ToggleSort()
		m.refreshCatalogItems()
		return m, nil, true
	case key.Matches(msg, m.keys.Grid):
		m.catalog.ToggleGrid()
		return m, nil, true
	case key.Matches(msg, m.keys.Open):
		item, ok := m.itemList.SelectedItem().(catalogItem)
		if !ok {
			return m, nil, true
		}
		return m.openDetail(item.item)
	}

	if m.catalog.Columns() > 1 {
		if moved, ok := m.moveGridCursor(msg); ok {
			return moved, nil, true
		}
	}

	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown, tea.KeyHome, tea.KeyEnd:
		var cmd tea.Cmd
		m.itemList, cmd = m.itemList.Update(msg)
		return m, cmd, true
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.catalog.SetQuery(after)
		m.refreshCatalogItems()
	}
	return m, cmd, true
}

func (m appModel) handleDetailKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit, true
	case key.Matches(msg, m.keys.Back):
		m.leaveDetail()
		m.state = m.catalogState()
		return m, m.resumeSpinner(), true
	case key.Matches(msg, m.keys.MyList):
		return m.openMyList(m.state)
	}

	switch m.state {
	case stateDetailError:
		if key.Matches(msg, m.keys.Retry) {
			return m.loadDetail(m.detailID)
		}
		return m, nil, true
	case stateDetail:
		switch {
		case key.Matches(msg, m.keys.AddToWatch):
			return m.addToList(model.StatusToWatch)
		case key.Matches(msg, m.keys.MarkWatched):
			return m.addToList(model.StatusWatched)
		}
		return m, nil, false
	}
	return m, nil, true
}

func (m appModel) handleListKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit, true
	case key.Matches(msg, m.keys.Back):
		m = m.leaveMyList()
		return m, m.resumeSpinner(), true
	case key.Matches(msg, m.keys.SwitchBucket):
		if m.bucket == model.StatusToWatch {
			m.bucket = model.StatusWatched
		} else {
			m.bucket = model.StatusToWatch
		}
		m.refreshBucketItems()
		return m, nil, true
	case m.state == stateListError && key.Matches(msg, m.keys.Retry):
		return m.reloadMyList()
	}
	if m.state == stateMyList {
		return m, nil, false
	}
	return m, nil, true
}

func (m appModel) reloadCatalog() (appModel, tea.Cmd, bool) {
	m.catalogGen++
	m.catalogErr = nil
	if len(m.catalog.Items()) == 0 {
		m.state = stateLoadingCatalog
	}
	m.status = "Refreshing catalog..."
	return m, tea.Batch(m.fetchCatalogCmd(m.catalogGen, false), m.spinner.Tick), true
}

func (m appModel) openDetail(item model.CatalogItem) (appModel, tea.Cmd, bool) {
	m.detail = model.MovieDetail{}
	return m.loadDetail(item.ID)
}

func (m appModel) loadDetail(id int) (appModel, tea.Cmd, bool) {
	if m.detailCancel != nil {
		m.detailCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.detailCancel = cancel
	m.detailGen++
	m.detailID = id
	m.detailErr = nil
	m.state = stateLoadingDetail
	return m, tea.Batch(m.fetchDetailCmd(ctx, m.detailGen, id), m.spinner.Tick), true
}

// leaveDetail cancels the screen's request and invalidates late completions.
func (m *appModel) leaveDetail() {
	if m.detailCancel != nil {
		m.detailCancel()
		m.detailCancel = nil
	}
	m.detailGen++
}

func (m appModel) addToList(status model.Status) (appModel, tea.Cmd, bool) {
	k := addKey{id: m.detail.ID, status: status}
	if m.adding[k] {
		m.status = fmt.Sprintf("Already adding %s to %s...", m.detail.Title, status)
		return m, nil, true
	}
	m.adding[k] = true
	m.status = fmt.Sprintf("Adding %s to %s...", m.detail.Title, status)
	return m, m.addToListCmd(m.detail.ID, m.detail.Title, status), true
}

func (m appModel) openMyList(from appState) (appModel, tea.Cmd, bool) {
	m.listReturnTo = recoverStateFrom(from)
	m.listReturnToOK = true
	if m.listReturnTo != stateDetail {
		m.leaveDetail()
	}
	return m.reloadMyList()
}

func (m appModel) reloadMyList() (appModel, tea.Cmd, bool) {
	if m.listCancel != nil {
		m.listCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.listCancel = cancel
	m.listGen++
	m.listErr = nil
	m.state = stateLoadingList
	return m, tea.Batch(m.fetchListCmd(ctx, m.listGen), m.spinner.Tick), true
}

func (m appModel) leaveMyList() appModel {
	if m.listCancel != nil {
		m.listCancel()
		m.listCancel = nil
	}
	m.listGen++
	m.state = m.catalogState()
	if m.listReturnToOK && m.listReturnTo != stateCatalog {
		m.state = m.listReturnTo
	}
	m.listReturnToOK = false
	return m
}

func (m appModel) onCatalogScreen() bool {
	return m.state == stateLoadingCatalog ||
		m.state == stateCatalog ||
		m.state == stateCatalogError
}

// catalogState is the catalog screen state to return to from another screen.
func (m appModel) catalogState() appState {
	switch {
	case len(m.catalog.Items()) > 0:
		return stateCatalog
	case m.catalogErr != nil:
		return stateCatalogError
	default:
		return stateLoadingCatalog
	}
}

func (m *appModel) moveGridCursor(msg tea.KeyMsg) (appModel, bool) {
	total := len(m.catalog.Displayed())
	if total == 0 {
		return *m, false
	}
	cols := m.catalog.Columns()
	index := m.itemList.Index()
	switch msg.Type {
	case tea.KeyLeft:
		index--
	case tea.KeyRight:
		index++
	case tea.KeyUp:
		index -= cols
	case tea.KeyDown:
		index += cols
	default:
		return *m, false
	}
	index = max(0, min(index, total-1))
	m.itemList.Select(index)
	return *m, true
}

func (m *appModel) refreshCatalogItems() {
	displayed := m.catalog.Displayed()
	items := make([]list.Item, 0, len(displayed))
	for _, item := range displayed {
		items = append(items, catalogItem{item: item, recent: m.recent[item.ID]})
	}
	index := m.itemList.Index()
	m.itemList.SetItems(items)
	if index >= len(items) {
		index = max(0, len(items)-1)
	}
	m.itemList.Select(index)
}

func (m *appModel) refreshBucketItems() {
	entries := m.myList.Bucket(m.bucket)
	items := make([]list.Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, entryItem{entry: entry})
	}
	m.bucketList.Title = string(m.bucket)
	m.bucketList.SetItems(items)
	m.bucketList.Select(0)
}

func (m *appModel) loadRecent() {
	if m.store == nil {
		return
	}
	m.recent = m.store.RecentIDs()
}

// resumeSpinner restarts the tick loop when navigation lands on a loading screen.
func (m appModel) resumeSpinner() tea.Cmd {
	if m.isLoadingState() {
		return m.spinner.Tick
	}
	return nil
}

func (m appModel) isLoadingState() bool {
	return m.state == stateLoadingCatalog ||
		m.state == stateLoadingDetail ||
		m.state == stateLoadingList
}

func (m appModel) loadingView() string {
	title := "Loading"
	switch m.state {
	case stateLoadingCatalog:
		title = "Loading catalog"
	case stateLoadingDetail:
		title = "Loading details"
	case stateLoadingList:
		title = "Loading your movies"
	}
	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), title, hint("Fetching data..."))
}

func (m *appModel) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 9
	if h < 6 {
		h = 6
	}
	m.itemList.SetSize(m.width, h)
	m.bucketList.SetSize(m.width, h-2)
	m.detailView.Width = m.width
	m.detailView.Height = h + 2
	m.search.Width = max(20, m.width-8)
	m.help.Width = m.width
	if m.state == stateDetail {
		m.detailView.SetContent(m.renderDetail())
	}
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func errorView(message string, err error) string {
	out := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true).Render(message)
	if err != nil {
		out += "\n" + hint(err.Error())
	}
	return out + "\n\n" + hint("Press r to try again.")
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateLoadingCatalog, stateCatalogError:
		return stateCatalog
	case stateLoadingDetail, stateDetailError:
		return stateCatalog
	default:
		return state
	}
}

func typeLabel(t catalog.TypeFilter) string {
	switch t {
	case catalog.FilterMovie:
		return "Movies"
	case catalog.FilterShow:
		return "TV Shows"
	default:
		return "All"
	}
}

func (m appModel) fetchCatalogCmd(gen int, useCache bool) tea.Cmd {
	return func() tea.Msg {
		var cached []model.CatalogItem
		if m.store != nil {
			items, fresh, err := m.store.LoadCatalog()
			if err != nil {
				m.logger.Warn("tui.catalog_cache_unreadable", "err", err)
			}
			if useCache && err == nil && fresh && len(items) > 0 {
				return catalogMsg{gen: gen, items: items, fromCache: true}
			}
			cached = items
		}

		ctx := context.Background()
		items, err := m.client.FetchCatalog(ctx)
		if err != nil {
			m.logger.Warn("tui.catalog_fetch_failed", "err", err)
			if len(cached) > 0 {
				return catalogMsg{gen: gen, items: cached, fromCache: true, stale: true, err: err}
			}
			return catalogMsg{gen: gen, err: err}
		}
		if m.store != nil && len(items) > 0 {
			if err := m.store.SaveCatalog(items); err != nil {
				m.logger.Warn("tui.catalog_cache_write_failed", "err", err)
			}
		}
		return catalogMsg{gen: gen, items: items}
	}
}

func (m appModel) fetchDetailCmd(ctx context.Context, gen int, id int) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.client.FetchDetail(ctx, id)
		if err != nil && !errors.Is(err, context.Canceled) {
			m.logger.Warn("tui.detail_fetch_failed", "id", id, "err", err)
		}
		return detailMsg{gen: gen, id: id, detail: detail, err: err}
	}
}

func (m appModel) fetchListCmd(ctx context.Context, gen int) tea.Cmd {
	return func() tea.Msg {
		list, err := m.client.FetchList(ctx)
		return listMsg{gen: gen, list: list, err: err}
	}
}

// addToListCmd is not tied to the detail screen: the write finishes even if
// the user navigates away, and the outcome lands in the status line.
func (m appModel) addToListCmd(id int, title string, status model.Status) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), addTimeout)
		defer cancel()
		err := m.client.AddToList(ctx, id, status)
		return addMsg{id: id, title: title, status: status, err: err}
	}
}
