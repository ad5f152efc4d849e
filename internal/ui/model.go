package ui

import (
	"reflect"
	"strconv"
	"time"

	"github.com/atomicstack/feed-reader/internal/backend"
	"github.com/atomicstack/feed-reader/internal/feed"
	"github.com/atomicstack/feed-reader/internal/reader"
	"github.com/atomicstack/feed-reader/internal/theme"
	"github.com/atomicstack/feed-reader/internal/ui/command"
	uistate "github.com/atomicstack/feed-reader/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultTitle  = "feed reader"
	feedsListID   = "feeds"
	entriesListID = "entries"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options holds the optional settings for NewModel.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Watcher    *backend.Watcher
}

// Model implements the Bubble Tea model for the feed reader.
type Model struct {
	root     *reader.Root
	menu     *reader.Menu
	loader   *reader.Loader
	registry *feed.Registry
	bus      *command.Bus

	backend        *backend.Watcher
	backendLastErr string

	feeds    *uistate.List
	entries  *uistate.List
	rendered reader.Render

	loading      bool
	pendingID    string
	pendingLabel string
	errMsg       string
	infoMsg      string
	infoExpire   time.Time
	width        int
	height       int
	fixedWidth   bool
	fixedHeight  bool
	showFooter   bool
	filterCursor cursor.Model
	help         help.Model
	now          func() time.Time

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the UI on top of a shared root and the loader that fills it.
func NewModel(root *reader.Root, loader *reader.Loader, opts Options) *Model {
	registry := loader.Registry()
	m := &Model{
		root:       root,
		menu:       reader.NewMenu(root),
		loader:     loader,
		registry:   registry,
		bus:        command.New(),
		backend:    opts.Watcher,
		feeds:      uistate.NewList(feedsListID, "Feeds", feedItems(registry)),
		entries:    uistate.NewList(entriesListID, "Entries", nil),
		rendered:   root.Rendered(),
		showFooter: opts.ShowFooter,
		help:       newHelp(),
		now:        time.Now,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	c.SetMode(cursor.CursorStatic)
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		c.TextStyle = *styles.Filter
	}
	c.SetChar(" ")
	c.Focus()
	m.filterCursor = c
	m.syncEntries()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface. It starts loading the first feed.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadFeed(0)}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(feedLoadedMsg{}):     m.handleFeedLoadedMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// syncEntries copies the root's current render into the model and rebuilds
// the entry list. The cursor survives a refresh of the same feed and resets
// when a different feed is shown.
func (m *Model) syncEntries() {
	render := m.root.Rendered()
	if render.Index == m.rendered.Index && render.LoadedAt.Equal(m.rendered.LoadedAt) && len(m.entries.Full) == len(render.Entries) {
		m.rendered = render
		return
	}
	items := entryItems(render.Entries)
	if render.Index != m.rendered.Index {
		m.entries.Reset(items)
	} else {
		m.entries.UpdateItems(items)
	}
	m.rendered = render
	m.syncViewport()
}

func (m *Model) syncViewport() {
	if m.menu.Visible() {
		m.feeds.EnsureCursorVisible(m.maxVisibleItems())
		return
	}
	m.entries.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.help.Width = m.width
	m.syncViewport()
	return nil
}

func newHelp() help.Model {
	h := help.New()
	if styles.Footer != nil {
		h.Styles.ShortDesc = *styles.Footer
		h.Styles.ShortSeparator = *styles.Footer
	}
	return h
}

func feedItems(registry *feed.Registry) []uistate.Item {
	if registry == nil {
		return nil
	}
	descs := registry.All()
	items := make([]uistate.Item, len(descs))
	for i, desc := range descs {
		items[i] = uistate.Item{ID: strconv.Itoa(i), Label: desc.Name}
	}
	return items
}

func entryItems(entries []feed.Entry) []uistate.Item {
	items := make([]uistate.Item, len(entries))
	for i, entry := range entries {
		id := entry.Link
		if id == "" {
			id = strconv.Itoa(i)
		}
		items[i] = uistate.Item{ID: id, Label: entry.Title}
	}
	return items
}

func feedLabel(registry *feed.Registry, index int) string {
	desc, err := registry.Get(index)
	if err != nil {
		return strconv.Itoa(index + 1)
	}
	return desc.Name
}
