package ui

import (
	"strconv"
	"unicode"

	"github.com/atomicstack/feed-reader/internal/logging"
	"github.com/atomicstack/feed-reader/internal/logging/events"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type keyMap struct {
	Menu      key.Binding
	ForceQuit key.Binding
	Quit      key.Binding
	Up        key.Binding
	Down      key.Binding
	EntryUp   key.Binding
	EntryDown key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding
	Select    key.Binding
	Close     key.Binding
	Reload    key.Binding
	Jump      key.Binding
}

var keys = keyMap{
	Menu:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "feeds")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Up:        key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
	EntryUp:   key.NewBinding(key.WithKeys("up", "k", "ctrl+p"), key.WithHelp("↑/k", "up")),
	EntryDown: key.NewBinding(key.WithKeys("down", "j", "ctrl+n"), key.WithHelp("↓/j", "down")),
	PageUp:    key.NewBinding(key.WithKeys("pgup")),
	PageDown:  key.NewBinding(key.WithKeys("pgdown")),
	Home:      key.NewBinding(key.WithKeys("home")),
	End:       key.NewBinding(key.WithKeys("end")),
	Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Jump: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "open feed"),
	),
}

func (k keyMap) menuHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Close, k.Menu}
}

func (k keyMap) readerHelp() []key.Binding {
	return []key.Binding{k.EntryUp, k.EntryDown, k.Menu, k.Jump, k.Reload, k.Quit}
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, keys.ForceQuit):
		return tea.Quit
	case key.Matches(keyMsg, keys.Menu):
		m.toggleMenu()
		return nil
	}
	if m.menu.Visible() {
		return m.handleMenuKey(keyMsg)
	}
	return m.handleReaderKey(keyMsg)
}

// toggleMenu flips the menu and, when it opens, starts from an empty filter
// with the rendered feed selected.
func (m *Model) toggleMenu() {
	m.menu.Toggle()
	if m.menu.Visible() {
		m.feeds.SetFilter("", 0)
		if idx := m.rendered.Index; idx >= 0 {
			m.feeds.Select(strconv.Itoa(idx))
		}
	}
	m.syncViewport()
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Close):
		if m.feeds.ClearFilter() {
			events.Filter.Cleared()
			m.syncViewport()
			return nil
		}
		m.toggleMenu()
		return nil
	case key.Matches(msg, keys.Select):
		return m.selectFeed()
	case key.Matches(msg, keys.Up):
		m.feeds.MoveCursorUp()
	case key.Matches(msg, keys.Down):
		m.feeds.MoveCursorDown()
	case key.Matches(msg, keys.PageUp):
		m.feeds.MoveCursorPageUp(m.maxVisibleItems())
	case key.Matches(msg, keys.PageDown):
		m.feeds.MoveCursorPageDown(m.maxVisibleItems())
	case key.Matches(msg, keys.Home):
		m.feeds.MoveCursorHome()
	case key.Matches(msg, keys.End):
		m.feeds.MoveCursorEnd()
	default:
		m.handleTextInput(msg)
		return nil
	}
	events.Menu.Cursor(m.feeds.Cursor)
	m.syncViewport()
	return nil
}

func (m *Model) selectFeed() tea.Cmd {
	item, ok := m.feeds.Current()
	if !ok {
		return nil
	}
	index, err := strconv.Atoi(item.ID)
	if err != nil {
		logging.Error(err)
		return nil
	}
	events.Menu.Select(index, item.Label, m.feeds.Filter)
	m.toggleMenu()
	return m.loadFeed(index)
}

func (m *Model) handleReaderKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Reload):
		index := m.rendered.Index
		if index < 0 {
			index = 0
		}
		return m.loadFeed(index)
	case key.Matches(msg, keys.Jump):
		digit := msg.String()
		return m.loadFeed(int(digit[0] - '1'))
	case key.Matches(msg, keys.EntryUp):
		m.entries.MoveCursorUp()
	case key.Matches(msg, keys.EntryDown):
		m.entries.MoveCursorDown()
	case key.Matches(msg, keys.PageUp):
		m.entries.MoveCursorPageUp(m.maxVisibleItems())
	case key.Matches(msg, keys.PageDown):
		m.entries.MoveCursorPageDown(m.maxVisibleItems())
	case key.Matches(msg, keys.Home):
		m.entries.MoveCursorHome()
	case key.Matches(msg, keys.End):
		m.entries.MoveCursorEnd()
	default:
		return nil
	}
	m.syncViewport()
	return nil
}

func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+u":
		if !m.feeds.ClearFilter() {
			return false
		}
		events.Filter.Cleared()
		return m.afterFilterEdit()
	case "ctrl+w":
		if !m.feeds.DeleteFilterWordBackward() {
			return false
		}
		events.Filter.WordBackspace(m.feeds.Filter)
		return m.afterFilterEdit()
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if !m.feeds.DeleteFilterRuneBackward() {
			return false
		}
		events.Filter.Backspace(m.feeds.Filter)
		return m.afterFilterEdit()
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
		}
		return m.appendToFilter(string(msg.Runes))
	case tea.KeySpace:
		return m.appendToFilter(" ")
	}
	return false
}

func (m *Model) appendToFilter(text string) bool {
	if !m.feeds.InsertFilterText(text) {
		return false
	}
	events.Filter.Append(m.feeds.Filter)
	return m.afterFilterEdit()
}

func (m *Model) afterFilterEdit() bool {
	m.forceClearInfo()
	m.syncViewport()
	return true
}

func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := m.feeds.Filter
	if text == "" {
		placeholder := []rune("(type to filter feeds)")
		caret := m.renderFilterCursor(string(placeholder[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(placeholder[1:]))
	}
	runes := []rune(text)
	pos := m.feeds.FilterCursorPos()
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	return m.filterCursor.View()
}
