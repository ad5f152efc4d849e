package ui

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/feed-reader/internal/feed"
	"github.com/atomicstack/feed-reader/internal/format/table"
	uistate "github.com/atomicstack/feed-reader/internal/ui/state"
	"github.com/charmbracelet/lipgloss"
	humanize "github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
)

const (
	menuTitle      = "Feeds"
	untitledEntry  = "(untitled)"
	infoLifetime   = 5 * time.Second
	headerLoading  = "loading"
	titleSeparator = " · "
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.menu.Visible() {
		return m.viewMenu()
	}
	return m.viewEntries()
}

func (m *Model) viewEntries() string {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: m.header(), style: styles.Header})
	entries := m.rendered.Entries
	if len(entries) == 0 {
		if m.loading {
			lines = append(lines, styledLine{text: "Loading…", style: styles.Loading})
		} else {
			lines = append(lines, styledLine{text: "(no entries)", style: styles.Info})
		}
	} else {
		visible, start := m.entries.Visible(m.maxVisibleItems())
		for i := range visible {
			idx := start + i
			if idx >= len(entries) {
				break
			}
			lines = append(lines, m.buildItemLine(m.entryLabel(entries[idx]), idx == m.entries.Cursor, m.width))
		}
		if selected, ok := m.selectedEntry(); ok && selected.Snippet != "" {
			lines = append(lines, styledLine{})
			lines = append(lines, styledLine{text: selected.Snippet, style: styles.Snippet})
		}
	}
	prompt := ""
	if selected, ok := m.selectedEntry(); ok && selected.Link != "" {
		prompt = selected.Link
		if styles.Link != nil {
			prompt = styles.Link.Render(prompt)
		}
	}
	return m.compose(lines, prompt, m.help.ShortHelpView(keys.readerHelp()))
}

func (m *Model) viewMenu() string {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: menuTitle, style: styles.MenuHeader})
	if len(m.feeds.Items) == 0 {
		msg := "(no feeds)"
		if m.feeds.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", m.feeds.Filter)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
	} else {
		labels := m.menuLabels(m.feeds.Items)
		visible, start := m.feeds.Visible(m.maxVisibleItems())
		for i := range visible {
			idx := start + i
			lines = append(lines, m.buildItemLine(labels[idx], idx == m.feeds.Cursor, m.width))
		}
	}
	return m.compose(lines, m.filterPrompt(), m.help.ShortHelpView(keys.menuHelp()))
}

// compose appends the info and footer blocks, fits the lines to the window,
// and adds the bottom bar (status line and prompt).
func (m *Model) compose(lines []styledLine, prompt, footer string) string {
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footer, raw: true})
	}
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	bottomLines := []styledLine{
		m.statusLine(),
		{text: prompt, raw: true},
	}
	bottomLines = applyWidth(bottomLines, m.width)
	lines = append(lines, bottomLines...)
	return renderLines(lines)
}

func (m *Model) header() string {
	title := defaultTitle
	if !m.rendered.Empty() {
		title = m.rendered.Name
		if m.registry != nil {
			title = fmt.Sprintf("%s (%d/%d)", title, m.rendered.Index+1, m.registry.Len())
		}
	}
	if m.loading {
		title += titleSeparator + headerLoading
		if m.pendingLabel != "" {
			title += " " + m.pendingLabel
		}
		title += "…"
	}
	return title
}

func (m *Model) statusLine() styledLine {
	switch {
	case m.errMsg != "":
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	case m.backendLastErr != "":
		return styledLine{text: fmt.Sprintf("Refresh failed: %s", m.backendLastErr), style: styles.Error}
	}
	return styledLine{}
}

func (m *Model) entryLabel(entry feed.Entry) string {
	title := strings.TrimSpace(entry.Title)
	if title == "" {
		title = untitledEntry
	}
	if entry.Published.IsZero() {
		return title
	}
	return title + titleSeparator + humanize.RelTime(entry.Published, m.now(), "ago", "from now")
}

func (m *Model) selectedEntry() (feed.Entry, bool) {
	idx := m.entries.Cursor
	if idx < 0 || idx >= len(m.rendered.Entries) {
		return feed.Entry{}, false
	}
	return m.rendered.Entries[idx], true
}

// menuLabels lays the feed rows out as aligned number, name, and host
// columns. The rendered feed is marked with a dot.
func (m *Model) menuLabels(items []uistate.Item) []string {
	rows := make([][]string, len(items))
	for i, item := range items {
		index, ok := m.feedIndex(item.ID)
		if !ok {
			rows[i] = []string{"", item.Label}
			continue
		}
		name := item.Label
		if index == m.rendered.Index {
			name += " •"
		}
		host := ""
		if desc, err := m.registry.Get(index); err == nil {
			host = feedHost(desc.URL)
		}
		rows[i] = []string{fmt.Sprintf("%d.", index+1), name, host}
	}
	return table.Format(rows, []table.Alignment{table.AlignRight})
}

func feedHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}

func (m *Model) feedIndex(id string) (int, bool) {
	index, err := strconv.Atoi(id)
	if err != nil {
		return 0, false
	}
	return index, true
}

// buildItemLine constructs a single styledLine for a list row. When width is
// positive the text is padded so the selected row's background spans it.
func (m *Model) buildItemLine(label string, selected bool, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + label
	if width > 0 {
		if pad := width - lipgloss.Width(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 3 // header, status line, prompt
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	if !m.menu.Visible() && len(m.rendered.Entries) > 0 {
		used += 2 // blank + snippet of the selected entry
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = m.now().Add(infoLifetime)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && m.now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText shortens text to width cells, ending it with an ellipsis.
// Escape sequences do not count towards the width.
func truncateText(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	if width == 1 {
		return truncate.String(text, 1)
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
