package ui

import (
	"context"
	"fmt"

	"github.com/atomicstack/feed-reader/internal/logging"
	"github.com/atomicstack/feed-reader/internal/reader"
	"github.com/atomicstack/feed-reader/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// feedLoadedMsg mirrors a settled loader Result.
type feedLoadedMsg struct {
	id     string
	index  int
	render reader.Render
	err    error
}

// loadFeed starts loading the feed at index and returns the command that
// waits for it. An unknown index is reported in the status line and no
// command is queued.
func (m *Model) loadFeed(index int) tea.Cmd {
	res, err := m.loader.Load(context.Background(), index)
	if err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
		m.forceClearInfo()
		return nil
	}
	label := feedLabel(m.registry, index)
	m.loading = true
	m.pendingID = res.ID()
	m.pendingLabel = label
	m.errMsg = ""
	return m.bus.Execute(command.Request{
		ID:    res.ID(),
		Label: label,
		Run: func() tea.Msg {
			render, err := res.Wait(context.Background())
			return feedLoadedMsg{id: res.ID(), index: index, render: render, err: err}
		},
	})
}

func (m *Model) handleFeedLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(feedLoadedMsg)
	if !ok {
		return nil
	}
	if loaded.err != nil {
		logging.Error(loaded.err)
	}
	if loaded.id != m.pendingID {
		// an older load finishing after a newer one was queued
		m.syncEntries()
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	if loaded.err != nil {
		m.errMsg = loaded.err.Error()
		m.forceClearInfo()
		return nil
	}
	m.errMsg = ""
	m.syncEntries()
	if !loaded.render.Superseded {
		m.setInfo(fmt.Sprintf("Loaded %d entries from %s", len(loaded.render.Entries), loaded.render.Name))
	}
	return nil
}
