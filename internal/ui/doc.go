// Package ui contains the Bubble Tea program that renders the feed reader.
// The Model type focuses on message orchestration, while dedicated helpers
// own input, rendering, and background updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, window sizing, finished loads, refresh events).
//   - Key handling (internal/ui/input.go) toggles the feed menu through
//     reader.Menu and starts loads through reader.Loader. While the menu is
//     visible, printable keys edit the fuzzy feed filter.
//
// State ownership:
//   - The rendered feed and the menu-hidden marker live in reader.Root. The
//     model never writes to it directly; it keeps a copy of the last render it
//     drew and re-reads the root whenever a load or refresh finishes.
//   - Cursor, filter, and viewport state for the feed menu and the entry list
//     live in internal/ui/state.List.
//   - Loads are queued through the internal/ui/command bus, which waits on the
//     loader's Result off the update loop and returns a feedLoadedMsg.
//
// Backend interactions:
//   - An optional backend.Watcher re-fetches the rendered feed periodically;
//     Update waits for its events and re-syncs the entry list from the root.
package ui
