package reader

import "github.com/atomicstack/feed-reader/internal/logging/events"

// MenuState is the visibility of the slide-out menu.
type MenuState int

const (
	MenuHidden MenuState = iota
	MenuVisible
)

func (s MenuState) String() string {
	if s == MenuVisible {
		return "visible"
	}
	return "hidden"
}

// Menu controls the menu-hidden marker on the root.
type Menu struct {
	root *Root
}

// NewMenu binds a controller to root.
func NewMenu(root *Root) *Menu {
	return &Menu{root: root}
}

// Toggle flips the menu between hidden and visible.
func (m *Menu) Toggle() {
	m.root.toggleClass(MenuHiddenClass)
	events.Menu.Toggle(m.State().String())
}

// State reports the current visibility.
func (m *Menu) State() MenuState {
	if m.root.HasClass(MenuHiddenClass) {
		return MenuHidden
	}
	return MenuVisible
}

// Visible is shorthand for State() == MenuVisible.
func (m *Menu) Visible() bool {
	return m.State() == MenuVisible
}
