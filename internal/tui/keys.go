package tui

import "github.com/charmbracelet/bubbles/key"

const keyCtrlC = "ctrl+c"

// KeyMap defines the key bindings of the product view.
type KeyMap struct {
	Search      key.Binding
	LeaveSearch key.Binding
	NextCat     key.Binding
	PrevCat     key.Binding
	Sort        key.Binding
	Clear       key.Binding
	Refresh     key.Binding
	Export      key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search:      newBinding([]string{"/"}, "search", "/"),
		LeaveSearch: newBinding([]string{"esc", "enter"}, "leave search", "esc"),
		NextCat:     newBinding([]string{"tab"}, "next category", "tab"),
		PrevCat:     newBinding([]string{"shift+tab"}, "prev category", "shift+tab"),
		Sort:        newBinding([]string{"s"}, "sort by price", "s"),
		Clear:       newBinding([]string{"c"}, "clear filters", "c"),
		Refresh:     newBinding([]string{"r"}, "refresh", "r"),
		Export:      newBinding([]string{"e"}, "export csv", "e"),
		Quit:        newBinding([]string{"q", keyCtrlC}, "quit", "q"),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.NextCat, k.Sort, k.Clear, k.Refresh, k.Export, k.Quit}
}

func newBinding(keys []string, help, display string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(display, help),
	)
}
