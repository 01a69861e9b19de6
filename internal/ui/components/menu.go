package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablez/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label string

	// Key, when set, triggers the item directly, e.g. "t" for "Try again".
	Key string

	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the given items.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		Items:    items,
		Selected: selected,
	}
}

// Update handles keyboard navigation and item shortcuts.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			return m, m.Items[m.Selected].run()
		}
	default:
		for i, item := range m.Items {
			if item.Key != "" && item.Key == key && !item.Disabled {
				m.Selected = i
				return m, item.run()
			}
		}
	}

	return m, nil
}

func (it MenuItem) run() tea.Cmd {
	if it.Action == nil || it.Disabled {
		return nil
	}
	return it.Action()
}

// View renders the menu. Shortcut keys are shown after each label.
func (m Menu) View() string {
	var b strings.Builder
	keyStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	for i, item := range m.Items {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		marker := "    "
		switch {
		case item.Disabled:
			style = style.Foreground(theme.Border)
		case i == m.Selected:
			style = theme.Selected
			marker = "  ▸ "
		}

		b.WriteString(style.Render(marker + item.Label))
		if item.Key != "" && !item.Disabled {
			b.WriteString(keyStyle.Render(" (" + strings.ToUpper(item.Key) + ")"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
