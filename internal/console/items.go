package console

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"mailmeter/internal/core"
)

type menuAction int

const (
	actionShowSenders menuAction = iota
	actionNormalize
	actionRemove
	actionApplyUnwanted
	actionExport
	actionQuit
)

type menuItem struct {
	action menuAction
	title  string
	desc   string
}

func (i menuItem) FilterValue() string { return i.title }
func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }

func menuItems() []list.Item {
	return []list.Item{
		menuItem{actionShowSenders, "Show senders", "Sender names ranked by email count"},
		menuItem{actionNormalize, "Normalize senders", "Strip Teams-style suffixes from sender names"},
		menuItem{actionRemove, "Remove a sender", "Drop all emails from a sender, optionally blocklist it"},
		menuItem{actionApplyUnwanted, "Apply unwanted list", "Remove emails from every blocklisted sender"},
		menuItem{actionExport, "Export modified CSV", "Write the current records to a new file"},
		menuItem{actionQuit, "Quit", ""},
	}
}

// senderItem wraps a SenderCount to customize list display.
type senderItem struct {
	core.SenderCount
}

func (s senderItem) FilterValue() string { return s.Sender }
func (s senderItem) Title() string       { return fmt.Sprintf("%s (%d times)", s.Sender, s.Count) }
func (s senderItem) Description() string { return "" }

func sendersToItems(senders []core.SenderCount) []list.Item {
	items := make([]list.Item, len(senders))
	for i, s := range senders {
		items[i] = senderItem{s}
	}
	return items
}

var footerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("241")).
	PaddingTop(1)

func menuFooter() string {
	return footerStyle.Render("enter: select  q: quit")
}

func sendersFooter() string {
	return footerStyle.Render("esc: back  q: quit")
}

func removeFooter() string {
	return footerStyle.Render("enter: remove  /: filter  esc: back  q: quit")
}

func exportFooter() string {
	return footerStyle.Render("enter: export  esc: cancel")
}
