// Package console is the interactive terminal frontend for working on a
// loaded mailbox export: inspecting sender frequencies, normalizing and
// removing senders, maintaining the unwanted list, and exporting the result.
package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mailmeter/internal/mailbox"
)

type viewState int

const (
	viewMenu          viewState = iota
	viewSenders                 // read-only frequency list
	viewRemove                  // pick a sender to remove
	viewConfirmRemove           // y/n before removing
	viewConfirmUnwanted
	viewExport // path input for the modified CSV
)

type AppModel struct {
	reader *mailbox.Reader

	view   viewState
	status string

	menuList    list.Model
	senderList  list.Model
	exportInput textinput.Model

	// Sender pending removal while the confirm prompts are shown.
	pendingSender string
	pendingCount  int

	width, height int
}

func NewAppModel(reader *mailbox.Reader) AppModel {
	ml := list.New(menuItems(), list.NewDefaultDelegate(), 0, 0)
	ml.Title = "Mail Meter"
	ml.SetShowStatusBar(false)
	ml.SetFilteringEnabled(false)
	ml.KeyMap.Quit.SetKeys("q")

	sl := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	sl.KeyMap.Quit.SetKeys("q")

	ti := textinput.New()
	ti.Placeholder = "leave empty for the default name"

	return AppModel{
		reader:      reader,
		view:        viewMenu,
		menuList:    ml,
		senderList:  sl,
		exportInput: ti,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listH := msg.Height - 4 // room for footer and status
		m.menuList.SetSize(msg.Width, listH)
		m.senderList.SetSize(msg.Width, listH)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.delegate(msg)
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.view {
	case viewMenu:
		switch key {
		case "q":
			return m, tea.Quit
		case "enter":
			return m.runMenuAction()
		}

	case viewSenders:
		switch key {
		case "q":
			return m, tea.Quit
		case "esc":
			m.view = viewMenu
			return m, nil
		}

	case viewRemove:
		if m.senderList.FilterState() == list.Filtering {
			return m.delegate(msg)
		}
		switch key {
		case "q":
			return m, tea.Quit
		case "esc":
			m.view = viewMenu
			return m, nil
		case "enter":
			selected := m.senderList.SelectedItem()
			if selected == nil {
				return m, nil
			}
			item := selected.(senderItem)
			m.pendingSender = item.Sender
			m.pendingCount = item.Count
			m.view = viewConfirmRemove
			return m, nil
		}

	case viewConfirmRemove:
		switch key {
		case "y", "Y":
			removed := m.reader.RemoveSender(m.pendingSender)
			m.status = fmt.Sprintf("Removed %d emails from %q", removed, m.pendingSender)
			m.view = viewConfirmUnwanted
			return m, nil
		case "n", "N", "esc":
			m.pendingSender = ""
			m.view = viewRemove
			return m, nil
		}

	case viewConfirmUnwanted:
		switch key {
		case "y", "Y":
			unwanted := m.reader.Unwanted()
			unwanted.Add(m.pendingSender)
			if err := unwanted.Save(); err != nil {
				m.status = fmt.Sprintf("Failed to save unwanted list: %v", err)
			} else {
				m.status = fmt.Sprintf("%q added to the unwanted list", m.pendingSender)
			}
			m.pendingSender = ""
			m.refreshSenders("Remove a sender")
			m.view = viewRemove
			return m, nil
		case "n", "N", "esc":
			m.pendingSender = ""
			m.refreshSenders("Remove a sender")
			m.view = viewRemove
			return m, nil
		}

	case viewExport:
		switch key {
		case "enter":
			path := strings.TrimSpace(m.exportInput.Value())
			written, err := m.reader.ExportCSV(path)
			if err != nil {
				m.status = fmt.Sprintf("Export failed: %v", err)
			} else {
				m.status = fmt.Sprintf("Exported to %s", written)
			}
			m.exportInput.Reset()
			m.exportInput.Blur()
			m.view = viewMenu
			return m, nil
		case "esc":
			m.exportInput.Reset()
			m.exportInput.Blur()
			m.view = viewMenu
			return m, nil
		}
		var cmd tea.Cmd
		m.exportInput, cmd = m.exportInput.Update(msg)
		return m, cmd
	}

	return m.delegate(msg)
}

func (m AppModel) runMenuAction() (tea.Model, tea.Cmd) {
	selected := m.menuList.SelectedItem()
	if selected == nil {
		return m, nil
	}

	switch selected.(menuItem).action {
	case actionShowSenders:
		m.refreshSenders(fmt.Sprintf("Senders (%d emails)", m.reader.Len()))
		m.view = viewSenders

	case actionNormalize:
		m.reader.NormalizeSenders()
		m.status = "Sender names normalized"

	case actionRemove:
		m.refreshSenders("Remove a sender")
		m.view = viewRemove

	case actionApplyUnwanted:
		removed := m.reader.ApplyUnwantedList()
		m.status = fmt.Sprintf("Removed %d emails from unwanted senders", removed)

	case actionExport:
		m.exportInput.Focus()
		m.view = viewExport
		return m, textinput.Blink

	case actionQuit:
		return m, tea.Quit
	}

	return m, nil
}

func (m *AppModel) refreshSenders(title string) {
	m.senderList.SetItems(sendersToItems(m.reader.Senders()))
	m.senderList.Title = title
}

func (m AppModel) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case viewMenu:
		m.menuList, cmd = m.menuList.Update(msg)
	case viewSenders, viewRemove:
		m.senderList, cmd = m.senderList.Update(msg)
	case viewExport:
		m.exportInput, cmd = m.exportInput.Update(msg)
	}
	return m, cmd
}

func (m AppModel) View() string {
	var b strings.Builder

	switch m.view {
	case viewMenu:
		b.WriteString(m.menuList.View())
		b.WriteString("\n")
		b.WriteString(menuFooter())

	case viewSenders:
		b.WriteString(m.senderList.View())
		b.WriteString("\n")
		b.WriteString(sendersFooter())

	case viewRemove:
		b.WriteString(m.senderList.View())
		b.WriteString("\n")
		b.WriteString(removeFooter())

	case viewConfirmRemove:
		b.WriteString(fmt.Sprintf("Remove all %d emails from %q? (y/n)\n", m.pendingCount, m.pendingSender))

	case viewConfirmUnwanted:
		b.WriteString(fmt.Sprintf("Add %q to the unwanted list for future loads? (y/n)\n", m.pendingSender))

	case viewExport:
		b.WriteString("Export modified CSV\n\n")
		b.WriteString(m.exportInput.View())
		b.WriteString("\n")
		b.WriteString(exportFooter())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
	}

	return b.String()
}
