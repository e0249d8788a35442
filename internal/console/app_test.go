package console

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mailmeter/internal/core"
	"mailmeter/internal/mailbox"
)

func testReader(t *testing.T) *mailbox.Reader {
	t.Helper()
	records := []core.MailRecord{
		{Sender: "Alice en Teams", Subject: "a", Date: time.Now()},
		{Sender: "Alice en Teams", Subject: "b", Date: time.Now()},
		{Sender: "Bob", Subject: "c", Date: time.Now()},
	}
	return mailbox.NewFromRecords(records, mailbox.LoadUnwantedList(t.TempDir()+"/unwanted.csv"))
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next
}

func TestMenuQuits(t *testing.T) {
	m := NewAppModel(testReader(t))
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestRemoveFlow(t *testing.T) {
	reader := testReader(t)
	var m tea.Model = NewAppModel(reader)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	// Navigate to "Remove a sender" (third menu entry) and open it.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	app := m.(AppModel)
	if app.view != viewRemove {
		t.Fatalf("view = %d, want viewRemove", app.view)
	}

	// Top entry is the most frequent sender.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	app = m.(AppModel)
	if app.view != viewConfirmRemove {
		t.Fatalf("view = %d, want viewConfirmRemove", app.view)
	}
	if app.pendingSender != "Alice en Teams" {
		t.Fatalf("pending sender = %q", app.pendingSender)
	}

	// Confirm removal, decline blocklisting.
	m = update(t, m, key("y"))
	app = m.(AppModel)
	if app.view != viewConfirmUnwanted {
		t.Fatalf("view = %d, want viewConfirmUnwanted", app.view)
	}
	m = update(t, m, key("n"))

	if reader.Len() != 1 {
		t.Fatalf("records after removal = %d, want 1", reader.Len())
	}
	if reader.Senders()[0].Sender != "Bob" {
		t.Fatalf("remaining sender = %q", reader.Senders()[0].Sender)
	}
}

func TestRemoveAddsToUnwantedList(t *testing.T) {
	reader := testReader(t)
	var m tea.Model = NewAppModel(reader)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, key("y"))
	m = update(t, m, key("y"))

	if !reader.Unwanted().Contains("Alice en Teams") {
		t.Fatal("sender not added to unwanted list")
	}
	// Persisted to disk as well.
	saved := mailbox.LoadUnwantedList(reader.Unwanted().Path())
	if !saved.Contains("Alice en Teams") {
		t.Fatal("unwanted list not persisted")
	}
}

func TestMenuViewShowsActions(t *testing.T) {
	var m tea.Model = NewAppModel(testReader(t))
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	out := m.View()
	for _, want := range []string{"Show senders", "Normalize senders", "Export modified CSV"} {
		if !strings.Contains(out, want) {
			t.Fatalf("menu view missing %q", want)
		}
	}
}
