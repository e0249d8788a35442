package mailbox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mailmeter/internal/core"
)

func testRecords() []core.MailRecord {
	at := time.Date(2024, 5, 2, 10, 30, 0, 0, time.UTC)
	return []core.MailRecord{
		{Sender: "alice", Subject: "a1", Date: at},
		{Sender: "bob", Subject: "b1", Date: at},
		{Sender: "alice", Subject: "a2", Date: at},
		{Sender: "carol in Teams", Subject: "c1", Date: at},
	}
}

func TestRemoveSender(t *testing.T) {
	r := NewFromRecords(testRecords(), nil)

	removed := r.RemoveSender("alice")
	if removed != 2 {
		t.Fatalf("RemoveSender removed %d rows, want 2", removed)
	}
	if r.Len() != 2 {
		t.Fatalf("Len = %d after removal, want 2", r.Len())
	}
	for _, rec := range r.Records() {
		if rec.Sender == "alice" {
			t.Fatal("removed sender still present")
		}
	}
	// Frequency view reflects the remainder.
	for _, sc := range r.Senders() {
		if sc.Sender == "alice" {
			t.Fatal("frequency view still lists removed sender")
		}
	}
	if removed := r.RemoveSender("nobody"); removed != 0 {
		t.Errorf("removing unknown sender removed %d rows", removed)
	}
}

func TestNormalizeSendersUpdatesFrequency(t *testing.T) {
	r := NewFromRecords(testRecords(), nil)
	r.NormalizeSenders()

	found := false
	for _, sc := range r.Senders() {
		if sc.Sender == "carol" {
			found = true
		}
		if strings.Contains(sc.Sender, "Teams") {
			t.Errorf("suffix survived normalization: %q", sc.Sender)
		}
	}
	if !found {
		t.Error("normalized sender missing from frequency view")
	}
}

func TestApplyUnwantedListIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unwanted.csv")
	if err := os.WriteFile(path, []byte("alice,bob"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewFromRecords(testRecords(), LoadUnwantedList(path))
	if removed := r.ApplyUnwantedList(); removed != 3 {
		t.Fatalf("first application removed %d rows, want 3", removed)
	}
	if removed := r.ApplyUnwantedList(); removed != 0 {
		t.Fatalf("second application removed %d rows, want 0", removed)
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d after unwanted removal, want 1", r.Len())
	}
}

func TestExportNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "mails.csv")

	r := NewFromRecords(testRecords(), nil)
	r.source = source

	first, err := r.ExportCSV("")
	if err != nil {
		t.Fatalf("first export: %v", err)
	}
	if first != filepath.Join(dir, "mails_modified.csv") {
		t.Fatalf("first export path = %s", first)
	}

	second, err := r.ExportCSV("")
	if err != nil {
		t.Fatalf("second export: %v", err)
	}
	if second != filepath.Join(dir, "mails_modified(1).csv") {
		t.Fatalf("second export path = %s", second)
	}

	third, err := r.ExportCSV("")
	if err != nil {
		t.Fatalf("third export: %v", err)
	}
	if third != filepath.Join(dir, "mails_modified(2).csv") {
		t.Fatalf("third export path = %s", third)
	}

	// Explicit path that already exists must error, not clobber.
	if _, err := r.ExportCSV(first); err == nil {
		t.Fatal("export over existing file did not error")
	}
}

func TestExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r := NewFromRecords(testRecords(), nil)

	path, err := r.ExportCSV(filepath.Join(dir, "out.csv"))
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	records, err := ParseCSV(data, ',')
	if err != nil {
		t.Fatalf("re-parse export: %v", err)
	}
	if len(records) != r.Len() {
		t.Fatalf("re-parsed %d records, want %d", len(records), r.Len())
	}
}

func TestNewFromBytesDispatch(t *testing.T) {
	csvData := []byte("Sender,Subject,Date\nalice,hi,2024-05-02 10:30:00\n")

	r, err := NewFromBytes("export.CSV", csvData, nil)
	if err != nil {
		t.Fatalf("csv dispatch: %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}

	if _, err := NewFromBytes("export.xlsx", csvData, nil); err == nil {
		t.Fatal("unsupported extension accepted")
	}
}
