package mailbox

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadUnwantedList_MissingFile(t *testing.T) {
	u := LoadUnwantedList(filepath.Join(t.TempDir(), "nope.csv"))
	if len(u.Names()) != 0 {
		t.Fatalf("missing file yielded names %v", u.Names())
	}
}

func TestUnwantedList_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unwanted.csv")

	u := LoadUnwantedList(path)
	u.Add("alice")
	u.Add("bob corp")
	if err := u.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "alice,bob corp" {
		t.Fatalf("file = %q, want comma-joined names", string(data))
	}

	reloaded := LoadUnwantedList(path)
	if !reloaded.Contains("alice") || !reloaded.Contains("bob corp") {
		t.Fatalf("reloaded names = %v", reloaded.Names())
	}
}

func TestUnwantedList_AddDeduplicates(t *testing.T) {
	u := LoadUnwantedList(filepath.Join(t.TempDir(), "unwanted.csv"))
	if !u.Add("alice") {
		t.Fatal("first Add returned false")
	}
	if u.Add("alice") {
		t.Fatal("duplicate Add returned true")
	}
	if len(u.Names()) != 1 {
		t.Fatalf("names = %v", u.Names())
	}
}
