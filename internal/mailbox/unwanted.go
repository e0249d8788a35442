package mailbox

import (
	"fmt"
	"os"
	"strings"
)

// UnwantedList is the persisted set of sender names to auto-exclude.
// The on-disk format is a single comma-joined UTF-8 line.
type UnwantedList struct {
	path  string
	names []string
}

// LoadUnwantedList reads the list at path. A missing file yields an empty
// list; it is created on first Save.
func LoadUnwantedList(path string) *UnwantedList {
	u := &UnwantedList{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return u
	}
	for _, name := range strings.Split(string(data), ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			u.names = append(u.names, name)
		}
	}
	return u
}

func (u *UnwantedList) Names() []string {
	return append([]string(nil), u.names...)
}

func (u *UnwantedList) Contains(name string) bool {
	for _, n := range u.names {
		if n == name {
			return true
		}
	}
	return false
}

// Add appends a name, preserving insertion order. Returns false if the name
// is already present.
func (u *UnwantedList) Add(name string) bool {
	if u.Contains(name) {
		return false
	}
	u.names = append(u.names, name)
	return true
}

// Save persists the list comma-joined. Last writer wins; there is no locking.
func (u *UnwantedList) Save() error {
	if err := os.WriteFile(u.path, []byte(strings.Join(u.names, ",")), 0o644); err != nil {
		return fmt.Errorf("save unwanted list %s: %w", u.path, err)
	}
	return nil
}

func (u *UnwantedList) Path() string {
	return u.path
}
