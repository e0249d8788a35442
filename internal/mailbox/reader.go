package mailbox

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mailmeter/internal/core"
)

// ErrUnsupportedFormat is returned when a file is neither CSV nor PST.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Reader holds a loaded mailbox export and provides the sender-management
// operations on it. The sender-frequency view is recomputed after every
// mutation.
type Reader struct {
	records  []core.MailRecord
	senders  []core.SenderCount
	unwanted *UnwantedList
	source   string // original file path, used for default export naming
}

// NewFromRecords wraps already-decoded records.
func NewFromRecords(records []core.MailRecord, unwanted *UnwantedList) *Reader {
	r := &Reader{records: records, unwanted: unwanted}
	r.updateSenders()
	return r
}

// NewFromCSVFile loads a CSV export from disk.
func NewFromCSVFile(path string, delimiter rune, unwantedPath string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	records, err := ParseCSV(data, delimiter)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	r := NewFromRecords(records, LoadUnwantedList(unwantedPath))
	r.source = path
	return r, nil
}

// NewFromBytes decodes an uploaded file, dispatching on the filename
// extension: .csv or .pst.
func NewFromBytes(filename string, data []byte, unwanted *UnwantedList) (*Reader, error) {
	var (
		records []core.MailRecord
		err     error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		records, err = ParseCSV(data, ',')
	case ".pst":
		records, err = ParsePST(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
	if err != nil {
		return nil, err
	}
	r := NewFromRecords(records, unwanted)
	r.source = filename
	return r, nil
}

// Records returns the current record table.
func (r *Reader) Records() []core.MailRecord {
	return r.records
}

// Senders returns the sender-frequency view.
func (r *Reader) Senders() []core.SenderCount {
	return r.senders
}

func (r *Reader) Len() int {
	return len(r.records)
}

func (r *Reader) Unwanted() *UnwantedList {
	return r.unwanted
}

// NormalizeSenders strips known Teams suffix variants from every sender name
// and recomputes the frequency view.
func (r *Reader) NormalizeSenders() {
	for i := range r.records {
		r.records[i].Sender = core.NormalizeSender(r.records[i].Sender)
	}
	r.updateSenders()
}

// RemoveSender drops every row whose sender matches name exactly and returns
// the number of rows removed.
func (r *Reader) RemoveSender(name string) int {
	kept := r.records[:0]
	for _, rec := range r.records {
		if rec.Sender != name {
			kept = append(kept, rec)
		}
	}
	removed := len(r.records) - len(kept)
	r.records = kept
	r.updateSenders()
	return removed
}

// ApplyUnwantedList removes every currently-present sender found in the
// persisted list. Unconditional, and idempotent: a second application
// removes nothing further.
func (r *Reader) ApplyUnwantedList() int {
	if r.unwanted == nil {
		return 0
	}
	removed := 0
	for _, name := range r.unwanted.Names() {
		removed += r.RemoveSender(name)
	}
	return removed
}

// ExportCSV writes the current records to path, or to an auto-generated
// `<base>_modified<ext>` name next to the source when path is empty. An
// existing file is never overwritten; a `(n)` suffix is added instead.
// Returns the path actually written.
func (r *Reader) ExportCSV(path string) (string, error) {
	if path == "" {
		path = exportPath(r.source)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create export %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, r.records); err != nil {
		return "", fmt.Errorf("export %s: %w", path, err)
	}
	return path, nil
}

func (r *Reader) updateSenders() {
	r.senders = core.CountSenders(r.records)
}

func exportPath(source string) string {
	ext := filepath.Ext(source)
	base := strings.TrimSuffix(source, ext)
	if ext == "" || !strings.EqualFold(ext, ".csv") {
		ext = ".csv"
	}
	candidate := base + "_modified" + ext
	for n := 1; fileExists(candidate); n++ {
		candidate = fmt.Sprintf("%s_modified(%d)%s", base, n, ext)
	}
	return candidate
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
