package mailbox

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"mailmeter/internal/core"
)

// Header aliases seen across Outlook exports. The Spanish variants match the
// columns Outlook writes for a localized profile.
var (
	senderHeaders  = []string{"sender", "from", "from: (name)", "de: (nombre)"}
	subjectHeaders = []string{"subject", "asunto"}
	dateHeaders    = []string{"date", "received", "recibido"}
)

// Layouts tried in order when parsing the date column.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"2006-01-02",
}

// ParseCSV decodes a mailbox CSV export into records. The header row is
// mapped by name; unknown columns are skipped, malformed rows are skipped,
// and rows with unparsable dates keep a zero Date.
func ParseCSV(data []byte, delimiter rune) ([]core.MailRecord, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	if delimiter != 0 {
		reader.Comma = delimiter
	}
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	senderIdx := findColumn(headers, senderHeaders)
	subjectIdx := findColumn(headers, subjectHeaders)
	dateIdx := findColumn(headers, dateHeaders)
	if senderIdx < 0 {
		return nil, fmt.Errorf("csv has no sender column (got headers %v)", headers)
	}

	var records []core.MailRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}

		rec := core.MailRecord{Sender: field(row, senderIdx)}
		if rec.Validate() != nil {
			continue
		}
		rec.Subject = field(row, subjectIdx)
		rec.Date = parseDate(field(row, dateIdx))
		records = append(records, rec)
	}
	return records, nil
}

// WriteCSV writes records back out with canonical headers, dates in RFC 3339.
func WriteCSV(w io.Writer, records []core.MailRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Sender", "Subject", "Date"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		date := ""
		if r.HasDate() {
			date = r.Date.Format(time.RFC3339)
		}
		if err := cw.Write([]string{r.Sender, r.Subject, date}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func findColumn(headers, aliases []string) int {
	for i, h := range headers {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, a := range aliases {
			if h == a {
				return i
			}
		}
	}
	return -1
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
