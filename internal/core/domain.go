package core

import (
	"errors"
	"sort"
	"strings"
	"time"
)

type (
	// MailRecord is a single row of a mailbox export.
	MailRecord struct {
		Sender  string
		Subject string
		Date    time.Time
	}

	// SenderCount is one row of the derived sender-frequency view.
	SenderCount struct {
		Sender string
		Count  int
	}
)

var ErrEmptySender = errors.New("empty sender")

func (r MailRecord) Validate() error {
	if strings.TrimSpace(r.Sender) == "" {
		return ErrEmptySender
	}
	return nil
}

// HasDate reports whether the record carries a parseable delivery timestamp.
// Records without one are kept for sender management but excluded from
// aggregation.
func (r MailRecord) HasDate() bool {
	return !r.Date.IsZero()
}

// CountSenders builds the sender-frequency view: one entry per distinct
// sender, ordered by count descending, then sender name for stable output.
func CountSenders(records []MailRecord) []SenderCount {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Sender]++
	}

	out := make([]SenderCount, 0, len(counts))
	for sender, n := range counts {
		out = append(out, SenderCount{Sender: sender, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Sender < out[j].Sender
	})
	return out
}
