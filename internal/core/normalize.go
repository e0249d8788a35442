package core

import "strings"

// Teams appends a localized "in Teams" phrase to display names in exported
// mailboxes. Stripping it merges what is really the same sender.
var teamsVariants = []string{
	"en teams",
	"in teams",
	"auf teams",
	"sur teams",
	"su teams",
}

// NormalizeSender strips a trailing Teams suffix variant from a sender name,
// case-insensitively. The separator character before the suffix is dropped
// with it, even when it is not a space. Names without a known suffix are
// returned unchanged.
func NormalizeSender(name string) string {
	lower := strings.ToLower(name)
	for _, variant := range teamsVariants {
		if strings.HasSuffix(lower, variant) {
			cut := len(name) - len(variant) - 1
			if cut < 0 {
				cut = 0
			}
			return strings.TrimSpace(name[:cut])
		}
	}
	return name
}
