package parser

import (
	"regexp"
	"strings"

	"github.com/DivaIsReal/catatduit/internal/domain"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// CleanDescription strips everything the extractor and resolver consume
// (date phrases, magnitude-suffixed numbers, bare integers of 3+ digits)
// and collapses the leftover whitespace. It runs the same pattern table
// the other components match against, so nothing numeric or date-like
// survives into the label. A fully-consumed message falls back to the
// default placeholder. Cleaning an already-clean description is a no-op.
func CleanDescription(text string) string {
	for _, re := range dateCleanPatterns {
		text = re.ReplaceAllString(text, "")
	}

	text = magnitudeCleanPattern.ReplaceAllString(text, "")
	text = barePattern.ReplaceAllString(text, "")

	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
	if text == "" {
		return domain.DefaultDescription
	}
	return text
}
