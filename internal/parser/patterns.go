package parser

import "regexp"

// The parser, the date resolver and the description cleaner all consult
// this one pattern table. The cleaner must strip exactly what the
// extractor and resolver match, so the regexes live here and nowhere
// else; adding a pattern means adding it to the cleaner's removal list
// below at the same time.

var (
	// Amount patterns, in extraction priority order. Extraction runs on
	// text with decimal commas already normalized to points; the cleaner
	// runs on raw text, so the magnitude pattern accepts both.
	jutaPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:jt|juta)`)
	ribuPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:k\b|rb|ribu)`)
	barePattern = regexp.MustCompile(`\b(\d{3,})\b`)

	magnitudeCleanPattern = regexp.MustCompile(`(?i)\d+(?:[.,]\d+)?\s*(?:jt|juta|k\b|rb|ribu)`)

	// Date patterns. Resolution order follows resolveDays; removal order
	// is compounds first so "minggu kemarin" never leaves "minggu" behind.
	numericDaysAgoPattern = regexp.MustCompile(`(?i)\b(\d+)\s+hari\s+(?:yang\s+)?lalu\b`)
	wordDaysAgoPattern    = regexp.MustCompile(`(?i)\b(dua belas|sebelas|sepuluh|sembilan|delapan|empat|tujuh|lima|enam|tiga|satu|dua)\s+hari\s+(?:yang\s+)?lalu\b`)
	lastWeekPattern       = regexp.MustCompile(`(?i)\bminggu\s+(?:lalu|kemarin)\b|\blast\s+week\b`)
	lastMonthPattern      = regexp.MustCompile(`(?i)\bbulan\s+(?:lalu|kemarin)\b|\blast\s+month\b`)
	yesterdayPattern      = regexp.MustCompile(`(?i)\b(?:kemarin|yesterday)\b`)
	dateLiteralPattern    = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{4})\b`)
)

// dateCleanPatterns is the removal list the cleaner walks, compounds
// before the bare "kemarin".
var dateCleanPatterns = []*regexp.Regexp{
	wordDaysAgoPattern,
	numericDaysAgoPattern,
	lastWeekPattern,
	lastMonthPattern,
	yesterdayPattern,
	dateLiteralPattern,
}

// numberWords maps spelled-out Indonesian numbers used in relative date
// phrases ("dua hari lalu") to their values.
var numberWords = map[string]int{
	"satu":      1,
	"dua":       2,
	"tiga":      3,
	"empat":     4,
	"lima":      5,
	"enam":      6,
	"tujuh":     7,
	"delapan":   8,
	"sembilan":  9,
	"sepuluh":   10,
	"sebelas":   11,
	"dua belas": 12,
}
