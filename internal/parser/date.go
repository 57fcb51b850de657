package parser

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned when an explicit date literal is malformed
// or names an impossible calendar day.
var ErrInvalidDate = errors.New("invalid date")

// ResolveDate scans text for a date phrase and turns it into a concrete
// timestamp, truncated to midnight in the parser's timezone. Patterns in
// order: "kemarin"/"yesterday", "N hari (yang) lalu" (numeric then
// spelled out), "minggu lalu"/"minggu kemarin", "bulan lalu"/"bulan
// kemarin", and a DD/MM/YYYY or DD-MM-YYYY literal. "bulan lalu" is a
// flat 30-day offset, not calendar-month arithmetic.
//
// The second return value is false when nothing matched, including when
// a date literal names an invalid calendar day.
func (p *Parser) ResolveDate(text string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(text)

	// The compound phrases contain "kemarin", so they are ruled out
	// before the bare yesterday check.
	compound := lastWeekPattern.MatchString(lower) || lastMonthPattern.MatchString(lower)

	if !compound && yesterdayPattern.MatchString(lower) {
		return p.midnight(now.AddDate(0, 0, -1)), true
	}

	if m := numericDaysAgoPattern.FindStringSubmatch(lower); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > 0 {
			return p.midnight(now.AddDate(0, 0, -n)), true
		}
	}

	if m := wordDaysAgoPattern.FindStringSubmatch(lower); m != nil {
		if n, ok := numberWords[m[1]]; ok {
			return p.midnight(now.AddDate(0, 0, -n)), true
		}
	}

	if lastWeekPattern.MatchString(lower) {
		return p.midnight(now.AddDate(0, 0, -7)), true
	}

	if lastMonthPattern.MatchString(lower) {
		return p.midnight(now.AddDate(0, 0, -30)), true
	}

	if m := dateLiteralPattern.FindStringSubmatch(lower); m != nil {
		if t, err := p.dateFromParts(m[1], m[2], m[3]); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// ParseDateLiteral parses an explicit DD/MM/YYYY or DD-MM-YYYY override
// supplied by the caller (e.g. a "log for a past date" command). Unlike
// ResolveDate it reports malformed input as an error so the user can be
// told the format is wrong.
func (p *Parser) ParseDateLiteral(s string) (time.Time, error) {
	m := dateLiteralPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil || m[0] != strings.TrimSpace(s) {
		return time.Time{}, ErrInvalidDate
	}
	t, err := p.dateFromParts(m[1], m[2], m[3])
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func (p *Parser) dateFromParts(dayStr, monthStr, yearStr string) (time.Time, error) {
	day, _ := strconv.Atoi(dayStr)
	month, _ := strconv.Atoi(monthStr)
	year, _ := strconv.Atoi(yearStr)

	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, ErrInvalidDate
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, p.loc)
	// time.Date normalizes overflow (day 32 becomes the 1st of the next
	// month); that must be rejected, not silently accepted.
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func (p *Parser) midnight(t time.Time) time.Time {
	t = t.In(p.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.loc)
}
