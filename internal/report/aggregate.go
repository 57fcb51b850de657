// Package report aggregates ledger records into the summaries the
// dashboard serves. Everything here is pure computation over records
// already read from the ledger.
package report

import (
	"errors"
	"sort"
	"time"

	"github.com/DivaIsReal/catatduit/internal/ledger"
)

// ErrBadRange reports an unusable custom export range.
var ErrBadRange = errors.New("custom range requires valid start and end dates with start <= end")

// Type labels as they appear in the ledger's Tipe column.
const (
	typeIncome  = "Pemasukan"
	typeExpense = "Pengeluaran"
)

// Totals holds summed income and expense for a set of records. Expense
// is stored positive even though ledger rows carry it negative.
type Totals struct {
	Income  float64 `json:"pemasukan"`
	Expense float64 `json:"pengeluaran"`
	Net     float64 `json:"net"`
}

// ComputeTotals sums a record set.
func ComputeTotals(records []ledger.Record) Totals {
	var t Totals
	for _, r := range records {
		switch r.Type {
		case typeIncome:
			t.Income += r.Amount
		case typeExpense:
			t.Expense += abs(r.Amount)
		}
	}
	t.Net = t.Income - t.Expense
	return t
}

// Summary is the current-month overview.
type Summary struct {
	Income        float64 `json:"pemasukan"`
	Expense       float64 `json:"pengeluaran"`
	Saving        float64 `json:"saving"`
	SavingPercent float64 `json:"saving_percent"`
	Month         string  `json:"month"`
}

// MonthlySummary computes totals for the month containing now.
func MonthlySummary(records []ledger.Record, now time.Time) Summary {
	var s Summary
	for _, r := range records {
		if r.Date.Month() != now.Month() || r.Date.Year() != now.Year() {
			continue
		}
		switch r.Type {
		case typeIncome:
			s.Income += r.Amount
		case typeExpense:
			s.Expense += abs(r.Amount)
		}
	}
	s.Saving = s.Income - s.Expense
	if s.Income > 0 {
		s.SavingPercent = round1(s.Saving / s.Income * 100)
	}
	s.Month = now.Format("January 2006")
	return s
}

// TrendPoint is one day of the spending trend.
type TrendPoint struct {
	Date   string  `json:"date"` // "02 Jan"
	Amount float64 `json:"amount"`
}

// DailyTrends sums expenses per day for the last `days` days, oldest
// first. Days with no spending appear with zero.
func DailyTrends(records []ledger.Record, now time.Time, days int) []TrendPoint {
	byDay := make(map[string]float64, days)
	for _, r := range records {
		if r.Type != typeExpense {
			continue
		}
		byDay[r.Date.Format("02/01/2006")] += abs(r.Amount)
	}

	points := make([]TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		points = append(points, TrendPoint{
			Date:   day.Format("02 Jan"),
			Amount: byDay[day.Format("02/01/2006")],
		})
	}
	return points
}

// CategoryTotal is one slice of the category breakdown.
type CategoryTotal struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// CategoryBreakdown sums current-month expenses per category, sorted by
// value descending.
func CategoryBreakdown(records []ledger.Record, now time.Time) []CategoryTotal {
	byCategory := make(map[string]float64)
	for _, r := range records {
		if r.Type != typeExpense {
			continue
		}
		if r.Date.Month() != now.Month() || r.Date.Year() != now.Year() {
			continue
		}
		name := r.Category
		if name == "" {
			name = "Lainnya"
		}
		byCategory[name] += abs(r.Amount)
	}

	list := make([]CategoryTotal, 0, len(byCategory))
	for name, value := range byCategory {
		list = append(list, CategoryTotal{Name: name, Value: value})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Value != list[j].Value {
			return list[i].Value > list[j].Value
		}
		return list[i].Name < list[j].Name
	})
	return list
}

// MonthTotals is one month of the income/expense comparison.
type MonthTotals struct {
	Month   string  `json:"month"` // "Jan 2026"
	Income  float64 `json:"pemasukan"`
	Expense float64 `json:"pengeluaran"`
}

// MonthlyComparison returns per-month totals for the last `months`
// months that have data, in chronological order.
func MonthlyComparison(records []ledger.Record, months int) []MonthTotals {
	byMonth := make(map[string]*MonthTotals)
	var keys []string

	for _, r := range records {
		key := r.Date.Format("2006-01")
		mt, ok := byMonth[key]
		if !ok {
			mt = &MonthTotals{Month: r.Date.Format("Jan 2006")}
			byMonth[key] = mt
			keys = append(keys, key)
		}
		switch r.Type {
		case typeIncome:
			mt.Income += r.Amount
		case typeExpense:
			mt.Expense += abs(r.Amount)
		}
	}

	sort.Strings(keys)
	if months > 0 && len(keys) > months {
		keys = keys[len(keys)-months:]
	}

	comparison := make([]MonthTotals, 0, len(keys))
	for _, key := range keys {
		comparison = append(comparison, *byMonth[key])
	}
	return comparison
}

// FilterByRange keeps records whose date falls within [start, end],
// comparing calendar days.
func FilterByRange(records []ledger.Record, start, end time.Time) []ledger.Record {
	var filtered []ledger.Record
	for _, r := range records {
		day := time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, r.Date.Location())
		if day.Before(start) || day.After(end) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// Period is a resolved export range with its display label.
type Period struct {
	Start time.Time
	End   time.Time
	All   bool
	Label string
}

// ResolvePeriod turns an export preset into a concrete period.
// Presets: "this_month" (default), "last_month", "all", "custom" with
// start/end as "2006-01-02".
func ResolvePeriod(preset, startStr, endStr string, today time.Time) (Period, error) {
	switch preset {
	case "all":
		return Period{All: true, Label: "Semua data"}, nil

	case "last_month":
		firstOfThis := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		end := firstOfThis.AddDate(0, 0, -1)
		start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, today.Location())
		return Period{Start: start, End: end, Label: start.Format("January 2006")}, nil

	case "custom":
		if startStr == "" || endStr == "" {
			return Period{}, ErrBadRange
		}
		start, err := time.ParseInLocation("2006-01-02", startStr, today.Location())
		if err != nil {
			return Period{}, ErrBadRange
		}
		end, err := time.ParseInLocation("2006-01-02", endStr, today.Location())
		if err != nil {
			return Period{}, ErrBadRange
		}
		if start.After(end) {
			return Period{}, ErrBadRange
		}
		label := start.Format("02/01/2006") + " - " + end.Format("02/01/2006")
		return Period{Start: start, End: end, Label: label}, nil

	default: // this_month
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		end := start.AddDate(0, 1, -1)
		return Period{Start: start, End: end, Label: today.Format("January 2006")}, nil
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func round1(v float64) float64 {
	return float64(int(v*10+sign(v)*0.5)) / 10
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
