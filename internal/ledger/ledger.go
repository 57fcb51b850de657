// Package ledger persists transactions to a spreadsheet-backed ledger:
// one row per transaction plus a running balance column.
package ledger

import (
	"context"
	"time"

	"github.com/DivaIsReal/catatduit/internal/domain"
)

// Record is one ledger row read back from the sheet, already parsed for
// aggregation. Rows the sheet holds that cannot be parsed are skipped.
type Record struct {
	Date        time.Time
	Type        string // "Pemasukan" or "Pengeluaran"
	Category    string
	Amount      float64 // signed: negative for expenses
	Description string
	Detail      string
	Balance     float64
}

// Ledger is the persistence contract the bot and the dashboard consume.
// AddTransaction must make the read-balance/compute/append sequence
// appear atomic to callers so concurrent submissions never lose an
// update; failures are reported as errors, never panics.
type Ledger interface {
	// AddTransaction appends one transaction row with its new running
	// balance.
	AddTransaction(ctx context.Context, tx *domain.Transaction) error

	// Balance returns the current running balance (0 for an empty
	// ledger).
	Balance(ctx context.Context) (float64, error)

	// ListRecords returns every parseable row in the ledger, oldest
	// first.
	ListRecords(ctx context.Context) ([]Record, error)
}
