package domain

import (
	"time"
)

// Kind classifies a transaction as money coming in or going out.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Category labels. Income always carries CategoryIncome; expenses fall
// back to CategoryOther when no keyword matches.
const (
	CategoryIncome = "Pemasukan"
	CategoryOther  = "Lainnya"
)

// DefaultDescription is substituted when cleaning leaves nothing behind.
const DefaultDescription = "Transaksi"

// Transaction is one parsed ledger entry. It is built once by the parser
// (or the receipt adapter) and never mutated afterwards; corrections are
// new transactions appended to the ledger.
type Transaction struct {
	Amount      float64   // always > 0; sign is derived from Kind
	Kind        Kind      // income or expense
	Category    string    // CategoryIncome for income, expense catalog otherwise
	Description string    // cleaned free text, never empty
	Date        time.Time // WIB unless the caller supplied an explicit date
	Detail      string    // multi-line receipt detail, empty for text entries
	PhotoURL    string    // gs:// URI of the archived receipt photo, if any
}

// Signed returns the amount with its ledger sign: positive for income,
// negative for expense.
func (t *Transaction) Signed() float64 {
	if t.Kind == KindIncome {
		return t.Amount
	}
	return -t.Amount
}

// TypeLabel returns the localized type used in sheet rows and replies.
func (t *Transaction) TypeLabel() string {
	if t.Kind == KindIncome {
		return "Pemasukan"
	}
	return "Pengeluaran"
}
