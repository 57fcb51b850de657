package domain

import (
	"fmt"
	"math"
	"strings"
)

// FormatMessage renders the user-facing confirmation for a recorded
// transaction. The shape matches what the bot has always replied with:
// type banner, category, signed amount, description, local timestamp and
// an optional detail block for receipts.
func FormatMessage(t *Transaction) string {
	emoji := "💸"
	sign := "-"
	if t.Kind == KindIncome {
		emoji = "💰"
		sign = "+"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s **%s TERCATAT!**\n\n", emoji, strings.ToUpper(t.TypeLabel()))
	fmt.Fprintf(&b, "📊 Kategori: %s\n", t.Category)
	fmt.Fprintf(&b, "💵 Jumlah: %s Rp %s\n", sign, FormatAmount(t.Amount))
	fmt.Fprintf(&b, "📝 Keterangan: %s\n", t.Description)
	fmt.Fprintf(&b, "🕐 Waktu: %s", t.Date.Format("02/01/2006 15:04"))

	if t.Detail != "" {
		fmt.Fprintf(&b, "\n\n📋 **Detail:**\n%s", t.Detail)
	}

	return b.String()
}

// SheetRow converts a transaction into the ordered cell values of one
// ledger row: Tanggal, Waktu, Tipe, Kategori, Jumlah, Keterangan, Detail.
// The running Saldo column is appended by the ledger itself, since only
// it knows the previous balance.
func SheetRow(t *Transaction) []interface{} {
	return []interface{}{
		t.Date.Format("02/01/2006"),
		t.Date.Format("15:04:05"),
		t.TypeLabel(),
		t.Category,
		t.Signed(),
		t.Description,
		t.Detail,
	}
}

// FormatAmount renders an amount with thousands separators, no decimals
// ("1500000" -> "1,500,000"). Amounts are whole rupiah. Negative values
// keep their sign; the balance can dip below zero.
func FormatAmount(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return sign + s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return sign + s + "," + strings.Join(parts, ",")
}
