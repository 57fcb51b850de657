package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "0"},
		{100, "100"},
		{999, "999"},
		{1000, "1,000"},
		{25000, "25,000"},
		{1500000, "1,500,000"},
		{1234567890, "1,234,567,890"},
		{25000.4, "25,000"},
		{-500, "-500"},
		{-5000, "-5,000"},
		{-100000, "-100,000"},
		{-1500000.6, "-1,500,001"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.amount), "FormatAmount(%v)", tt.amount)
	}
}

func TestSigned(t *testing.T) {
	income := &Transaction{Amount: 5000, Kind: KindIncome}
	expense := &Transaction{Amount: 5000, Kind: KindExpense}
	assert.Equal(t, 5000.0, income.Signed())
	assert.Equal(t, -5000.0, expense.Signed())
}

func TestFormatMessage(t *testing.T) {
	date := time.Date(2026, 1, 14, 12, 30, 0, 0, time.FixedZone("WIB", 7*3600))

	t.Run("expense", func(t *testing.T) {
		tx := &Transaction{
			Amount:      25000,
			Kind:        KindExpense,
			Category:    "Makan",
			Description: "makan siang",
			Date:        date,
		}
		msg := FormatMessage(tx)
		assert.Contains(t, msg, "💸 **PENGELUARAN TERCATAT!**")
		assert.Contains(t, msg, "📊 Kategori: Makan")
		assert.Contains(t, msg, "💵 Jumlah: - Rp 25,000")
		assert.Contains(t, msg, "📝 Keterangan: makan siang")
		assert.Contains(t, msg, "🕐 Waktu: 14/01/2026 12:30")
		assert.NotContains(t, msg, "Detail")
	})

	t.Run("income", func(t *testing.T) {
		tx := &Transaction{
			Amount:      5000000,
			Kind:        KindIncome,
			Category:    CategoryIncome,
			Description: "gaji",
			Date:        date,
		}
		msg := FormatMessage(tx)
		assert.Contains(t, msg, "💰 **PEMASUKAN TERCATAT!**")
		assert.Contains(t, msg, "💵 Jumlah: + Rp 5,000,000")
	})

	t.Run("receipt detail block", func(t *testing.T) {
		tx := &Transaction{
			Amount:      78000,
			Kind:        KindExpense,
			Category:    "Belanja",
			Description: "Indomaret",
			Date:        date,
			Detail:      "- Indomie x5\n- Telur 1kg",
		}
		msg := FormatMessage(tx)
		assert.Contains(t, msg, "📋 **Detail:**\n- Indomie x5\n- Telur 1kg")
	})
}

func TestSheetRow(t *testing.T) {
	date := time.Date(2026, 1, 14, 12, 30, 45, 0, time.FixedZone("WIB", 7*3600))
	tx := &Transaction{
		Amount:      25000,
		Kind:        KindExpense,
		Category:    "Makan",
		Description: "makan siang",
		Date:        date,
	}

	row := SheetRow(tx)
	assert.Equal(t, []interface{}{
		"14/01/2026", "12:30:45", "Pengeluaran", "Makan", -25000.0, "makan siang", "",
	}, row)
}
