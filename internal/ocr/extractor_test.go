package ocr

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DivaIsReal/catatduit/internal/domain"
)

var wib = time.FixedZone("WIB", 7*3600)

func TestCleanModelJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"already clean", `{"amount": 25000}`, `{"amount": 25000}`},
		{"fenced", "```json\n{\"amount\": 25000}\n```", `{"amount": 25000}`},
		{"fenced no language", "```\n{\"amount\": 25000}\n```", `{"amount": 25000}`},
		{"leading prose", "Here is the receipt:\n{\"amount\": 25000}", `{"amount": 25000}`},
		{"trailing prose", "{\"amount\": 25000}\nLet me know!", `{"amount": 25000}`},
		{"whitespace", "  \n {\"amount\": 25000} \n ", `{"amount": 25000}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanModelJSON(tt.raw))
		})
	}
}

func TestParseModelOutput(t *testing.T) {
	t.Run("full receipt", func(t *testing.T) {
		fields, err := parseModelOutput(
			`{"amount": 78000, "merchant": "Indomaret Sudirman", "date": "14/01/2026", "items": ["Indomie x5", "Telur 1kg"]}`, wib)
		require.NoError(t, err)
		assert.Equal(t, 78000.0, fields.Amount)
		assert.Equal(t, "Indomaret Sudirman", fields.Merchant)
		assert.Equal(t, "Belanja", fields.Category)
		assert.True(t, fields.Date.Equal(time.Date(2026, 1, 14, 0, 0, 0, 0, wib)))
		assert.Equal(t, "Indomie x5\nTelur 1kg", fields.Detail)
	})

	t.Run("nulls degrade to defaults", func(t *testing.T) {
		fields, err := parseModelOutput(`{"amount": 25000, "merchant": null, "date": null, "items": []}`, wib)
		require.NoError(t, err)
		assert.Equal(t, "Merchant", fields.Merchant)
		assert.Equal(t, domain.CategoryOther, fields.Category)
		assert.True(t, fields.Date.IsZero())
		assert.Equal(t, "", fields.Detail)
	})

	t.Run("bad date is dropped, not fatal", func(t *testing.T) {
		fields, err := parseModelOutput(`{"amount": 25000, "date": "2026-01-14"}`, wib)
		require.NoError(t, err)
		assert.True(t, fields.Date.IsZero())
	})

	t.Run("missing amount fails", func(t *testing.T) {
		_, err := parseModelOutput(`{"merchant": "KFC"}`, wib)
		assert.Error(t, err)
	})

	t.Run("amount out of bounds fails", func(t *testing.T) {
		_, err := parseModelOutput(`{"amount": 500}`, wib)
		assert.Error(t, err)
		_, err = parseModelOutput(`{"amount": 200000000}`, wib)
		assert.Error(t, err)
	})

	t.Run("invalid JSON fails", func(t *testing.T) {
		_, err := parseModelOutput(`amount is 25000`, wib)
		assert.Error(t, err)
	})
}

func TestJoinItemsCapsLines(t *testing.T) {
	items := make([]interface{}, 0, 40)
	for i := 0; i < 40; i++ {
		items = append(items, "item line")
	}
	items = append(items, 123, "x") // non-strings and single chars are skipped

	joined := joinItems(items)
	assert.Equal(t, maxDetailLines, strings.Count(joined, "\n")+1)
}

func TestCategoryFromMerchant(t *testing.T) {
	tests := []struct {
		merchant string
		want     string
	}{
		{"Indomaret Sudirman", "Belanja"},
		{"KFC Mall Kelapa Gading", "Makan"},
		{"SPBU Pertamina 34-12345", "Transport"},
		{"Apotek K-24", "Kesehatan"},
		{"CGV Grand Indonesia", "Hiburan"},
		{"PLN Token Listrik", "Tagihan"},
		{"PT Tidak Dikenal", domain.CategoryOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryFromMerchant(tt.merchant), "merchant %q", tt.merchant)
	}
}

func TestFieldsTransaction(t *testing.T) {
	now := time.Date(2026, 1, 15, 14, 0, 0, 0, wib)

	f := &Fields{Amount: 78000, Merchant: "Indomaret", Category: "Belanja", Detail: "Indomie x5"}
	tx := f.Transaction(now, "gs://bucket/receipts/x.jpg")
	assert.Equal(t, domain.KindExpense, tx.Kind)
	assert.Equal(t, "Indomaret", tx.Description)
	assert.True(t, tx.Date.Equal(now), "zero receipt date falls back to submission time")
	assert.Equal(t, "gs://bucket/receipts/x.jpg", tx.PhotoURL)

	receiptDate := time.Date(2026, 1, 10, 0, 0, 0, 0, wib)
	f.Date = receiptDate
	tx = f.Transaction(now, "")
	assert.True(t, tx.Date.Equal(receiptDate), "receipt date wins over submission time")
}
