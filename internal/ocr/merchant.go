package ocr

import (
	"strings"
	"time"

	"github.com/DivaIsReal/catatduit/internal/domain"
)

// merchantRule maps merchant-name keywords to an expense category. This
// table is separate from the message-parser vocabulary because receipts
// name businesses ("Indomaret", "SPBU Pertamina"), not activities.
type merchantRule struct {
	category string
	keywords []string
}

var merchantRules = []merchantRule{
	{"Makan", []string{
		"resto", "restaurant", "cafe", "warung", "makan", "food",
		"kfc", "mcd", "mcdonald", "pizza", "burger",
		"hokben", "solaria", "yoshinoya", "breadtalk",
		"starbucks", "janji jiwa", "kopi", "coffee", "kedai",
		"bakso", "mie", "nasi", "ayam", "soto", "sate",
		"padang", "seafood", "dapur", "kitchen", "catering",
	}},
	{"Belanja", []string{
		"mart", "market", "supermarket", "indomaret", "alfamart",
		"minimarket", "hypermart", "carrefour",
		"shopee", "tokopedia", "lazada", "blibli", "bukalapak",
		"store", "shop", "toko", "mall", "plaza",
	}},
	{"Transport", []string{
		"grab", "gojek", "maxim", "blue bird", "bluebird",
		"taxi", "taksi", "ojek", "spbu", "pertamina", "shell",
		"bensin", "parkir", "parking", "toll", "tol",
	}},
	{"Kesehatan", []string{
		"apotek", "apotik", "pharmacy", "rumah sakit", "hospital",
		"klinik", "clinic", "guardian", "century", "kimia farma",
		"dokter", "medical", "lab",
	}},
	{"Hiburan", []string{
		"cinema", "bioskop", "xxi", "cgv", "cinepolis",
		"gym", "fitness", "karaoke", "timezone",
	}},
	{"Tagihan", []string{
		"listrik", "pln", "token", "telkom", "indihome",
		"telkomsel", "smartfren", "pulsa", "pdam",
	}},
}

// CategoryFromMerchant picks an expense category from the merchant
// name, defaulting to Lainnya.
func CategoryFromMerchant(merchant string) string {
	lower := strings.ToLower(merchant)
	for _, rule := range merchantRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return domain.CategoryOther
}

// Transaction adapts extracted receipt fields into the same transaction
// shape the text path produces: merchant becomes the description, the
// receipt date (when present) overrides the submission time, and the
// line items land in the detail block. Receipts are always expenses.
func (f *Fields) Transaction(now time.Time, photoURL string) *domain.Transaction {
	date := f.Date
	if date.IsZero() {
		date = now
	}
	return &domain.Transaction{
		Amount:      f.Amount,
		Kind:        domain.KindExpense,
		Category:    f.Category,
		Description: f.Merchant,
		Date:        date,
		Detail:      f.Detail,
		PhotoURL:    photoURL,
	}
}
