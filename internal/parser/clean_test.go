package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DivaIsReal/catatduit/internal/domain"
)

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"strips bare amount", "makan siang 25000", "makan siang"},
		{"strips magnitude amount", "isi bensin 50rb", "isi bensin"},
		{"strips juta with decimal comma", "gaji 1,5jt", "gaji"},
		{"strips yesterday", "kemarin makan 25rb", "makan"},
		{"strips numeric days ago", "3 hari lalu servis motor 200rb", "servis motor"},
		{"strips word days ago", "dua hari yang lalu kopi 15k", "kopi"},
		{"strips compound week phrase whole", "minggu kemarin belanja 50k", "belanja"},
		{"strips compound month phrase whole", "bulan lalu bayar kos 800rb", "bayar kos"},
		{"strips date literal", "tagihan listrik 10/01/2026 150rb", "tagihan listrik"},
		{"collapses whitespace", "  makan   siang   25000  ", "makan siang"},
		{"fully consumed falls back", "25000", domain.DefaultDescription},
		{"empty falls back", "", domain.DefaultDescription},
		{"date only falls back", "kemarin 50rb", domain.DefaultDescription},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanDescription(tt.text))
		})
	}
}

// Cleaning is idempotent: a cleaned description passes through
// unchanged.
func TestCleanDescriptionIdempotent(t *testing.T) {
	inputs := []string{
		"makan siang 25000",
		"kemarin isi bensin 50rb",
		"minggu kemarin belanja 1,5jt",
		"halo",
		"",
	}
	for _, in := range inputs {
		once := CleanDescription(in)
		assert.Equal(t, once, CleanDescription(once), "input %q", in)
	}
}
