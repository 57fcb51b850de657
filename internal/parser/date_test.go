package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wib() *time.Location {
	return time.FixedZone("WIB", 7*60*60)
}

func TestResolveDate(t *testing.T) {
	p := New(nil, nil, wib())
	now := time.Date(2026, 1, 15, 14, 30, 45, 0, wib())

	tests := []struct {
		name string
		text string
		want time.Time
		ok   bool
	}{
		{"yesterday", "beli bensin kemarin 50rb", date(2026, 1, 14), true},
		{"yesterday english", "lunch yesterday 30k", date(2026, 1, 14), true},
		{"numeric days ago", "3 hari lalu servis motor", date(2026, 1, 12), true},
		{"numeric days ago with yang", "5 hari yang lalu", date(2026, 1, 10), true},
		{"word days ago", "dua hari lalu makan", date(2026, 1, 13), true},
		{"word days ago twelve", "dua belas hari lalu", date(2026, 1, 3), true},
		{"last week", "minggu lalu belanja", date(2026, 1, 8), true},
		{"last week kemarin form", "minggu kemarin belanja", date(2026, 1, 8), true},
		{"last month flat thirty days", "bulan lalu bayar kos", date(2025, 12, 16), true},
		{"last month kemarin form", "bulan kemarin", date(2025, 12, 16), true},
		{"date literal slash", "tagihan 10/01/2026", date(2026, 1, 10), true},
		{"date literal dash", "tagihan 10-01-2026", date(2026, 1, 10), true},
		{"invalid literal day", "tagihan 32-01-2026", time.Time{}, false},
		{"invalid literal month", "tagihan 10/13/2026", time.Time{}, false},
		{"no date phrase", "makan siang 25000", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.ResolveDate(tt.text, now)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
				assert.Equal(t, 0, got.Hour())
				assert.Equal(t, 0, got.Minute())
			}
		})
	}
}

// "minggu kemarin" must resolve as last week, never as the bare
// "kemarin" inside it.
func TestResolveDateCompoundBeatsYesterday(t *testing.T) {
	p := New(nil, nil, wib())
	now := time.Date(2026, 1, 15, 9, 0, 0, 0, wib())

	got, ok := p.ResolveDate("minggu kemarin beli sepatu 200rb", now)
	require.True(t, ok)
	assert.True(t, got.Equal(date(2026, 1, 8)))

	got, ok = p.ResolveDate("bulan kemarin bayar listrik", now)
	require.True(t, ok)
	assert.True(t, got.Equal(date(2025, 12, 16)))
}

func TestParseDateLiteral(t *testing.T) {
	p := New(nil, nil, wib())

	got, err := p.ParseDateLiteral("15/01/2026")
	require.NoError(t, err)
	assert.True(t, got.Equal(date(2026, 1, 15)))

	got, err = p.ParseDateLiteral(" 01-02-2026 ")
	require.NoError(t, err)
	assert.True(t, got.Equal(date(2026, 2, 1)))

	for _, bad := range []string{"31/02/2026", "32/01/2026", "10/13/2026", "1/1/26", "not a date", "15/01/2026 makan"} {
		_, err := p.ParseDateLiteral(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", bad)
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, wib())
}
