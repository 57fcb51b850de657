package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DivaIsReal/catatduit/internal/domain"
	"github.com/DivaIsReal/catatduit/internal/ledger"
)

// fakeLedger serves canned records and counts reads for cache tests.
type fakeLedger struct {
	records []ledger.Record
	err     error
	reads   int
}

func (f *fakeLedger) AddTransaction(ctx context.Context, tx *domain.Transaction) error { return nil }

func (f *fakeLedger) Balance(ctx context.Context) (float64, error) { return 0, f.err }

func (f *fakeLedger) ListRecords(ctx context.Context) ([]ledger.Record, error) {
	f.reads++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

var testLoc = time.FixedZone("WIB", 7*3600)

// testRecords pins all rows to mid-month so the current-month endpoints
// see them regardless of when the test runs.
func testRecords() []ledger.Record {
	now := time.Now().In(testLoc)
	mid := time.Date(now.Year(), now.Month(), 15, 12, 0, 0, 0, testLoc)
	return []ledger.Record{
		{Date: mid.Add(-2 * time.Hour), Type: "Pemasukan", Category: "Pemasukan", Amount: 5000000, Description: "gaji"},
		{Date: mid.Add(-time.Hour), Type: "Pengeluaran", Category: "Makan", Amount: -25000, Description: "makan siang"},
		{Date: mid, Type: "Pengeluaran", Category: "Transport", Amount: -50000, Description: "bensin"},
	}
}

func newTestHandler(l ledger.Ledger) *DashboardHandler {
	return NewDashboardHandler(l, testLoc, zerolog.Nop())
}

func get(t *testing.T, fn http.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	fn(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestSummary(t *testing.T) {
	h := newTestHandler(&fakeLedger{records: testRecords()})
	rr := get(t, h.Summary, "/api/summary")

	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, 5000000.0, body["pemasukan"])
	assert.Equal(t, 75000.0, body["pengeluaran"])
}

func TestTransactions(t *testing.T) {
	h := newTestHandler(&fakeLedger{records: testRecords()})
	rr := get(t, h.Transactions, "/api/transactions?limit=2")

	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, 2.0, body["total"])

	views := body["transactions"].([]interface{})
	require.Len(t, views, 2)
	first := views[0].(map[string]interface{})
	assert.Equal(t, "bensin", first["keterangan"], "newest transaction comes first")
}

func TestTrends(t *testing.T) {
	h := newTestHandler(&fakeLedger{records: testRecords()})
	rr := get(t, h.Trends, "/api/trends?days=3")

	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "Last 3 days", body["period"])
	assert.Len(t, body["trends"].([]interface{}), 3)
}

func TestCategories(t *testing.T) {
	h := newTestHandler(&fakeLedger{records: testRecords()})
	rr := get(t, h.Categories, "/api/categories")

	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, 75000.0, body["total"])
}

func TestMonthlyComparisonEndpoint(t *testing.T) {
	h := newTestHandler(&fakeLedger{records: testRecords()})
	rr := get(t, h.MonthlyComparison, "/api/monthly-comparison?months=2")

	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "Last 2 months", body["period"])
}

func TestExportPDF(t *testing.T) {
	h := newTestHandler(&fakeLedger{records: testRecords()})

	rr := get(t, h.ExportPDF, "/api/export/pdf?preset=all")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "transaksi.pdf")
	assert.True(t, rr.Body.Len() > 0)

	rr = get(t, h.ExportPDF, "/api/export/pdf?preset=custom&start=2026-01-10&end=2026-01-01")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLedgerErrorIs500(t *testing.T) {
	h := newTestHandler(&fakeLedger{err: errors.New("sheets unavailable")})
	rr := get(t, h.Summary, "/api/summary")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestSnapshotCache(t *testing.T) {
	fake := &fakeLedger{records: testRecords()}
	cache := newSnapshotCache(fake, time.Minute, zerolog.Nop())
	ctx := context.Background()

	_, err := cache.Records(ctx)
	require.NoError(t, err)
	_, err = cache.Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.reads, "second read within the TTL is served from cache")
}

func TestSnapshotCacheDoesNotCacheFailures(t *testing.T) {
	fake := &fakeLedger{err: errors.New("boom")}
	cache := newSnapshotCache(fake, time.Minute, zerolog.Nop())
	ctx := context.Background()

	_, err := cache.Records(ctx)
	require.Error(t, err)

	fake.err = nil
	fake.records = testRecords()
	records, err := cache.Records(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestQueryIntFallbacks(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x?a=5&b=abc&c=-1", nil)
	assert.Equal(t, 5, queryInt(req, "a", 9))
	assert.Equal(t, 9, queryInt(req, "b", 9))
	assert.Equal(t, 9, queryInt(req, "c", 9))
	assert.Equal(t, 9, queryInt(req, "missing", 9))
}
