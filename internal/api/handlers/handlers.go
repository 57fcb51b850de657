// Package handlers implements the read-only dashboard endpoints: ledger
// summaries, trends, category breakdowns and PDF export. Every endpoint
// aggregates over a snapshot of the ledger; nothing here writes.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/DivaIsReal/catatduit/internal/api/middleware"
	"github.com/DivaIsReal/catatduit/internal/config"
	"github.com/DivaIsReal/catatduit/internal/ledger"
	"github.com/DivaIsReal/catatduit/internal/report"
)

// DashboardHandler serves the reporting endpoints over a cached ledger
// snapshot.
type DashboardHandler struct {
	ledger ledger.Ledger
	cache  *snapshotCache
	loc    *time.Location
	log    zerolog.Logger
}

// NewDashboardHandler creates a dashboard handler. Reads go through a
// cache so a dashboard refresh does not hammer the Sheets API.
func NewDashboardHandler(l ledger.Ledger, loc *time.Location, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		ledger: l,
		cache:  newSnapshotCache(l, config.CacheTTL, log),
		loc:    loc,
		log:    log,
	}
}

// transactionView is one row of the /api/transactions response.
type transactionView struct {
	Tanggal    string  `json:"tanggal"`
	Waktu      string  `json:"waktu"`
	Tipe       string  `json:"tipe"`
	Kategori   string  `json:"kategori"`
	Jumlah     float64 `json:"jumlah"`
	Keterangan string  `json:"keterangan"`
	Detail     string  `json:"detail"`
}

// Root handles GET / with a small endpoint index.
func (h *DashboardHandler) Root(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Finance Dashboard API",
		"version": "1.0",
		"endpoints": map[string]string{
			"summary":            "/api/summary",
			"transactions":       "/api/transactions",
			"trends":             "/api/trends",
			"categories":         "/api/categories",
			"monthly_comparison": "/api/monthly-comparison",
			"export_pdf":         "/api/export/pdf",
		},
	})
}

// Health handles GET /health.
func (h *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().In(h.loc).Format(time.RFC3339),
	})
}

// Summary handles GET /api/summary: current-month totals.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	records, err := h.cache.Records(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read ledger")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to read ledger")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, report.MonthlySummary(records, time.Now().In(h.loc)))
}

// Transactions handles GET /api/transactions?limit=N: newest first.
func (h *DashboardHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	records, err := h.cache.Records(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read ledger")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to read ledger")
		return
	}

	limit := queryInt(r, "limit", config.DefaultTransactionLimit)
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}

	views := make([]transactionView, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		views = append(views, transactionView{
			Tanggal:    rec.Date.Format("02/01/2006"),
			Waktu:      rec.Date.Format("15:04:05"),
			Tipe:       rec.Type,
			Kategori:   rec.Category,
			Jumlah:     rec.Amount,
			Keterangan: rec.Description,
			Detail:     rec.Detail,
		})
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": views,
		"total":        len(views),
	})
}

// Trends handles GET /api/trends?days=N: daily expense totals.
func (h *DashboardHandler) Trends(w http.ResponseWriter, r *http.Request) {
	records, err := h.cache.Records(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read ledger")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to read ledger")
		return
	}

	days := queryInt(r, "days", config.DefaultTrendDays)
	trends := report.DailyTrends(records, time.Now().In(h.loc), days)

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"trends": trends,
		"period": "Last " + strconv.Itoa(days) + " days",
	})
}

// Categories handles GET /api/categories: current-month expense
// breakdown by category.
func (h *DashboardHandler) Categories(w http.ResponseWriter, r *http.Request) {
	records, err := h.cache.Records(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read ledger")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to read ledger")
		return
	}

	breakdown := report.CategoryBreakdown(records, time.Now().In(h.loc))
	var total float64
	for _, c := range breakdown {
		total += c.Value
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categories": breakdown,
		"total":      total,
	})
}

// MonthlyComparison handles GET /api/monthly-comparison?months=N.
func (h *DashboardHandler) MonthlyComparison(w http.ResponseWriter, r *http.Request) {
	records, err := h.cache.Records(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read ledger")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to read ledger")
		return
	}

	months := queryInt(r, "months", config.DefaultComparisonMonths)
	comparison := report.MonthlyComparison(records, months)

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"comparison": comparison,
		"period":     "Last " + strconv.Itoa(months) + " months",
	})
}

// ExportPDF handles GET /api/export/pdf?preset=&start=&end=.
func (h *DashboardHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	records, err := h.cache.Records(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read ledger")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to read ledger")
		return
	}

	query := r.URL.Query()
	today := time.Now().In(h.loc)

	period, err := report.ResolvePeriod(query.Get("preset"), query.Get("start"), query.Get("end"), today)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	filtered := records
	if !period.All {
		filtered = report.FilterByRange(records, period.Start, period.End)
	}

	pdfBytes, err := report.BuildPDF(filtered, period.Label, today)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build PDF")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to build PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=transaksi.pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
