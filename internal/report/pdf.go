package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/DivaIsReal/catatduit/internal/domain"
	"github.com/DivaIsReal/catatduit/internal/ledger"
)

// PDF layout.
const (
	pdfFont          = "Helvetica"
	pdfFontSizeTitle = 14
	pdfFontSizeBody  = 11
	pdfFontSizeTable = 10
)

var pdfColWidths = [4]float64{30, 25, 85, 40}

// BuildPDF renders a transaction report: title, period, a totals block
// and a table of the filtered records.
func BuildPDF(records []ledger.Record, periodLabel string, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", pdfFontSizeTitle)
	pdf.CellFormat(0, 10, "Laporan Transaksi", "", 1, "", false, 0, "")

	pdf.SetFont(pdfFont, "", pdfFontSizeBody)
	pdf.CellFormat(0, 8, "Periode: "+periodLabel, "", 1, "", false, 0, "")
	pdf.CellFormat(0, 8, "Digenerate: "+generatedAt.Format("02/01/2006 15:04"), "", 1, "", false, 0, "")
	pdf.Ln(2)

	totals := ComputeTotals(records)
	pdf.SetFont(pdfFont, "B", pdfFontSizeBody)
	pdf.CellFormat(0, 8, "Ringkasan", "", 1, "", false, 0, "")
	pdf.SetFont(pdfFont, "", pdfFontSizeBody)
	pdf.CellFormat(0, 7, "Total Pemasukan : Rp "+domain.FormatAmount(totals.Income), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 7, "Total Pengeluaran: Rp "+domain.FormatAmount(totals.Expense), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 7, "Selisih: "+signedRupiah(totals.Net), "", 1, "", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(pdfFont, "B", pdfFontSizeTable)
	pdf.CellFormat(pdfColWidths[0], 8, "Tanggal", "1", 0, "", false, 0, "")
	pdf.CellFormat(pdfColWidths[1], 8, "Kategori", "1", 0, "", false, 0, "")
	pdf.CellFormat(pdfColWidths[2], 8, "Keterangan", "1", 0, "", false, 0, "")
	pdf.CellFormat(pdfColWidths[3], 8, "Jumlah", "1", 1, "", false, 0, "")

	pdf.SetFont(pdfFont, "", pdfFontSizeTable)
	for _, r := range records {
		pdf.CellFormat(pdfColWidths[0], 8, r.Date.Format("02/01/2006"), "1", 0, "", false, 0, "")
		pdf.CellFormat(pdfColWidths[1], 8, truncate(r.Category, 14), "1", 0, "", false, 0, "")
		pdf.CellFormat(pdfColWidths[2], 8, truncate(r.Description, 50), "1", 0, "", false, 0, "")
		pdf.CellFormat(pdfColWidths[3], 8, signedRupiah(r.Amount), "1", 1, "", false, 0, "")
	}

	if len(records) == 0 {
		pdf.CellFormat(0, 8, "Tidak ada data untuk periode ini.", "", 1, "", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("report: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func signedRupiah(amount float64) string {
	sign := "+"
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + " Rp " + domain.FormatAmount(amount)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
