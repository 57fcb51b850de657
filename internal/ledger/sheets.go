package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/DivaIsReal/catatduit/internal/config"
	"github.com/DivaIsReal/catatduit/internal/domain"
)

// header is the fixed first row of the ledger sheet. The balance lives
// in the last column.
var header = []interface{}{
	"Tanggal", "Waktu", "Tipe", "Kategori", "Jumlah", "Keterangan", "Detail", "Saldo",
}

// GoogleSheets is the Sheets-backed Ledger implementation. A mutex
// serializes AddTransaction so the read-balance/append pair is atomic
// from the caller's point of view.
type GoogleSheets struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
	loc           *time.Location
	log           zerolog.Logger

	mu sync.Mutex
}

// NewGoogleSheets connects to the spreadsheet with a service-account
// credentials file and makes sure the header row exists.
func NewGoogleSheets(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*GoogleSheets, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("ledger: SPREADSHEET_ID is not configured")
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("ledger: create sheets service: %w", err)
	}

	l := &GoogleSheets{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		loc:           cfg.Timezone,
		log:           log,
	}

	if err := l.ensureHeader(ctx); err != nil {
		return nil, err
	}

	log.Info().Str("spreadsheet_id", cfg.SpreadsheetID).Msg("Connected to Google Sheets ledger")
	return l, nil
}

// ensureHeader writes the header row when the sheet is empty or was
// created by hand without one.
func (l *GoogleSheets) ensureHeader(ctx context.Context) error {
	resp, err := l.getValues(ctx, l.rangeRef("A1:H1"))
	if err != nil {
		return fmt.Errorf("ledger: read header: %w", err)
	}

	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		if s, ok := resp.Values[0][0].(string); ok && s == "Tanggal" {
			return nil
		}
	}

	vr := &sheets.ValueRange{Values: [][]interface{}{header}}
	_, err = l.svc.Spreadsheets.Values.
		Update(l.spreadsheetID, l.rangeRef("A1:H1"), vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("ledger: write header: %w", err)
	}
	l.log.Info().Msg("Ledger header created")
	return nil
}

// AddTransaction implements Ledger. The new balance is the last balance
// plus the signed amount; the transaction row and its balance are
// appended as one row.
func (l *GoogleSheets) AddTransaction(ctx context.Context, tx *domain.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	current, err := l.lastBalance(ctx)
	if err != nil {
		return err
	}
	newBalance := current + tx.Signed()

	row := append(domain.SheetRow(tx), newBalance)
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}

	err = l.withRetry(func() error {
		_, err := l.svc.Spreadsheets.Values.
			Append(l.spreadsheetID, l.rangeRef("A:H"), vr).
			ValueInputOption("USER_ENTERED").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("ledger: append row: %w", err)
	}

	l.log.Info().
		Float64("amount", tx.Amount).
		Str("category", tx.Category).
		Float64("balance", newBalance).
		Msg("Transaction appended to ledger")
	return nil
}

// Balance implements Ledger.
func (l *GoogleSheets) Balance(ctx context.Context) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastBalance(ctx)
}

// lastBalance reads the last value of the Saldo column. Callers hold
// l.mu.
func (l *GoogleSheets) lastBalance(ctx context.Context) (float64, error) {
	resp, err := l.getValues(ctx, l.rangeRef("H2:H"))
	if err != nil {
		return 0, fmt.Errorf("ledger: read balance column: %w", err)
	}

	for i := len(resp.Values) - 1; i >= 0; i-- {
		if len(resp.Values[i]) == 0 {
			continue
		}
		if v, ok := parseCellFloat(resp.Values[i][0]); ok {
			return v, nil
		}
	}
	return 0, nil
}

// ListRecords implements Ledger.
func (l *GoogleSheets) ListRecords(ctx context.Context) ([]Record, error) {
	resp, err := l.getValues(ctx, l.rangeRef("A2:H"))
	if err != nil {
		return nil, fmt.Errorf("ledger: read rows: %w", err)
	}

	records := make([]Record, 0, len(resp.Values))
	for _, row := range resp.Values {
		rec, ok := l.parseRow(row)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseRow converts one sheet row into a Record. Rows with a missing or
// unparseable date or amount are dropped rather than failing the whole
// read.
func (l *GoogleSheets) parseRow(row []interface{}) (Record, bool) {
	if len(row) < 5 {
		return Record{}, false
	}

	dateStr := cellString(row[0])
	timeStr := cellString(row[1])

	date, err := time.ParseInLocation("02/01/2006", dateStr, l.loc)
	if err != nil {
		return Record{}, false
	}
	if clock, err := time.Parse("15:04:05", timeStr); err == nil {
		date = date.Add(time.Duration(clock.Hour())*time.Hour +
			time.Duration(clock.Minute())*time.Minute +
			time.Duration(clock.Second())*time.Second)
	}

	amount, ok := parseCellFloat(row[4])
	if !ok {
		return Record{}, false
	}

	rec := Record{
		Date:     date,
		Type:     cellString(row[2]),
		Category: cellString(row[3]),
		Amount:   amount,
	}
	if len(row) > 5 {
		rec.Description = cellString(row[5])
	}
	if len(row) > 6 {
		rec.Detail = cellString(row[6])
	}
	if len(row) > 7 {
		if b, ok := parseCellFloat(row[7]); ok {
			rec.Balance = b
		}
	}
	return rec, true
}

func (l *GoogleSheets) getValues(ctx context.Context, rangeRef string) (*sheets.ValueRange, error) {
	var resp *sheets.ValueRange
	err := l.withRetry(func() error {
		var err error
		resp, err = l.svc.Spreadsheets.Values.
			Get(l.spreadsheetID, rangeRef).
			Context(ctx).
			Do()
		return err
	})
	return resp, err
}

// withRetry retries transient Sheets API failures a few times before
// giving up.
func (l *GoogleSheets) withRetry(fn func() error) error {
	var err error
	for attempt := 1; attempt <= config.SheetsRetryAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt < config.SheetsRetryAttempts {
			l.log.Warn().Err(err).Int("attempt", attempt).Msg("Sheets call failed, retrying")
			time.Sleep(config.SheetsRetryDelay)
		}
	}
	return err
}

func (l *GoogleSheets) rangeRef(cells string) string {
	return fmt.Sprintf("%s!%s", l.sheetName, cells)
}

func cellString(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// parseCellFloat handles both numeric cells and formatted strings like
// "1,500,000".
func parseCellFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(val), ",", "")
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

var _ Ledger = (*GoogleSheets)(nil)
