package reporting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

// ExportSheetName is the worksheet used by the XLSX export.
const ExportSheetName = "Buyer Purchases"

// ExportHeader is the first row of every buyer purchase export.
var ExportHeader = []string{"Buyer Name", "Mobile", "Date", "Quantity (L)", "Price per L", "Total Amount"}

// ExportRequest selects the month and, optionally, a single buyer.
// Zero or out-of-range Year/Month fall back to the current month.
type ExportRequest struct {
	Year        int
	Month       int
	BuyerMobile string
}

// BuyerExport is the resolved month plus its sale rows sorted by date.
type BuyerExport struct {
	Year  int
	Month time.Month
	Rows  []models.BuyerPurchaseRow
}

// BuyerPurchases loads the month's sales, optionally narrowed to one buyer,
// resolves buyer names and sorts the rows by date ascending.
func (s *Service) BuyerPurchases(ctx context.Context, req ExportRequest) (export *BuyerExport, err error) {
	defer func(begin time.Time) { s.observe("buyer_export", begin, err) }(time.Now())

	period := ResolveMonth(req.Year, req.Month, s.now())
	query := Query{
		Type:        models.TransactionSale,
		Range:       period.Range,
		BuyerMobile: req.BuyerMobile,
	}
	filter := query.Filter()

	txs, err := s.store.FindMilkTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("load milk sales: %w", err)
	}

	matched := make([]models.MilkTransaction, 0, len(txs))
	seen := make(map[string]struct{})
	var mobiles []string
	for _, tx := range txs {
		if !filter.Matches(tx) {
			continue
		}
		matched = append(matched, tx)
		phone := tx.NormalizedBuyerPhone()
		if _, ok := seen[phone]; ok || phone == "" {
			continue
		}
		seen[phone] = struct{}{}
		mobiles = append(mobiles, phone)
	}

	var users []models.User
	if len(mobiles) > 0 {
		users, err = s.store.FindUsersByMobiles(ctx, mobiles)
		if err != nil {
			return nil, fmt.Errorf("load buyer profiles: %w", err)
		}
	}
	directory := models.NewBuyerDirectory(users)

	rows := make([]models.BuyerPurchaseRow, 0, len(matched))
	for _, tx := range matched {
		rows = append(rows, models.BuyerPurchaseRow{
			Buyer:         directory.Resolve(tx.BuyerPhone),
			Date:          tx.Date,
			Quantity:      tx.Quantity,
			PricePerLiter: tx.PricePerLiter,
			TotalAmount:   tx.TotalAmount,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	return &BuyerExport{Year: period.Year, Month: period.Month, Rows: rows}, nil
}

// Filename is the download name for the given extension, e.g. "csv".
func (e *BuyerExport) Filename(ext string) string {
	return fmt.Sprintf("buyer-purchases-%d-%02d.%s", e.Year, int(e.Month), ext)
}

// Records renders the header and every row as strings: dates as YYYY-MM-DD,
// numbers with exactly two decimals.
func (e *BuyerExport) Records() [][]string {
	records := make([][]string, 0, len(e.Rows)+1)
	records = append(records, append([]string(nil), ExportHeader...))
	for _, row := range e.Rows {
		records = append(records, []string{
			row.Buyer.DisplayName(),
			row.Buyer.Mobile(),
			row.Date.UTC().Format(dateLayout),
			row.Quantity.StringFixed(2),
			row.PricePerLiter.StringFixed(2),
			row.TotalAmount.StringFixed(2),
		})
	}
	return records
}

// CSV renders the export with lines joined by "\n" and no trailing newline.
func (e *BuyerExport) CSV() string {
	var b strings.Builder
	for i, record := range e.Records() {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, field := range record {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(EscapeCSVField(field))
		}
	}
	return b.String()
}

// EscapeCSVField quotes value when it contains a comma, a double quote or a
// newline, doubling any embedded quotes. Other values pass through untouched.
func EscapeCSVField(value string) string {
	if !strings.ContainsAny(value, ",\"\n") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// XLSX renders the export as a single-sheet workbook with numeric cells.
func (e *BuyerExport) XLSX() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(ExportHeader))
	for i, h := range ExportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(ExportSheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range e.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			row.Buyer.DisplayName(),
			row.Buyer.Mobile(),
			row.Date.UTC().Format(dateLayout),
			row.Quantity.Round(2).InexactFloat64(),
			row.PricePerLiter.Round(2).InexactFloat64(),
			row.TotalAmount.Round(2).InexactFloat64(),
		}
		if err := f.SetSheetRow(ExportSheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f, nil
}
