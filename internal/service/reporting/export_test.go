package reporting

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

func exportFixture() *memoryStore {
	return &memoryStore{
		milk: []models.MilkTransaction{
			sale(day(2024, 3, 12, 7), "222", 2, 55),
			sale(day(2024, 3, 3, 7), "111", 5, 50),
			sale(day(2024, 3, 8, 7), "333", 1, 60),
			sale(day(2024, 4, 1, 0), "111", 9, 50),
			purchase(day(2024, 3, 9, 7), 300),
		},
		users: []models.User{
			{ID: "u1", Name: "Ravi", Mobile: "111", Role: models.RoleConsumer},
			{ID: "u2", Name: `O'Brien, "Big" Farm`, Mobile: "222", Role: models.RoleAdmin},
		},
	}
}

func TestBuyerPurchasesCSV(t *testing.T) {
	svc := NewService(exportFixture(), nil).WithClock(fixedClock(day(2024, 5, 1, 0)))

	export, err := svc.BuyerPurchases(context.Background(), ExportRequest{Year: 2024, Month: 3})
	require.NoError(t, err)

	lines := strings.Split(export.CSV(), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Buyer Name,Mobile,Date,Quantity (L),Price per L,Total Amount", lines[0])
	assert.Equal(t, "Ravi,111,2024-03-03,5.00,50.00,250.00", lines[1])
	assert.Equal(t, "Unknown Buyer,333,2024-03-08,1.00,60.00,60.00", lines[2])
	assert.Equal(t, `"O'Brien, ""Big"" Farm",222,2024-03-12,2.00,55.00,110.00`, lines[3])
	assert.False(t, strings.HasSuffix(export.CSV(), "\n"))
	assert.Equal(t, "buyer-purchases-2024-03.csv", export.Filename("csv"))
}

func TestBuyerPurchasesCSVRoundTrips(t *testing.T) {
	svc := NewService(exportFixture(), nil).WithClock(fixedClock(day(2024, 3, 20, 0)))

	export, err := svc.BuyerPurchases(context.Background(), ExportRequest{})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(export.CSV())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, export.Records(), records)
	assert.Equal(t, `O'Brien, "Big" Farm`, records[3][0])
}

func TestBuyerPurchasesSingleBuyer(t *testing.T) {
	svc := NewService(exportFixture(), nil).WithClock(fixedClock(day(2024, 3, 20, 0)))

	export, err := svc.BuyerPurchases(context.Background(), ExportRequest{Year: 2024, Month: 3, BuyerMobile: " 111"})
	require.NoError(t, err)

	require.Len(t, export.Rows, 1)
	assert.Equal(t, "Ravi", export.Rows[0].Buyer.DisplayName())
	assert.True(t, export.Rows[0].Buyer.Known())
}

func TestBuyerPurchasesDefaultsToCurrentMonth(t *testing.T) {
	svc := NewService(exportFixture(), nil).WithClock(fixedClock(day(2024, 4, 15, 0)))

	export, err := svc.BuyerPurchases(context.Background(), ExportRequest{Month: 42})
	require.NoError(t, err)

	assert.Equal(t, 2024, export.Year)
	assert.Equal(t, time.April, export.Month)
	require.Len(t, export.Rows, 1)
	assert.Equal(t, "buyer-purchases-2024-04.xlsx", export.Filename("xlsx"))
}

func TestBuyerPurchasesEmptyMonth(t *testing.T) {
	svc := NewService(&memoryStore{}, nil)

	export, err := svc.BuyerPurchases(context.Background(), ExportRequest{Year: 2020, Month: 1})
	require.NoError(t, err)

	assert.Empty(t, export.Rows)
	assert.Equal(t, strings.Join(ExportHeader, ","), export.CSV())
}

func TestBuyerPurchasesError(t *testing.T) {
	boom := errors.New("timeout")
	svc := NewService(&memoryStore{milkErr: boom}, nil)

	_, err := svc.BuyerPurchases(context.Background(), ExportRequest{Year: 2024, Month: 3})
	assert.ErrorIs(t, err, boom)
}

func TestEscapeCSVField(t *testing.T) {
	tests := map[string]string{
		"plain":        "plain",
		"a,b":          `"a,b"`,
		`say "hi"`:     `"say ""hi"""`,
		"line\nbreak":  "\"line\nbreak\"",
		" leading":     " leading",
		"":             "",
	}
	for in, want := range tests {
		assert.Equal(t, want, EscapeCSVField(in), in)
	}
}

func TestBuyerPurchasesXLSX(t *testing.T) {
	svc := NewService(exportFixture(), nil)

	export, err := svc.BuyerPurchases(context.Background(), ExportRequest{Year: 2024, Month: 3})
	require.NoError(t, err)

	f, err := export.XLSX()
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ExportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, ExportHeader, rows[0])
	assert.Equal(t, "Ravi", rows[1][0])
	assert.Equal(t, "2024-03-03", rows[1][2])
	assert.Equal(t, "250", rows[1][5])
}
