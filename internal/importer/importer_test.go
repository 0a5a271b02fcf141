package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperjump/tafuta/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const priceList = "Electronics\tWireless Headphones\t129.00\t-\t15\t90.50\t2000000000017\n" +
	"\n" +
	"Kitchen\tKettle\t25\t-\t3.0\t18\t0\n" +
	"Kitchen\tToaster\tabc\t-\t1\t10\t123\n" +
	"Kitchen\tShort line\t10\n" +
	"Home\t \t10\t-\t1\t5\t456\n"

func newStore(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestReadTSV(t *testing.T) {
	rows, err := ReadTSV(strings.NewReader(priceList))
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, 1, rows[0].Line)
	assert.Equal(t, 3, rows[1].Line, "blank lines keep numbering")
	assert.Equal(t, "Wireless Headphones", rows[0].Cells[1])
}

func TestParseRow(t *testing.T) {
	p, err := ParseRow(Row{Line: 1, Cells: []string{"Electronics", " Lamp ", "1200", "", "4.7", "800", "0"}})
	require.NoError(t, err)
	assert.Equal(t, "Lamp", p.Name)
	assert.Equal(t, "Electronics", p.CategoryName)
	assert.Equal(t, "1200.00", p.Price)
	assert.Equal(t, "800.00", p.CostPrice)
	assert.Equal(t, int64(4), p.StockQuantity)
	assert.Empty(t, p.Barcode, "a zero barcode counts as missing")
	assert.True(t, p.IsActive)

	tests := []struct {
		name    string
		cells   []string
		wantErr string
	}{
		{"short", []string{"a", "b"}, "insufficient columns"},
		{"price", []string{"c", "n", "x", "", "1", "1", "1"}, "selling price"},
		{"stock", []string{"c", "n", "1", "", "x", "1", "1"}, "stock quantity"},
		{"cost", []string{"c", "n", "1", "", "1", "x", "1"}, "cost price"},
		{"name", []string{"c", "", "1", "", "1", "1", "1"}, "product name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRow(Row{Cells: tt.cells})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestImport_SkipsAndCounts(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	rows, err := ReadTSV(strings.NewReader(priceList))
	require.NoError(t, err)

	stats, err := New(store).Import(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, Stats{Lines: 5, Created: 1, Skipped: 4}, *stats)

	p, err := store.GetProductByBarcode(ctx, "2000000000017")
	require.NoError(t, err)
	assert.Equal(t, "Wireless Headphones", p.Name)
	assert.Equal(t, int64(15), p.StockQuantity)

	// Re-importing updates in place
	stats, err = New(store).Import(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Created)
	assert.Equal(t, 1, stats.Updated)
	n, err := store.Count(ctx, "product")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestImport_GenerateBarcodes(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	rows, err := ReadTSV(strings.NewReader(priceList))
	require.NoError(t, err)

	stats, err := New(store, WithGenerateBarcodes(true)).Import(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Created)
	assert.Equal(t, 1, stats.GeneratedBarcodes)
	assert.Equal(t, 3, stats.Skipped)

	want := GenerateBarcode("Kitchen", "Kettle", nil)
	p, err := store.GetProductByBarcode(ctx, want)
	require.NoError(t, err)
	assert.Equal(t, "Kettle", p.Name)

	// Same product, same code: the second run updates rather than duplicating
	stats, err = New(store, WithGenerateBarcodes(true)).Import(ctx, rows[1:2])
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Created)
	assert.Equal(t, 1, stats.Updated)
}

func TestImport_DryRun(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	rows, err := ReadTSV(strings.NewReader(priceList))
	require.NoError(t, err)

	stats, err := New(store, WithDryRun(true), WithGenerateBarcodes(true)).Import(ctx, rows)
	require.NoError(t, err)
	assert.True(t, stats.DryRun)
	assert.Equal(t, 2, stats.Created)

	n, err := store.Count(ctx, "product")
	require.NoError(t, err)
	assert.Zero(t, n, "dry run must not write")
}

func TestImport_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rows, err := ReadTSV(strings.NewReader(priceList))
	require.NoError(t, err)
	_, err = New(newStore(t)).Import(ctx, rows)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateBarcode(t *testing.T) {
	a := GenerateBarcode("Kitchen", "Kettle", nil)
	assert.Len(t, a, 13)
	assert.True(t, strings.HasPrefix(a, "2"))
	assert.Equal(t, a, GenerateBarcode("Kitchen", "Kettle", map[string]string{}))
	assert.Equal(t, int(a[12]-'0'), ean13CheckDigit(a[:12]))

	assert.Equal(t, a, GenerateBarcode("Kitchen", "Kettle", map[string]string{a: productKey("Kitchen", "Kettle")}))
	b := GenerateBarcode("Kitchen", "Kettle", map[string]string{a: productKey("Home", "Rug")})
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, GenerateBarcode("Kitchen", "Toaster", nil))
}

func TestEAN13CheckDigit(t *testing.T) {
	assert.Equal(t, 1, ean13CheckDigit("400638133393"))
	assert.Equal(t, 5, ean13CheckDigit("200000000001"))
}

func writeWorkbook(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestImportFile_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.xlsx")
	writeWorkbook(t, path, [][]any{
		{"Category", "Name", "Price", "Unit", "Stock", "Cost", "Barcode"},
		{"Electronics", "Desk Lamp", "45.5", "pc", "7", "30", "2000000000024"},
		{},
		{"Electronics", "Bad Lamp", "n/a", "pc", "7", "30", "2000000000031"},
	})

	f, err := os.Open(path)
	require.NoError(t, err)
	rows, err := ReadXLSX(f)
	f.Close()
	require.NoError(t, err)
	require.Len(t, rows, 2, "header and blank rows are dropped")
	assert.Equal(t, 2, rows[0].Line)

	store := newStore(t)
	stats, err := New(store).ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Created)
	assert.Equal(t, 1, stats.Skipped)

	p, err := store.GetProductByBarcode(context.Background(), "2000000000024")
	require.NoError(t, err)
	assert.Equal(t, "45.50", p.Price)
}

func TestImportFile_TSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ppob.txt")
	require.NoError(t, os.WriteFile(path, []byte(priceList), 0644))

	stats, err := New(newStore(t)).ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Created)

	_, err = New(newStore(t)).ImportFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
