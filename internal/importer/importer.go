// Package importer loads product price lists into the catalog store.
//
// A price list is tab-separated text, or the first sheet of an .xlsx workbook, with one product
// per row in the columns: category, name, price, (unused), stock, cost price, barcode.
package importer

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hyperjump/tafuta/internal/models"
	"github.com/hyperjump/tafuta/internal/storage"
	"go.uber.org/zap"
)

const minColumns = 7

// Row is one raw price-list line.
type Row struct {
	Line  int
	Cells []string
}

// Stats summarizes an import run.
type Stats struct {
	Lines             int  `json:"lines"`
	Created           int  `json:"created"`
	Updated           int  `json:"updated"`
	Skipped           int  `json:"skipped"`
	Errors            int  `json:"errors"`
	GeneratedBarcodes int  `json:"generated_barcodes"`
	DryRun            bool `json:"dry_run"`
}

// Importer writes price-list rows to a store.
type Importer struct {
	store            storage.Storage
	logger           *zap.Logger
	dryRun           bool
	generateBarcodes bool
}

// Option configures an Importer.
type Option func(*Importer)

// WithLogger sets the logger used for per-line diagnostics (default: no-op).
func WithLogger(l *zap.Logger) Option {
	return func(i *Importer) { i.logger = l }
}

// WithDryRun validates and counts rows without writing.
func WithDryRun(v bool) Option {
	return func(i *Importer) { i.dryRun = v }
}

// WithGenerateBarcodes assigns a generated barcode to rows that have none instead of skipping
// them.
func WithGenerateBarcodes(v bool) Option {
	return func(i *Importer) { i.generateBarcodes = v }
}

// New creates an Importer writing to store.
func New(store storage.Storage, opts ...Option) *Importer {
	i := &Importer{store: store, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// ImportFile reads path (.xlsx or tab-separated text) and imports its rows.
func (i *Importer) ImportFile(ctx context.Context, path string) (*Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open price list: %w", err)
	}
	defer f.Close()

	var rows []Row
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = ReadXLSX(f)
	default:
		rows, err = ReadTSV(f)
	}
	if err != nil {
		return nil, err
	}
	return i.Import(ctx, rows)
}

// Import upserts rows by barcode. Rows with missing columns, an invalid price, stock or cost, a
// blank name, or no barcode (unless generation is on) are skipped and counted. Store failures
// on a single row are counted as errors; the run continues. Only ctx cancellation aborts.
func (i *Importer) Import(ctx context.Context, rows []Row) (*Stats, error) {
	stats := &Stats{DryRun: i.dryRun}

	// barcode -> owning product key
	taken := make(map[string]string)
	if i.generateBarcodes {
		existing, err := i.store.ListProducts(ctx)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		for _, p := range existing {
			if p.Barcode != "" {
				taken[p.Barcode] = productKey(p.CategoryName, p.Name)
			}
		}
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Lines++

		p, err := ParseRow(row)
		if err != nil {
			i.logger.Warn("skipping line", zap.Int("line", row.Line), zap.Error(err))
			stats.Skipped++
			continue
		}
		if p.Barcode == "" {
			if !i.generateBarcodes {
				i.logger.Warn("skipping line", zap.Int("line", row.Line),
					zap.String("reason", "missing barcode (use --generate-barcodes to auto-generate)"))
				stats.Skipped++
				continue
			}
			p.Barcode = GenerateBarcode(p.CategoryName, p.Name, taken)
			stats.GeneratedBarcodes++
		}
		taken[p.Barcode] = productKey(p.CategoryName, p.Name)

		created, err := i.save(ctx, p)
		if err != nil {
			i.logger.Error("failed to import line", zap.Int("line", row.Line), zap.Error(err))
			stats.Errors++
			continue
		}
		if created {
			stats.Created++
		} else {
			stats.Updated++
		}
		if stats.Lines%500 == 0 {
			i.logger.Info("import progress", zap.Int("lines", stats.Lines))
		}
	}

	i.logger.Info("import complete",
		zap.Bool("dry_run", stats.DryRun),
		zap.Int("created", stats.Created),
		zap.Int("updated", stats.Updated),
		zap.Int("skipped", stats.Skipped),
		zap.Int("errors", stats.Errors),
		zap.Int("generated_barcodes", stats.GeneratedBarcodes))
	return stats, nil
}

// save upserts p, or in dry-run mode only reports whether it would be created.
func (i *Importer) save(ctx context.Context, p *models.Product) (bool, error) {
	if !i.dryRun {
		return i.store.UpsertProduct(ctx, p)
	}
	_, err := i.store.GetProductByBarcode(ctx, p.Barcode)
	if errors.Is(err, storage.ErrNotFound) {
		return true, nil
	}
	return false, err
}

// ParseRow converts a price-list row to an active product. A barcode of "0" counts as missing.
func ParseRow(row Row) (*models.Product, error) {
	if len(row.Cells) < minColumns {
		return nil, fmt.Errorf("insufficient columns: %d of %d", len(row.Cells), minColumns)
	}
	cell := func(i int) string { return strings.TrimSpace(row.Cells[i]) }

	price, err := strconv.ParseFloat(cell(2), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid selling price %q", cell(2))
	}
	stock, err := strconv.ParseFloat(cell(4), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid stock quantity %q", cell(4))
	}
	cost, err := strconv.ParseFloat(cell(5), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid cost price %q", cell(5))
	}
	name := cell(1)
	if name == "" {
		return nil, errors.New("missing product name")
	}
	barcode := cell(6)
	if barcode == "0" {
		barcode = ""
	}

	return &models.Product{
		Name:          name,
		CategoryName:  cell(0),
		Price:         strconv.FormatFloat(price, 'f', 2, 64),
		CostPrice:     strconv.FormatFloat(cost, 'f', 2, 64),
		StockQuantity: int64(stock),
		Barcode:       barcode,
		IsActive:      true,
	}, nil
}

func productKey(category, name string) string {
	return category + "\x00" + name
}

// GenerateBarcode derives an EAN-13 code in the in-store range (leading "2") from the product's
// category and name. taken maps codes in use to the product key that owns them. The same
// product always gets the same code, so re-importing a list updates rather than duplicates; a
// code owned by a different product moves on to the next candidate in the sequence.
func GenerateBarcode(category, name string, taken map[string]string) string {
	key := productKey(category, name)
	for attempt := uint64(0); ; attempt++ {
		h := sha256.New()
		h.Write([]byte(key))
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], attempt)
		h.Write(buf[:])
		sum := h.Sum(nil)

		body := fmt.Sprintf("2%011d", binary.BigEndian.Uint64(sum[:8])%100_000_000_000)
		code := body + strconv.Itoa(ean13CheckDigit(body))
		if owner, ok := taken[code]; !ok || owner == key {
			return code
		}
	}
}

// ean13CheckDigit computes the check digit for a 12-digit EAN body.
func ean13CheckDigit(body string) int {
	sum := 0
	for i, r := range body {
		d := int(r - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10
}
