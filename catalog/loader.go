// Package catalog loads the product catalog from a CSV export.
package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gocarina/gocsv"

	"wattwise/api/models"
	"wattwise/api/store"
)

// LoadFromReader parses a header-mapped CSV and upserts each row by SKU.
// Rows missing a SKU or name are skipped, not fatal.
func LoadFromReader(ctx context.Context, r io.Reader, products *store.ProductStore) (int, error) {
	var rows []models.Product
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return 0, fmt.Errorf("failed to parse catalog CSV: %w", err)
	}

	loaded := 0
	for _, p := range rows {
		if p.SKU == "" || p.Name == "" {
			log.Printf("Skipping catalog row with missing sku/name: %+v", p)
			continue
		}
		if err := products.UpsertProduct(ctx, p); err != nil {
			log.Printf("Error upserting catalog product %s: %v", p.SKU, err)
			continue
		}
		loaded++
	}

	log.Printf("Catalog load complete: %d of %d rows upserted.", loaded, len(rows))
	return loaded, nil
}

// LoadFromFile opens the given CSV path and loads it.
func LoadFromFile(ctx context.Context, path string, products *store.ProductStore) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	return LoadFromReader(ctx, f, products)
}
