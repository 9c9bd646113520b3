//go:build ignore

package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"storefront/internal/catalog"
	"storefront/internal/model"
)

// generateSampleCatalog writes two catalog files for local runs:
// data/catalog/catalog.json is the built-in catalog,
// data/catalog/catalog-promo.json.gz adds a free pickup option.
func main() {
	dataDir := "data/catalog"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	promo := catalog.Default()
	promo.Shipping = append(promo.Shipping, model.ShippingMethod{
		ID:        "pickup",
		Name:      "Ambil di Toko",
		Price:     0,
		Estimated: "Hari ini",
	})

	files := map[string]*catalog.Catalog{
		"catalog.json":          catalog.Default(),
		"catalog-promo.json.gz": promo,
	}

	for filename, c := range files {
		if err := c.Validate(); err != nil {
			log.Fatalf("Invalid catalog %s: %v", filename, err)
		}

		filePath := filepath.Join(dataDir, filename)
		if err := writeCatalogFile(filePath, c, filepath.Ext(filename) == ".gz"); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d shipping and %d payment methods\n", filePath, len(c.Shipping), len(c.Payment))
	}

	fmt.Println("\nSample catalog files created successfully!")
	fmt.Println("Set CATALOG_PATH=data/catalog/catalog.json to use one.")
}

func writeCatalogFile(filePath string, c *catalog.Catalog, gzipped bool) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	w := json.NewEncoder(file)
	if gzipped {
		gzipWriter := gzip.NewWriter(file)
		defer gzipWriter.Close()
		w = json.NewEncoder(gzipWriter)
	}

	w.SetIndent("", "  ")
	if err := w.Encode(c); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}

	return nil
}
