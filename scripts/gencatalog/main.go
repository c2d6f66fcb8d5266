// Command gencatalog writes a sample product catalog for SEED_FILE.
//
//	go run ./scripts/gencatalog -out data/catalog.json.gz
package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"storefront/internal/model"
)

var sampleCatalog = []model.Product{
	{ID: "E100", Name: "Noise Cancelling Headphones", Price: 199.99, Category: "Electronics", Image: "headphones.png"},
	{ID: "E101", Name: "Smartphone", Price: 699, Category: "Electronics", Image: "smartphone.png"},
	{ID: "E102", Name: "Ultrabook Laptop", Price: 1499, Category: "Electronics", Image: "laptop.png"},
	{ID: "E103", Name: "Portable Speaker", Price: 59.5, Category: "Electronics", Image: "speaker.png"},
	{ID: "C200", Name: "Cotton T-Shirt", Price: 15, Category: "Clothing", Image: "tshirt.png"},
	{ID: "C201", Name: "Denim Jacket", Price: 89, Category: "Clothing", Image: "jacket.png"},
	{ID: "C202", Name: "Wool Sweater", Price: 65, Category: "Clothing", Image: "sweater.png"},
	{ID: "F300", Name: "Running Shoes", Price: 120, Category: "Footwear", Image: "running.png"},
	{ID: "F301", Name: "Leather Boots", Price: 180, Category: "Footwear", Image: "boots.png"},
	{ID: "F302", Name: "Sandals", Price: 35, Category: "Footwear", Image: "sandals.png"},
	{ID: "A400", Name: "Leather Wallet", Price: 45, Category: "Accessories", Image: "wallet.png"},
	{ID: "A401", Name: "Sunglasses", Price: 150, Category: "Accessories", Image: "sunglasses.png"},
}

func main() {
	out := flag.String("out", "data/catalog.json.gz", "output file; a .gz suffix writes gzip")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	if err := writeCatalog(*out, sampleCatalog); err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d products\n", *out, len(sampleCatalog))
	fmt.Printf("\nSeed the API with:\n  SEED_FILE=%s go run ./cmd/api\n", *out)
}

func writeCatalog(path string, products []model.Product) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	var w io.Writer = file
	if strings.HasSuffix(path, ".gz") {
		gzipWriter := gzip.NewWriter(file)
		defer gzipWriter.Close()
		w = gzipWriter
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(products); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}

	return nil
}
