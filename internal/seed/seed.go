// Package seed loads product catalog files into the storefront database.
// Files hold a JSON array of products and may be gzip-compressed.
package seed

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// Loader reads a catalog file.
type Loader interface {
	Load(ctx context.Context, path string) ([]model.Product, error)
}

// Seeder writes products into the catalog.
type Seeder interface {
	Seed(ctx context.Context, products []model.Product) (int, error)
}

// cancelCheckEvery is how many products are decoded between context checks.
const cancelCheckEvery = 1000

// Run loads path with loader and hands the products to seeder.
func Run(ctx context.Context, loader Loader, path string, seeder Seeder, logger zerolog.Logger) (int, error) {
	products, err := loader.Load(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}

	n, err := seeder.Seed(ctx, products)
	if err != nil {
		return n, fmt.Errorf("failed to seed catalog %s: %w", path, err)
	}

	logger.Info().Str("file", path).Int("products", n).Msg("catalog seed complete")
	return n, nil
}

// decode reads a JSON product array from r, transparently un-gzipping it.
func decode(ctx context.Context, r io.Reader) ([]model.Product, error) {
	br := bufio.NewReader(r)

	var src io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	dec := json.NewDecoder(src)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("catalog must be a JSON array")
	}

	products := []model.Product{}
	for dec.More() {
		if len(products)%cancelCheckEvery == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		var p model.Product
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode product %d: %w", len(products), err)
		}
		products = append(products, p)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to read end of catalog: %w", err)
	}

	return products, nil
}
