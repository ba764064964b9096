// Package seed carries the catalog the storefront ships with.
package seed

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/soft99/storefront-backend/pkg/models"
)

//go:embed data/*.json
var bundled embed.FS

const (
	productsFile   = "products.json"
	categoriesFile = "categories.json"
	brandsFile     = "brands.json"
)

// Dataset is one decoded copy of the seed. Every call to Load returns fresh
// slices the caller owns.
type Dataset struct {
	Products   []models.Product
	Categories []models.Category
	Brands     []models.Brand
}

// Load decodes the bundled dataset, or the one under dir when dir is set.
func Load(dir string) (*Dataset, error) {
	var fsys fs.FS
	if dir != "" {
		fsys = os.DirFS(dir)
	} else {
		sub, err := fs.Sub(bundled, "data")
		if err != nil {
			return nil, fmt.Errorf("open bundled seed: %w", err)
		}
		fsys = sub
	}

	var ds Dataset
	if err := decode(fsys, productsFile, &ds.Products); err != nil {
		return nil, err
	}
	if err := decode(fsys, categoriesFile, &ds.Categories); err != nil {
		return nil, err
	}
	if err := decode(fsys, brandsFile, &ds.Brands); err != nil {
		return nil, err
	}
	return &ds, nil
}

func decode(fsys fs.FS, name string, out any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read seed %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode seed %s: %w", name, err)
	}
	return nil
}
