// Package catalog reads the material catalog file used to seed the record store.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"quote3d/internal/domain/entities"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var ErrInvalidCatalog = errors.New("invalid material catalog")

type materialEntry struct {
	Code         string   `yaml:"code"`
	Name         string   `yaml:"name"`
	Price        string   `yaml:"price"`
	LeadTimeDays int      `yaml:"leadTimeDays"`
	Properties   []string `yaml:"properties"`
}

type catalogFile struct {
	Materials []materialEntry `yaml:"materials"`
}

func Load(path string) ([]entities.Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a catalog. Codes must be unique, prices positive decimals and
// lead times non-negative.
func Parse(r io.Reader) ([]entities.Material, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	seen := make(map[string]bool, len(file.Materials))
	materials := make([]entities.Material, 0, len(file.Materials))
	for i, e := range file.Materials {
		code := strings.TrimSpace(e.Code)
		if code == "" || strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("%w: entry %d needs a code and a name", ErrInvalidCatalog, i)
		}
		if seen[code] {
			return nil, fmt.Errorf("%w: duplicate code %q", ErrInvalidCatalog, code)
		}
		seen[code] = true

		price, err := decimal.NewFromString(strings.TrimSpace(e.Price))
		if err != nil || !price.IsPositive() {
			return nil, fmt.Errorf("%w: material %q has invalid price %q", ErrInvalidCatalog, code, e.Price)
		}
		if e.LeadTimeDays < 0 {
			return nil, fmt.Errorf("%w: material %q has negative lead time", ErrInvalidCatalog, code)
		}

		props := e.Properties
		if props == nil {
			props = []string{}
		}
		materials = append(materials, entities.Material{
			Code:         code,
			Name:         strings.TrimSpace(e.Name),
			Price:        price,
			LeadTimeDays: e.LeadTimeDays,
			Properties:   props,
		})
	}
	return materials, nil
}
