package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/iliyamo/restaurant-ops/internal/model"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the initial content of the table registry and the menu catalog.
type Seed struct {
	Tables []model.Table
	Menu   []model.MenuItem
}

type seedFile struct {
	Tables []model.Table `yaml:"tables"`
	Menu   []seedItem    `yaml:"menu"`
}

// seedItem keeps the price as text so it is parsed exactly.
type seedItem struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	Category    string `yaml:"category"`
	ImageRef    string `yaml:"imageRef"`
}

// LoadSeed reads the seed at path, or the embedded default when path is empty.
func LoadSeed(path string) (Seed, error) {
	if path == "" {
		return ParseSeed(defaultSeed)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a YAML seed document.  Unknown keys are rejected so a
// typo in a seed file does not silently drop data.
func ParseSeed(data []byte) (Seed, error) {
	var f seedFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Seed{}, fmt.Errorf("decode seed: %w", err)
	}

	s := Seed{Tables: f.Tables, Menu: make([]model.MenuItem, 0, len(f.Menu))}
	for _, it := range f.Menu {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return Seed{}, fmt.Errorf("seed menu item %d: bad price %q: %w", it.ID, it.Price, err)
		}
		s.Menu = append(s.Menu, model.MenuItem{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Price:       price,
			Category:    it.Category,
			ImageRef:    it.ImageRef,
		})
	}
	return s, nil
}
