// Package config provides loading of composite workflow coupling files.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/dukex/rtcontrol/pkg/models"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownDataItem   = errors.New("link references an unknown data item")
	ErrDuplicateDataItem = errors.New("duplicate data item")
)

// CouplingFile represents the structure of a coupling YAML file.
type CouplingFile struct {
	Simultaneous []string         `yaml:"simultaneous"`
	DataItems    []DataItemConfig `yaml:"data_items"   validate:"dive"`
	Links        []LinkConfig     `yaml:"links"        validate:"dive"`
}

// DataItemConfig represents a data item in the YAML file.
type DataItemConfig struct {
	ID    string `yaml:"id"    validate:"required"`
	Owner string `yaml:"owner" validate:"required"`
}

// LinkConfig makes To take its value from From.
type LinkConfig struct {
	From string `yaml:"from" validate:"required"`
	To   string `yaml:"to"   validate:"required,nefield=From"`
}

// LoadCoupling loads a coupling snapshot from a YAML file.
func LoadCoupling(filepath string) (*models.Coupling, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read coupling file %s: %w", filepath, err)
	}

	var file CouplingFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse coupling YAML: %w", err)
	}

	return file.Coupling()
}

// Coupling validates the file and builds the snapshot it describes.
func (f CouplingFile) Coupling() (*models.Coupling, error) {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(f); err != nil {
		return nil, fmt.Errorf("invalid coupling: %w", err)
	}

	coupling := &models.Coupling{
		Simultaneous: f.Simultaneous,
		DataItems:    make([]models.DataItem, 0, len(f.DataItems)),
	}

	seen := make(map[string]bool, len(f.DataItems))

	for _, item := range f.DataItems {
		if seen[item.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateDataItem, item.ID)
		}

		seen[item.ID] = true

		coupling.DataItems = append(coupling.DataItems, models.DataItem{ID: item.ID, Owner: item.Owner})
	}

	for i, link := range f.Links {
		for _, id := range []string{link.From, link.To} {
			if !seen[id] {
				return nil, fmt.Errorf("links[%d]: %w: %q", i, ErrUnknownDataItem, id)
			}
		}

		coupling.Link(link.From, link.To)
	}

	return coupling, nil
}
