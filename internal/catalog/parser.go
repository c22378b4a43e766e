package catalog

// Package catalog provides catalog.yaml parsing functionality.

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(content []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(content, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &cat, nil
}

func (p *Parser) ParseFromString(content string) (*Catalog, error) {
	return p.Parse([]byte(content))
}

// Load reads the catalog from path, falling back to the built-in catalog
// when path is empty.
func (p *Parser) Load(path string) (*Catalog, error) {
	if path == "" {
		return p.ParseFromString(defaultCatalogYAML)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return p.Parse(content)
}
