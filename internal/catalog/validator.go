package catalog

// Package catalog provides catalog validation.

import (
	"fmt"
	"strings"
)

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Validate(cat *Catalog) error {
	if len(cat.ProjectTypes) == 0 {
		return fmt.Errorf("at least one project type is required")
	}

	typeIDs := make(map[string]bool)
	for i, projectType := range cat.ProjectTypes {
		if err := v.validateEntry(projectType.ID, projectType.Label, projectType.Price); err != nil {
			return fmt.Errorf("project type %d validation failed: %w", i, err)
		}
		if typeIDs[projectType.ID] {
			return fmt.Errorf("duplicate project type id: %s", projectType.ID)
		}
		typeIDs[projectType.ID] = true
	}

	featureIDs := make(map[string]bool)
	for i, feature := range cat.Features {
		if err := v.validateEntry(feature.ID, feature.Label, feature.Price); err != nil {
			return fmt.Errorf("feature %d validation failed: %w", i, err)
		}
		if featureIDs[feature.ID] {
			return fmt.Errorf("duplicate feature id: %s", feature.ID)
		}
		featureIDs[feature.ID] = true
	}

	return nil
}

func (v *Validator) validateEntry(id, label string, price Price) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(label) == "" {
		return fmt.Errorf("label is required")
	}
	if price.EUR < 0 || price.XAF < 0 {
		return fmt.Errorf("price amounts must be zero or positive")
	}
	return nil
}
