package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/categories.yml
var categoryFixtures []byte

// CategoryFixture is a curated category definition from the fixture catalog.
type CategoryFixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type fixtureCatalog struct {
	Categories []CategoryFixture `yaml:"categories"`
}

// LoadCategoryFixtures parses the embedded category catalog.
func LoadCategoryFixtures() ([]CategoryFixture, error) {
	var catalog fixtureCatalog
	if err := yaml.Unmarshal(categoryFixtures, &catalog); err != nil {
		return nil, fmt.Errorf("parse category fixtures: %w", err)
	}
	return catalog.Categories, nil
}
