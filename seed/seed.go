// Package seed holds the demo fund catalog shipped with the binary.
package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"fund-insights/models"
)

//go:embed funds.yaml
var fundsYAML []byte

// Funds decodes the embedded catalog. Every call returns a fresh slice.
func Funds() ([]models.Fund, error) {
	return Parse(fundsYAML)
}

// Parse decodes a YAML fund list and checks that IDs are positive and unique.
func Parse(data []byte) ([]models.Fund, error) {
	var funds []models.Fund
	if err := yaml.Unmarshal(data, &funds); err != nil {
		return nil, fmt.Errorf("decode fund catalog: %w", err)
	}

	seen := make(map[int]bool, len(funds))
	for _, f := range funds {
		if f.ID <= 0 {
			return nil, fmt.Errorf("fund %q: id must be positive, got %d", f.Name, f.ID)
		}
		if seen[f.ID] {
			return nil, fmt.Errorf("fund %q: duplicate id %d", f.Name, f.ID)
		}
		seen[f.ID] = true
	}
	return funds, nil
}

// MustFunds is Funds for tests and startup paths where the embedded file is
// known to be valid.
func MustFunds() []models.Fund {
	funds, err := Funds()
	if err != nil {
		panic(err)
	}
	return funds
}

//go:embed community.yaml
var communityYAML []byte

// Community is the seeded education hub and moderation desk.
type Community struct {
	Posts      []models.Post          `yaml:"posts"`
	Moderation models.ModerationQueue `yaml:"moderation"`
}

// LoadCommunity decodes the embedded education posts and moderation lists.
func LoadCommunity() (Community, error) {
	var c Community
	if err := yaml.Unmarshal(communityYAML, &c); err != nil {
		return Community{}, fmt.Errorf("decode community seed: %w", err)
	}
	for i := range c.Posts {
		c.Posts[i].Normalize()
	}
	return c, nil
}

// MustCommunity is LoadCommunity for tests and startup paths.
func MustCommunity() Community {
	c, err := LoadCommunity()
	if err != nil {
		panic(err)
	}
	return c
}
