package filings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rule binds a fact field name to a regular expression. The expression's
// first capture group becomes the extracted value.
type Rule struct {
	Field   string `yaml:"field" mapstructure:"field"`
	Pattern string `yaml:"pattern" mapstructure:"pattern"`
}

// RuleSet is an ordered list of extraction rules.
type RuleSet []Rule

// Validate checks that every rule names a field and a pattern.
func (rs RuleSet) Validate() error {
	if len(rs) == 0 {
		return fmt.Errorf("rule set is empty")
	}
	for i, r := range rs {
		if r.Field == "" {
			return fmt.Errorf("rule %d has no field name", i)
		}
		if r.Pattern == "" {
			return fmt.Errorf("rule %q has no pattern", r.Field)
		}
	}
	return nil
}

// LoadRules reads a YAML rule set from path.
func LoadRules(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules file %s: %w", path, err)
	}

	return rs, nil
}

// DefaultRules covers the company facts payload fields the pipeline cares
// about out of the box.
func DefaultRules() RuleSet {
	return RuleSet{
		{Field: "entity_name", Pattern: `"entityName"\s*:\s*"([^"]+)"`},
		{Field: "cik", Pattern: `"cik"\s*:\s*(\d+)`},
	}
}
