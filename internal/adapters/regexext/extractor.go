// Package regexext implements the extraction collaborator with regular
// expression rules.
package regexext

import (
	"fmt"
	"regexp"

	"github.com/pinionworks/pinion/internal/filings"
)

type compiledRule struct {
	field string
	re    *regexp.Regexp
}

// Extractor applies a compiled rule set to raw documents. Safe for
// concurrent use; the rules are immutable after New.
type Extractor struct {
	rules []compiledRule
}

// New compiles the rule set. Every pattern must compile and carry at least
// one capture group, which becomes the extracted value.
func New(rules filings.RuleSet) (*Extractor, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", rule.Field, err)
		}
		if re.NumSubexp() < 1 {
			return nil, fmt.Errorf("rule %q has no capture group", rule.Field)
		}
		compiled = append(compiled, compiledRule{field: rule.Field, re: re})
	}

	return &Extractor{rules: compiled}, nil
}

// Extract returns the field values whose rules match the document. Rules
// that do not match are skipped; it is the caller's business whether an
// empty result is an error.
func (e *Extractor) Extract(document string) (map[string]string, error) {
	facts := make(map[string]string)

	for _, rule := range e.rules {
		m := rule.re.FindStringSubmatch(document)
		if m == nil {
			continue
		}
		facts[rule.field] = m[1]
	}

	return facts, nil
}
