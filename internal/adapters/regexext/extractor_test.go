package regexext

import (
	"testing"

	"github.com/pinionworks/pinion/internal/filings"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `{"cik": 320193, "entityName": "Apple Inc.", "facts": {"dei": {}}}`

func TestExtract_DefaultRules(t *testing.T) {
	ex, err := New(filings.DefaultRules())
	require.NoError(t, err)

	facts, err := ex.Extract(sampleDocument)
	require.NoError(t, err)
	require.Equal(t, "Apple Inc.", facts["entity_name"])
	require.Equal(t, "320193", facts["cik"])
}

func TestExtract_UnmatchedRulesAreSkipped(t *testing.T) {
	ex, err := New(filings.RuleSet{
		{Field: "entity_name", Pattern: `"entityName"\s*:\s*"([^"]+)"`},
		{Field: "fiscal_year", Pattern: `"fy"\s*:\s*(\d{4})`},
	})
	require.NoError(t, err)

	facts, err := ex.Extract(sampleDocument)
	require.NoError(t, err)
	require.Len(t, facts, 1)
	require.NotContains(t, facts, "fiscal_year")
}

func TestNew_RejectsBadPatterns(t *testing.T) {
	tests := []struct {
		name  string
		rules filings.RuleSet
	}{
		{name: "invalid regexp", rules: filings.RuleSet{{Field: "x", Pattern: "("}}},
		{name: "no capture group", rules: filings.RuleSet{{Field: "x", Pattern: `\d+`}}},
		{name: "empty set", rules: filings.RuleSet{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rules)
			require.Error(t, err)
		})
	}
}
