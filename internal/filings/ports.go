package filings

import "context"

// Retriever fetches the raw company facts document for a validated CIK.
type Retriever interface {
	Fetch(ctx context.Context, cik string) (string, error)
}

// Extractor pulls structured field values out of a raw document.
type Extractor interface {
	Extract(document string) (map[string]string, error)
}

// Identifier produces process-unique identifiers for newly ingested records.
type Identifier interface {
	NewID() string
}

// FactStore persists extraction results.
type FactStore interface {
	// Save persists the record, replacing any previous record for its CIK.
	Save(ctx context.Context, rec Record) error

	// Load retrieves the record for a CIK.
	// Returns ErrRecordNotFound if none exists.
	Load(ctx context.Context, cik string) (Record, error)

	// List returns the CIKs with stored records.
	List(ctx context.Context) ([]string, error)
}
