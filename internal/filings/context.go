// Package filings implements the SEC filing pipeline on top of the pinion
// framework: validate a CIK, retrieve the company facts document, extract
// structured fields and store the result. All external collaborators
// (retrieval, extraction, identifiers, storage) enter through the ports
// defined in this package.
package filings

import (
	"errors"
	"time"
)

// Ingestion carries one filing through a run. It is owned exclusively by the
// machine driving it; nested runs get their own copy via projection.
type Ingestion struct {
	// RawCIK is the caller-supplied Central Index Key, unvalidated.
	RawCIK string

	// CIK is the validated, ten-digit zero-padded key.
	CIK string

	// Document is the raw company facts payload as retrieved.
	Document string

	// Facts holds the extracted field values, keyed by rule field name.
	Facts map[string]string

	// RecordID identifies the stored record once ingestion completes.
	RecordID string

	// Stored reports whether the record was persisted.
	Stored bool
}

// Record is one persisted extraction result.
type Record struct {
	ID         string            `json:"id"`
	CIK        string            `json:"cik"`
	Facts      map[string]string `json:"facts"`
	IngestedAt time.Time         `json:"ingested_at"`
}

// ErrRecordNotFound is returned by a FactStore when no record exists for the
// requested CIK.
var ErrRecordNotFound = errors.New("record not found")
