package filings

import (
	"context"
	"errors"
	"time"

	"github.com/pinionworks/pinion"
)

// State names, as reported in StateError values.
const (
	StateValidateCIK = "validate-cik"
	StateRetrieve    = "retrieve"
	StateExtract     = "extract"
	StateStore       = "store"
)

// ValidateCIK normalizes the raw CIK into its canonical ten-digit form.
// Always the first step: every later state relies on a well-formed CIK.
func ValidateCIK() pinion.State[Ingestion] {
	return pinion.StateFunc(StateValidateCIK, func(_ context.Context, ing *Ingestion) error {
		cik, err := NormalizeCIK(ing.RawCIK)
		if err != nil {
			return err
		}
		ing.CIK = cik
		return nil
	})
}

// Retrieve fetches the company facts document through the retriever. The
// fetch suspends the run rather than blocking it: the request runs as a
// task the step awaits, and run cancellation aborts the request through its
// context.
func Retrieve(retriever Retriever) pinion.State[Ingestion] {
	return pinion.Async(StateRetrieve,
		func(ctx context.Context, ing *Ingestion) (*pinion.Task[string], error) {
			cik := ing.CIK
			return pinion.Go(func() (string, error) {
				return retriever.Fetch(ctx, cik)
			}), nil
		},
		func(ing *Ingestion, document string) error {
			if document == "" {
				return errors.New("retrieved an empty document")
			}
			ing.Document = document
			return nil
		},
	)
}

// Extract applies the extractor to the retrieved document.
func Extract(extractor Extractor) pinion.State[Ingestion] {
	return pinion.StateFunc(StateExtract, func(_ context.Context, ing *Ingestion) error {
		facts, err := extractor.Extract(ing.Document)
		if err != nil {
			return err
		}
		if len(facts) == 0 {
			return errors.New("no facts matched the document")
		}
		ing.Facts = facts
		return nil
	})
}

// Store assigns a record identifier and persists the extracted facts.
func Store(ids Identifier, store FactStore) pinion.State[Ingestion] {
	return pinion.StateFunc(StateStore, func(ctx context.Context, ing *Ingestion) error {
		rec := Record{
			ID:         ids.NewID(),
			CIK:        ing.CIK,
			Facts:      ing.Facts,
			IngestedAt: time.Now().UTC(),
		}

		if err := store.Save(ctx, rec); err != nil {
			return err
		}

		ing.RecordID = rec.ID
		ing.Stored = true
		return nil
	})
}
