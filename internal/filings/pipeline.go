package filings

import "github.com/pinionworks/pinion"

// Extraction builds the machine that validates a CIK, retrieves its company
// facts document and extracts structured fields. It is usable standalone
// (the extract tool) or nested inside the ingestion machine.
func Extraction(retriever Retriever, extractor Extractor, opts ...pinion.Option[Ingestion]) *pinion.Machine[Ingestion] {
	validate := ValidateCIK()
	retrieve := Retrieve(retriever)
	extract := Extract(extractor)

	return pinion.New("extraction", validate,
		pinion.Sequence(validate, retrieve, extract), opts...)
}

// IngestionMachine nests the extraction machine inside a run that persists
// the result. The extraction step gets its own context, seeded from the raw
// CIK alone; its outcome is merged back before the store step runs.
func IngestionMachine(retriever Retriever, extractor Extractor, ids Identifier, store FactStore, opts ...pinion.Option[Ingestion]) *pinion.Machine[Ingestion] {
	inner := Extraction(retriever, extractor, opts...)

	extractFiling := pinion.Nest("extract-filing", inner,
		func(outer *Ingestion) Ingestion {
			return Ingestion{RawCIK: outer.RawCIK}
		},
		func(outer *Ingestion, final Ingestion) {
			outer.CIK = final.CIK
			outer.Document = final.Document
			outer.Facts = final.Facts
		},
	)
	persist := Store(ids, store)

	return pinion.New("ingestion", extractFiling,
		pinion.Sequence[Ingestion](extractFiling, persist), opts...)
}
