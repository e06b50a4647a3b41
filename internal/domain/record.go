package domain

// IndexedRecord is the flattened, searchable form of one Observation.
// Records are built once per dataset load and never mutated.
type IndexedRecord struct {
	Text    string
	Country string
	Year    int
	Score   float64
}

// ScoredRecord pairs an IndexedRecord with its integer relevance score
// for one query. It exists only between scoring and answer generation.
type ScoredRecord struct {
	Record IndexedRecord
	Score  int
}

// RetrievedDocument is an IndexedRecord annotated with a normalized
// similarity in [0,1], returned for "source documents" display.
type RetrievedDocument struct {
	Record     IndexedRecord
	Similarity float64
}
