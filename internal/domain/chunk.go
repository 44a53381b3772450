package domain

// Chunk is a bounded window of a source document's text. Chunks are immutable
// once produced; ids are unique within an index namespace.
type Chunk struct {
	ID     string
	Text   string
	Source string
}

// IndexEntry pairs a chunk with its embedding for upsert into the vector index.
type IndexEntry struct {
	Chunk     Chunk
	Embedding []float32
}

// RetrievalMatch is one nearest-neighbor result from the vector index,
// scored by cosine similarity.
type RetrievalMatch struct {
	ID     string
	Score  float32
	Source string
	Text   string
}
