package docstore

import "time"

// RecordMetadata describes where an embedded chunk sits in its document and
// which model produced the vector.
type RecordMetadata struct {
	ChunkNumber        int    `json:"chunkNumber"`
	StartIndex         int    `json:"startIndex"`
	EndIndex           int    `json:"endIndex"`
	CharacterCount     int    `json:"characterCount"`
	IsLastChunk        bool   `json:"isLastChunk"`
	EmbeddingModel     string `json:"embeddingModel"`
	EmbeddingDimension int    `json:"embeddingDimension"`
}

// EmbeddingRecord pairs a chunk of document text with its embedding vector.
// Records are immutable once created and owned by their Document.
type EmbeddingRecord struct {
	Content   string         `json:"content"`
	Embedding []float32      `json:"embedding"`
	Metadata  RecordMetadata `json:"metadata"`
}

// Stats summarises an ingested document.
type Stats struct {
	TotalPages      int `json:"totalPages"`
	TotalWords      int `json:"totalWords"`
	TotalCharacters int `json:"totalCharacters"`
	SectionCount    int `json:"sectionCount"`
}

// Document is one ingested file: its cleaned text, embedding records, and
// summary statistics. The ID is generated at ingestion and is the sole
// external handle; a re-save replaces the whole record.
type Document struct {
	ID         string            `json:"id"`
	Filename   string            `json:"filename"`
	Text       string            `json:"text"`
	Embeddings []EmbeddingRecord `json:"embeddings"`
	Stats      Stats             `json:"stats"`
	Timestamp  time.Time         `json:"timestamp"`
}
