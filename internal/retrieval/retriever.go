// Package retrieval ranks embedding records against a query vector by
// cosine similarity.
package retrieval

import (
	"log"
	"math"
	"sort"

	"github.com/studybuddy-ai/studybuddy/internal/docstore"
)

// DefaultTopK is the number of records returned when the caller does not
// specify k.
const DefaultTopK = 5

// Scored pairs an embedding record with its similarity to the query.
type Scored struct {
	Record     docstore.EmbeddingRecord `json:"record"`
	Similarity float64                  `json:"similarity"`
}

// Cosine computes the cosine similarity of two vectors. A zero-magnitude
// vector yields 0. Mismatched lengths indicate corrupt data; the event is
// logged and 0 is returned rather than panicking.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		log.Printf("retrieval: vector length mismatch (%d vs %d), treating similarity as 0", len(a), len(b))
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// TopK returns the k records most similar to the query vector, sorted by
// descending similarity. Ties keep their original order. If k exceeds the
// record count all records are returned; k <= 0 falls back to DefaultTopK.
func TopK(query []float32, records []docstore.EmbeddingRecord, k int) []Scored {
	if k <= 0 {
		k = DefaultTopK
	}
	if len(records) == 0 {
		return nil
	}

	scored := make([]Scored, len(records))
	for i, r := range records {
		scored[i] = Scored{Record: r, Similarity: Cosine(query, r.Embedding)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}
