package retrieval

import (
	"math"
	"testing"

	"github.com/studybuddy-ai/studybuddy/internal/docstore"
)

const tolerance = 1e-9

func record(content string, embedding ...float32) docstore.EmbeddingRecord {
	return docstore.EmbeddingRecord{Content: content, Embedding: embedding}
}

func TestCosineIdentical(t *testing.T) {
	a := []float32{1, 2, 3}
	if got := Cosine(a, a); math.Abs(got-1) > tolerance {
		t.Errorf("expected sim(a,a)=1, got %v", got)
	}
}

func TestCosineSymmetric(t *testing.T) {
	a := []float32{0.5, -1.25, 3}
	b := []float32{2, 0.75, -0.5}
	if Cosine(a, b) != Cosine(b, a) {
		t.Errorf("expected symmetry: %v != %v", Cosine(a, b), Cosine(b, a))
	}
}

func TestCosineOrthogonal(t *testing.T) {
	if got := Cosine([]float32{1, 0}, []float32{0, 1}); math.Abs(got) > tolerance {
		t.Errorf("expected 0 for orthogonal vectors, got %v", got)
	}
}

func TestCosineOpposite(t *testing.T) {
	if got := Cosine([]float32{1, 1}, []float32{-1, -1}); math.Abs(got+1) > tolerance {
		t.Errorf("expected -1 for opposite vectors, got %v", got)
	}
}

func TestCosineZeroMagnitude(t *testing.T) {
	if got := Cosine([]float32{0, 0, 0}, []float32{1, 2, 3}); got != 0 {
		t.Errorf("expected 0 for zero vector, got %v", got)
	}
}

func TestCosineLengthMismatch(t *testing.T) {
	// Must not panic, must report no similarity.
	if got := Cosine([]float32{1, 2}, []float32{1, 2, 3}); got != 0 {
		t.Errorf("expected 0 for mismatched lengths, got %v", got)
	}
}

func TestTopKRanking(t *testing.T) {
	query := []float32{1, 0}
	records := []docstore.EmbeddingRecord{
		record("orthogonal", 0, 1),
		record("aligned", 1, 0),
		record("diagonal", 1, 1),
	}

	got := TopK(query, records, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	want := []string{"aligned", "diagonal", "orthogonal"}
	for i, w := range want {
		if got[i].Record.Content != w {
			t.Errorf("rank %d: expected %q, got %q", i, w, got[i].Record.Content)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].Similarity > got[i-1].Similarity {
			t.Errorf("results not sorted descending at %d", i)
		}
	}
}

func TestTopKTruncates(t *testing.T) {
	query := []float32{1, 0}
	records := []docstore.EmbeddingRecord{
		record("a", 1, 0),
		record("b", 0.9, 0.1),
		record("c", 0, 1),
	}

	got := TopK(query, records, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
}

func TestTopKLargerThanRecordCount(t *testing.T) {
	records := []docstore.EmbeddingRecord{record("only", 1, 0)}
	got := TopK([]float32{1, 0}, records, 10)
	if len(got) != 1 {
		t.Errorf("expected all records with no padding, got %d", len(got))
	}
}

func TestTopKSubsetOfInput(t *testing.T) {
	records := []docstore.EmbeddingRecord{
		record("a", 1, 0),
		record("b", 0, 1),
	}
	seen := map[string]bool{"a": true, "b": true}
	for _, s := range TopK([]float32{0.5, 0.5}, records, 5) {
		if !seen[s.Record.Content] {
			t.Errorf("fabricated result %q", s.Record.Content)
		}
	}
}

func TestTopKStableTies(t *testing.T) {
	// All records orthogonal to the query score 0; input order must hold.
	query := []float32{1, 0}
	records := []docstore.EmbeddingRecord{
		record("first", 0, 1),
		record("second", 0, 2),
		record("third", 0, 3),
	}
	got := TopK(query, records, 3)
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if got[i].Record.Content != w {
			t.Errorf("tie order broken at %d: expected %q, got %q", i, w, got[i].Record.Content)
		}
	}
}

func TestTopKEmptyRecords(t *testing.T) {
	if got := TopK([]float32{1}, nil, 5); len(got) != 0 {
		t.Errorf("expected no results for empty records, got %d", len(got))
	}
}

func TestTopKDefaultK(t *testing.T) {
	records := make([]docstore.EmbeddingRecord, 8)
	for i := range records {
		records[i] = record("r", 1, float32(i))
	}
	if got := TopK([]float32{1, 0}, records, 0); len(got) != DefaultTopK {
		t.Errorf("expected default k=%d, got %d", DefaultTopK, len(got))
	}
}
