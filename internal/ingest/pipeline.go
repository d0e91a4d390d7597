package ingest

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/studybuddy-ai/studybuddy/internal/docstore"
	"github.com/studybuddy-ai/studybuddy/internal/embeddings"
	"github.com/studybuddy-ai/studybuddy/internal/textsplit"
)

// embedBatchSize is how many chunks go to the embedder per request.
const embedBatchSize = 5

// Pipeline ingests documents: clean, segment, embed, store.
type Pipeline struct {
	store     *docstore.Store
	embedder  embeddings.Embedder
	chunkSize int
}

// Result summarises one ingested document.
type Result struct {
	Document      *docstore.Document `json:"document"`
	ChunkCount    int                `json:"chunkCount"`
	SkippedChunks int                `json:"skippedChunks"`
}

// New builds a Pipeline. chunkSize <= 0 selects the default fixed-size
// window.
func New(store *docstore.Store, embedder embeddings.Embedder, chunkSize int) *Pipeline {
	if chunkSize <= 0 {
		chunkSize = textsplit.DefaultChunkSize
	}
	return &Pipeline{store: store, embedder: embedder, chunkSize: chunkSize}
}

// IngestText cleans, segments, embeds and stores one document. pageCount
// carries a page total known from extraction; when zero the paragraph-based
// page segmentation supplies it. Embedding failures skip the affected
// chunks and continue; an input that cleans to nothing is an error.
func (p *Pipeline) IngestText(ctx context.Context, filename, rawText string, pageCount int) (*Result, error) {
	cleaned := textsplit.Clean(rawText)
	if cleaned == "" {
		return nil, fmt.Errorf("ingest: %s contains no text after cleaning", filename)
	}

	chunks, err := textsplit.ByFixedSize(cleaned, p.chunkSize)
	if err != nil {
		return nil, fmt.Errorf("ingest: chunking %s: %w", filename, err)
	}

	pages := textsplit.ByPages(rawText)
	if pageCount <= 0 {
		pageCount = len(pages)
	}
	headers := textsplit.SectionHeaders(cleaned)

	records, skipped := p.embedChunks(ctx, chunks)

	doc := docstore.Document{
		ID:         uuid.NewString(),
		Filename:   filename,
		Text:       cleaned,
		Embeddings: records,
		Stats: docstore.Stats{
			TotalPages:      pageCount,
			TotalWords:      textsplit.WordCount(cleaned),
			TotalCharacters: utf8.RuneCountInString(cleaned),
			SectionCount:    len(headers),
		},
	}

	if err := p.store.Save(ctx, doc.ID, doc); err != nil {
		return nil, fmt.Errorf("ingest: saving %s: %w", filename, err)
	}

	// Re-read so the result carries the stamped timestamp.
	stored, err := p.store.Get(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("ingest: reloading %s: %w", filename, err)
	}

	log.Printf("ingest: stored %s as %s (%d chunks, %d skipped)", filename, doc.ID, len(records), skipped)
	return &Result{Document: stored, ChunkCount: len(records), SkippedChunks: skipped}, nil
}

// IngestFile reads and ingests one file from disk using the built-in text
// extractor.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (*Result, error) {
	if !SupportedFile(path) {
		return nil, fmt.Errorf("ingest: unsupported file type %q", filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: reading %s: %w", path, err)
	}
	ex, err := TextExtractor{}.Extract(data)
	if err != nil {
		return nil, fmt.Errorf("ingest: extracting %s: %w", path, err)
	}
	return p.IngestText(ctx, filepath.Base(path), ex.Text, ex.PageCount)
}

// embedChunks embeds chunks in fixed-size batches. A failed batch or an
// empty vector skips those chunks; ingestion never aborts on embedding
// trouble.
func (p *Pipeline) embedChunks(ctx context.Context, chunks []textsplit.Chunk) ([]docstore.EmbeddingRecord, int) {
	records := make([]docstore.EmbeddingRecord, 0, len(chunks))
	skipped := 0

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Content
		}

		vectors, err := p.embedder.Embed(ctx, texts)
		if err != nil || len(vectors) != len(batch) {
			log.Printf("ingest: embedding batch %d-%d failed, skipping: %v", start, end, err)
			skipped += len(batch)
			continue
		}

		for i, vec := range vectors {
			if len(vec) == 0 {
				log.Printf("ingest: empty vector for chunk %d, skipping", batch[i].Metadata.ChunkNumber)
				skipped++
				continue
			}
			records = append(records, docstore.EmbeddingRecord{
				Content:   batch[i].Content,
				Embedding: vec,
				Metadata: docstore.RecordMetadata{
					ChunkNumber:        batch[i].Metadata.ChunkNumber,
					StartIndex:         batch[i].Metadata.StartIndex,
					EndIndex:           batch[i].Metadata.EndIndex,
					CharacterCount:     batch[i].Metadata.CharacterCount,
					IsLastChunk:        batch[i].Metadata.IsLastChunk,
					EmbeddingModel:     p.embedder.Name(),
					EmbeddingDimension: len(vec),
				},
			})
		}
	}
	return records, skipped
}
