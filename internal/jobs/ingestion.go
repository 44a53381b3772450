package jobs

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/prompt-fun/promptd/internal/domain"
	"github.com/prompt-fun/promptd/internal/service"
	"github.com/prompt-fun/promptd/internal/telemetry"
)

// ObjectFetcher loads source documents from object storage.
type ObjectFetcher interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
}

// IngestionConfig controls one ingestion run.
type IngestionConfig struct {
	Namespace string
	Chunking  service.ChunkConfig
	BatchSize int
}

// IngestionJob loads documents, chunks them, embeds the chunks in batches,
// and upserts each batch into the vector index as soon as it is embedded.
// Runs are sequential and idempotent: chunk ids are stable per source and
// stale chunks are deleted before a source is re-upserted, so a crash
// mid-run just leaves a partial index that the next run completes.
type IngestionJob struct {
	embedding *service.EmbeddingService
	index     service.VectorIndex
	fetcher   ObjectFetcher
	cfg       IngestionConfig
}

// Summary reports what one run ingested.
type Summary struct {
	Sources   int
	Documents int
	Chunks    int
}

// NewIngestionJob creates a new IngestionJob instance. fetcher may be nil
// when only local sources are used.
func NewIngestionJob(embedding *service.EmbeddingService, index service.VectorIndex, fetcher ObjectFetcher, cfg IngestionConfig) *IngestionJob {
	if cfg.Chunking.Window <= 0 {
		cfg.Chunking = service.DefaultChunkConfig()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 32
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "default"
	}
	return &IngestionJob{
		embedding: embedding,
		index:     index,
		fetcher:   fetcher,
		cfg:       cfg,
	}
}

// Run ingests each source in order. A failing source aborts the run; work
// already upserted stays in the index.
func (j *IngestionJob) Run(ctx context.Context, sources []string) (*Summary, error) {
	summary := &Summary{}

	for _, source := range sources {
		data, name, err := j.load(ctx, source)
		if err != nil {
			return summary, err
		}

		docs, err := ExtractDocuments(name, data)
		if err != nil {
			return summary, err
		}

		summary.Sources++
		for _, doc := range docs {
			n, err := j.ingestDocument(ctx, doc)
			if err != nil {
				return summary, err
			}
			summary.Documents++
			summary.Chunks += n
			log.Printf("ingested %s: %d chunks", doc.Source, n)
		}
	}

	return summary, nil
}

func (j *IngestionJob) ingestDocument(ctx context.Context, doc Document) (int, error) {
	ctx, span := telemetry.StartSpan(ctx, "IngestionJob.ingestDocument", telemetry.SpanAttributes{
		Namespace: j.cfg.Namespace,
		Source:    doc.Source,
		Operation: "ingest",
	})
	defer span.End()

	chunks := service.ChunkDocument(doc.Text, doc.Source, j.cfg.Chunking)
	if len(chunks) == 0 {
		return 0, nil
	}

	// drop whatever an earlier run stored for this source first, so a
	// shorter re-ingestion cannot leave stale trailing chunks
	if err := j.index.DeleteBySource(ctx, j.cfg.Namespace, doc.Source); err != nil {
		return 0, domain.NewIndexError(err)
	}

	for start := 0; start < len(chunks); start += j.cfg.BatchSize {
		end := start + j.cfg.BatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Text
		}

		vectors, err := j.embedding.EmbedBatch(ctx, texts)
		if err != nil {
			return 0, err
		}

		entries := make([]domain.IndexEntry, len(batch))
		for i, c := range batch {
			entries[i] = domain.IndexEntry{Chunk: c, Embedding: vectors[i]}
		}

		if err := j.index.Upsert(ctx, j.cfg.Namespace, entries); err != nil {
			return 0, domain.NewIndexError(err)
		}
	}

	return len(chunks), nil
}

// load fetches source bytes from object storage (s3://key) or the local
// filesystem, returning the data and the display name.
func (j *IngestionJob) load(ctx context.Context, source string) ([]byte, string, error) {
	if key, ok := strings.CutPrefix(source, "s3://"); ok {
		if j.fetcher == nil {
			return nil, "", fmt.Errorf("source %s requires object storage, none configured", source)
		}
		data, err := j.fetcher.GetObject(ctx, key)
		if err != nil {
			return nil, "", err
		}
		return data, key, nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", source, err)
	}
	return data, source, nil
}
