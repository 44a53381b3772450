package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/prompt-fun/promptd/internal/domain"
)

// ChunkRepository is the vector index: embedded document chunks stored in
// Postgres with pgvector, queried by cosine similarity.
type ChunkRepository struct {
	db dbtx
}

func NewChunkRepository(pool *pgxpool.Pool) *ChunkRepository {
	return &ChunkRepository{db: pool}
}

// Upsert inserts entries, replacing any existing row with the same
// (namespace, id). Re-upserting the same batch is a no-op.
func (r *ChunkRepository) Upsert(ctx context.Context, namespace string, entries []domain.IndexEntry) error {
	for _, e := range entries {
		_, err := r.db.Exec(ctx,
			`INSERT INTO chunks (namespace, id, source, content, embedding, updated_at)
			 VALUES ($1, $2, $3, $4, $5, now())
			 ON CONFLICT (namespace, id) DO UPDATE
			 SET source = EXCLUDED.source,
			     content = EXCLUDED.content,
			     embedding = EXCLUDED.embedding,
			     updated_at = now()`,
			namespace, e.Chunk.ID, e.Chunk.Source, e.Chunk.Text, pgvector.NewVector(e.Embedding),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Query returns the topK most similar chunks by cosine similarity, scored
// as 1 - distance, in non-increasing score order.
func (r *ChunkRepository) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]domain.RetrievalMatch, error) {
	if topK <= 0 {
		return []domain.RetrievalMatch{}, nil
	}

	vec := pgvector.NewVector(vector)

	rows, err := r.db.Query(ctx,
		`SELECT id, source, content, 1 - (embedding <=> $1) AS score
		 FROM chunks
		 WHERE namespace = $2
		 ORDER BY embedding <=> $1
		 LIMIT $3`,
		vec, namespace, topK,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]domain.RetrievalMatch, 0, topK)
	for rows.Next() {
		var m domain.RetrievalMatch
		if err := rows.Scan(&m.ID, &m.Source, &m.Text, &m.Score); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// DeleteBySource removes every chunk ingested from one source, so a
// re-ingestion cannot leave stale trailing chunks behind.
func (r *ChunkRepository) DeleteBySource(ctx context.Context, namespace, source string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM chunks WHERE namespace = $1 AND source = $2`,
		namespace, source,
	)
	return err
}

// CountByNamespace reports how many chunks a namespace holds.
func (r *ChunkRepository) CountByNamespace(ctx context.Context, namespace string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM chunks WHERE namespace = $1`,
		namespace,
	).Scan(&count)
	return count, err
}
