package service

import (
	"fmt"
	"strings"

	"github.com/prompt-fun/promptd/internal/domain"
)

// ChunkConfig controls the sliding window used to split documents.
type ChunkConfig struct {
	Window  int
	Overlap int
}

// DefaultChunkConfig matches the window the embedding models were tuned for.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		Window:  800,
		Overlap: 100,
	}
}

// ChunkDocument splits text into overlapping windows and assigns stable
// chunk IDs of the form "source:index". Re-chunking the same source
// yields the same IDs, so an upsert replaces earlier content in place.
func ChunkDocument(text, source string, cfg ChunkConfig) []domain.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if cfg.Window <= 0 {
		cfg = DefaultChunkConfig()
	}
	if cfg.Overlap < 0 || cfg.Overlap >= cfg.Window {
		cfg.Overlap = 0
	}

	runes := []rune(text)
	step := cfg.Window - cfg.Overlap

	chunks := make([]domain.Chunk, 0, (len(runes)+step-1)/step)
	for start := 0; start < len(runes); start += step {
		end := start + cfg.Window
		if end > len(runes) {
			end = len(runes)
		}

		chunks = append(chunks, domain.Chunk{
			ID:     fmt.Sprintf("%s:%d", source, len(chunks)),
			Text:   string(runes[start:end]),
			Source: source,
		})

		if end >= len(runes) {
			break
		}
	}

	return chunks
}
