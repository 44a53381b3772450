package jobs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/prompt-fun/promptd/internal/domain"
	"github.com/prompt-fun/promptd/internal/service"
)

// MockEmbeddingClient is a mock implementation of service.EmbeddingClient
type MockEmbeddingClient struct {
	mock.Mock
}

func (m *MockEmbeddingClient) Embed(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

func (m *MockEmbeddingClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

// MockVectorIndex is a mock implementation of service.VectorIndex
type MockVectorIndex struct {
	mock.Mock
}

func (m *MockVectorIndex) Upsert(ctx context.Context, namespace string, entries []domain.IndexEntry) error {
	args := m.Called(ctx, namespace, entries)
	return args.Error(0)
}

func (m *MockVectorIndex) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]domain.RetrievalMatch, error) {
	args := m.Called(ctx, namespace, vector, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RetrievalMatch), args.Error(1)
}

func (m *MockVectorIndex) DeleteBySource(ctx context.Context, namespace, source string) error {
	args := m.Called(ctx, namespace, source)
	return args.Error(0)
}

// MockObjectFetcher is a mock implementation of ObjectFetcher
type MockObjectFetcher struct {
	mock.Mock
}

func (m *MockObjectFetcher) GetObject(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func writeTempDoc(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func batchVectors(n int) [][]float32 {
	out := make([][]float32, n)
	for i := range out {
		out[i] = []float32{float32(i)}
	}
	return out
}

func TestIngestionJob_Run_LocalFile(t *testing.T) {
	client := new(MockEmbeddingClient)
	index := new(MockVectorIndex)

	path := writeTempDoc(t, "doc.txt", "prompt.fun is a launchpad.")

	index.On("DeleteBySource", mock.Anything, "default", "doc.txt").Return(nil)
	client.On("EmbedBatch", mock.Anything, []string{"prompt.fun is a launchpad."}).
		Return(batchVectors(1), nil)
	index.On("Upsert", mock.Anything, "default", mock.MatchedBy(func(entries []domain.IndexEntry) bool {
		return len(entries) == 1 &&
			entries[0].Chunk.ID == "doc.txt:0" &&
			entries[0].Chunk.Source == "doc.txt"
	})).Return(nil)

	job := NewIngestionJob(service.NewEmbeddingService(client), index, nil, IngestionConfig{})

	summary, err := job.Run(context.Background(), []string{path})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Sources)
	assert.Equal(t, 1, summary.Documents)
	assert.Equal(t, 1, summary.Chunks)
	index.AssertExpectations(t)
}

func TestIngestionJob_Run_BatchesAndUpsertsIncrementally(t *testing.T) {
	client := new(MockEmbeddingClient)
	index := new(MockVectorIndex)

	// 5 chunks with window 10 / overlap 0 and batch size 2 → 3 batches
	path := writeTempDoc(t, "doc.txt", strings.Repeat("a", 50))

	index.On("DeleteBySource", mock.Anything, "default", "doc.txt").Return(nil).Once()
	client.On("EmbedBatch", mock.Anything, mock.MatchedBy(func(texts []string) bool {
		return len(texts) == 2
	})).Return(batchVectors(2), nil).Twice()
	client.On("EmbedBatch", mock.Anything, mock.MatchedBy(func(texts []string) bool {
		return len(texts) == 1
	})).Return(batchVectors(1), nil).Once()
	index.On("Upsert", mock.Anything, "default", mock.Anything).Return(nil).Times(3)

	job := NewIngestionJob(service.NewEmbeddingService(client), index, nil, IngestionConfig{
		Chunking:  service.ChunkConfig{Window: 10},
		BatchSize: 2,
	})

	summary, err := job.Run(context.Background(), []string{path})
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Chunks)
	client.AssertExpectations(t)
	index.AssertExpectations(t)
}

func TestIngestionJob_Run_S3Source(t *testing.T) {
	client := new(MockEmbeddingClient)
	index := new(MockVectorIndex)
	fetcher := new(MockObjectFetcher)

	fetcher.On("GetObject", mock.Anything, "docs/guide.md").
		Return([]byte("launch tokens with prompts"), nil)
	index.On("DeleteBySource", mock.Anything, "default", "guide.md").Return(nil)
	client.On("EmbedBatch", mock.Anything, mock.Anything).Return(batchVectors(1), nil)
	index.On("Upsert", mock.Anything, "default", mock.Anything).Return(nil)

	job := NewIngestionJob(service.NewEmbeddingService(client), index, fetcher, IngestionConfig{})

	summary, err := job.Run(context.Background(), []string{"s3://docs/guide.md"})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Chunks)
	fetcher.AssertExpectations(t)
}

func TestIngestionJob_Run_S3WithoutFetcher(t *testing.T) {
	job := NewIngestionJob(service.NewEmbeddingService(new(MockEmbeddingClient)), new(MockVectorIndex), nil, IngestionConfig{})

	_, err := job.Run(context.Background(), []string{"s3://docs/guide.md"})
	assert.ErrorContains(t, err, "object storage")
}

func TestIngestionJob_Run_EmbeddingFailureAborts(t *testing.T) {
	client := new(MockEmbeddingClient)
	index := new(MockVectorIndex)

	path := writeTempDoc(t, "doc.txt", "some content")

	index.On("DeleteBySource", mock.Anything, "default", "doc.txt").Return(nil)
	client.On("EmbedBatch", mock.Anything, mock.Anything).Return(nil, errors.New("down"))

	job := NewIngestionJob(service.NewEmbeddingService(client), index, nil, IngestionConfig{})

	_, err := job.Run(context.Background(), []string{path})

	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeEmbedding, de.Code)
	index.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestIngestionJob_Run_SkipsEmptyDocument(t *testing.T) {
	index := new(MockVectorIndex)
	path := writeTempDoc(t, "empty.txt", "   \n")

	job := NewIngestionJob(service.NewEmbeddingService(new(MockEmbeddingClient)), index, nil, IngestionConfig{})

	summary, err := job.Run(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Chunks)
	index.AssertNotCalled(t, "DeleteBySource", mock.Anything, mock.Anything, mock.Anything)
}

func TestExtractDocuments_PlainText(t *testing.T) {
	docs, err := ExtractDocuments("notes/readme.md", []byte("# prompt.fun"))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "readme.md", docs[0].Source)
	assert.Equal(t, "# prompt.fun", docs[0].Text)
}

func TestExtractDocuments_InvalidPDF(t *testing.T) {
	_, err := ExtractDocuments("broken.pdf", []byte("not a pdf"))
	assert.Error(t, err)
}
