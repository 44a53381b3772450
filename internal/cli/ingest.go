package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/prompt-fun/promptd/internal/config"
	"github.com/prompt-fun/promptd/internal/database"
	"github.com/prompt-fun/promptd/internal/jobs"
	"github.com/prompt-fun/promptd/internal/repository"
	"github.com/prompt-fun/promptd/internal/service"
	"github.com/prompt-fun/promptd/internal/storage"
)

// IngestCmd returns the ingest command
func IngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [sources...]",
		Short: "Ingest documents into the vector index",
		Long: "Chunk, embed, and index the given document sources. Sources are local\n" +
			"file paths or s3://key references; with no arguments the DOCS list from\n" +
			"the environment is used.",
		RunE: runIngest,
	}

	cmd.Flags().String("namespace", "", "Index namespace to write into (defaults to INDEX_NAMESPACE)")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	sources := args
	if len(sources) == 0 {
		sources = cfg.DocSources()
	}
	if len(sources) == 0 {
		return fmt.Errorf("no sources given and DOCS is empty")
	}

	namespace := cfg.Namespace
	if flag, _ := cmd.Flags().GetString("namespace"); flag != "" {
		namespace = flag
	}

	pool, err := database.NewPool(ctx, database.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	embeddingClient, _, closeProvider, err := buildProvider(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeProvider()

	var fetcher jobs.ObjectFetcher
	if cfg.HasS3() {
		s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			UsePathStyle:    true,
		})
		if err != nil {
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		fetcher = s3Client
	}

	job := jobs.NewIngestionJob(
		service.NewEmbeddingService(embeddingClient),
		repository.NewChunkRepository(pool),
		fetcher,
		jobs.IngestionConfig{
			Namespace: namespace,
			Chunking:  service.ChunkConfig{Window: cfg.ChunkSize, Overlap: cfg.ChunkOverlap},
			BatchSize: cfg.EmbedBatchSize,
		},
	)

	summary, err := job.Run(ctx, sources)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	log.Printf("ingested %d sources, %d documents, %d chunks", summary.Sources, summary.Documents, summary.Chunks)
	return nil
}
