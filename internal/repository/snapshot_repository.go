package repository

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"shopease/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// SnapshotSource opens a serialised product catalogue: a JSON array of
// products, gzip-compressed when the name ends in ".gz".
type SnapshotSource interface {
	// Open returns a reader over the raw snapshot bytes.
	Open(ctx context.Context) (io.ReadCloser, error)

	// Name identifies the snapshot for logging and compression detection.
	Name() string
}

// fileSource reads a snapshot from the local file system.
type fileSource struct {
	path string
}

// NewFileSource creates a snapshot source backed by a local file.
func NewFileSource(path string) SnapshotSource {
	return &fileSource{path: path}
}

func (s *fileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file %s: %w", s.path, err)
	}
	return file, nil
}

func (s *fileSource) Name() string {
	return s.path
}

// s3Source reads a snapshot object from AWS S3.
type s3Source struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Source creates a snapshot source backed by an S3 object.
func NewS3Source(ctx context.Context, bucket, region, key string, logger zerolog.Logger) (SnapshotSource, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Str("key", key).
		Msg("S3 snapshot source initialised")

	return &s3Source{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		key:    key,
	}, nil
}

func (s *s3Source) Open(ctx context.Context) (io.ReadCloser, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", s.bucket, s.key, err)
	}
	return result.Body, nil
}

func (s *s3Source) Name() string {
	return "s3://" + s.bucket + "/" + s.key
}

// snapshotRepository implements ProductRepository over a SnapshotSource.
// Every call re-reads the snapshot; the catalogue store holds the result.
type snapshotRepository struct {
	source SnapshotSource
	logger zerolog.Logger
}

// NewSnapshotRepository creates a product repository that reads a snapshot.
func NewSnapshotRepository(source SnapshotSource, logger zerolog.Logger) ProductRepository {
	return &snapshotRepository{
		source: source,
		logger: logger.With().Str("repository", "snapshot-catalog").Str("snapshot", source.Name()).Logger(),
	}
}

// GetAll retrieves the full product collection from the snapshot.
func (r *snapshotRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	r.logger.Info().Msg("loading catalogue snapshot")

	body, err := r.source.Open(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to open catalogue snapshot")
		return nil, err
	}
	defer body.Close()

	var reader io.Reader = body
	if strings.HasSuffix(r.source.Name(), ".gz") {
		gzipReader, err := gzip.NewReader(body)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to create gzip reader")
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", r.source.Name(), err)
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	var products []model.Product
	if err := json.NewDecoder(reader).Decode(&products); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode catalogue snapshot")
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", r.source.Name(), err)
	}

	r.logger.Info().Int("count", len(products)).Msg("catalogue snapshot loaded")

	return products, nil
}

// GetByID retrieves a single product from the snapshot.
func (r *snapshotRepository) GetByID(ctx context.Context, id model.ProductID) (*model.Product, error) {
	products, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}

	r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
	return nil, nil
}

// WriteSnapshot serialises products to path in the format read by the file
// source, gzip-compressing when path ends in ".gz".
func WriteSnapshot(path string, products []model.Product) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close snapshot %s: %w", path, closeErr)
		}
	}()

	var w io.Writer = file
	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(file)
		defer func() {
			if closeErr := gz.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("failed to finish gzip stream for %s: %w", path, closeErr)
			}
		}()
		w = gz
	}

	if products == nil {
		products = []model.Product{}
	}
	if err := json.NewEncoder(w).Encode(products); err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", path, err)
	}

	return nil
}
