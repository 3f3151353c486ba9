package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/SerraVetServices/vet-scheduler/internal/config"
)

// BlobStore guarda arquivos opacos (foto de pet, receita, comprovante).
// O core só conhece a URL devolvida, nunca o conteúdo.
type BlobStore interface {
	Put(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error)
}

type S3Store struct {
	client   *s3.Client
	bucket   string
	endpoint string
}

func NewS3Store(cfg *config.Config) *S3Store {
	client := s3.New(s3.Options{
		Region: cfg.S3Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
		BaseEndpoint: aws.String(cfg.S3Endpoint),
		UsePathStyle: true,
	})

	return &S3Store{
		client:   client,
		bucket:   cfg.S3Bucket,
		endpoint: cfg.S3Endpoint,
	}
}

func (s *S3Store) Put(
	ctx context.Context,
	folder string,
	filename string,
	contentType string,
	body io.Reader,
) (string, error) {

	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), path.Ext(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key), nil
}

var _ BlobStore = (*S3Store)(nil)
