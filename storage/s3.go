package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"boycott-check/config"
)

// maxObjectSize begrenzt, wie viel von einem Katalogobjekt gelesen wird.
const maxObjectSize = 4 << 20

// ObjectGetter ist der Teil des S3-Clients, den wir zum Lesen brauchen.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// NewS3Client erstellt einen S3-Client für den Katalog-Bucket.
// Mit CATALOG_S3_URL wird ein S3-kompatibler Anbieter angesprochen, sonst AWS selbst.
// Ohne statische Zugangsdaten greift die Standard-Credential-Chain.
func NewS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.CatalogS3Region),
	}
	if cfg.CatalogS3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.CatalogS3AccessKey, cfg.CatalogS3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.CatalogS3URL != "" {
			o.BaseEndpoint = aws.String(cfg.CatalogS3URL)
			o.UsePathStyle = true
		}
	}), nil
}

// FetchObject lädt ein Objekt aus S3 vollständig in den Speicher.
func FetchObject(ctx context.Context, client ObjectGetter, bucket, key string) ([]byte, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxObjectSize+1))
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", bucket, key, err)
	}
	if len(data) > maxObjectSize {
		return nil, fmt.Errorf("s3://%s/%s exceeds %d bytes", bucket, key, maxObjectSize)
	}
	return data, nil
}
