package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"time"

	"produce-backend/internal/config"
	"produce-backend/internal/export"
	"produce-backend/internal/timeutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the part of the S3 client the archive needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ArchiveService copies generated exports to an S3-compatible bucket.
// A nil *ArchiveService archives nothing.
type ArchiveService struct {
	client ObjectPutter
	bucket string
	prefix string
}

func NewArchiveService(client ObjectPutter, bucket, prefix string) *ArchiveService {
	return &ArchiveService{client: client, bucket: bucket, prefix: prefix}
}

// NewArchiveServiceFromConfig builds the S3 client. Returns nil when archiving is disabled.
func NewArchiveServiceFromConfig(ctx context.Context, cfg *config.Config) (*ArchiveService, error) {
	a := cfg.Archive
	if !a.Enabled {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			a.AccessKey,
			a.SecretKey,
			"",
		)),
		awsconfig.WithRegion(a.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("configure archive client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if a.Endpoint != "" {
			o.BaseEndpoint = aws.String(a.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewArchiveService(client, a.Bucket, a.Prefix), nil
}

// Key is <prefix>/<kind>/<YYYY/MM/DD>/<filename>
func (s *ArchiveService) Key(kind string, at time.Time, filename string) string {
	return path.Join(s.prefix, kind, at.In(timeutil.Local).Format("2006/01/02"), filename)
}

// Store uploads f and returns its object key
func (s *ArchiveService) Store(ctx context.Context, kind string, f *export.File) (string, error) {
	if s == nil {
		return "", nil
	}
	key := s.Key(kind, timeutil.Now(), f.Name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(f.Data),
		ContentType: aws.String(f.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("archive %s: %w", key, err)
	}

	log.Printf("[Archive] Stored %s (%d bytes)", key, len(f.Data))
	return key, nil
}
