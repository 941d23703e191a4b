// Package s3 implements storage backed by Amazon S3 (or S3-compatible
// services). Each backend instance is bound to one bucket.
package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/debatelab/speakerkit/errors"
	"github.com/debatelab/speakerkit/logger"
	"github.com/debatelab/speakerkit/storage"
)

func init() {
	storage.RegisterFactory(storage.SchemeS3, func(ctx context.Context, loc storage.Location, cfg storage.Config, _ *logger.Logger) (storage.Storage, error) {
		if loc.Bucket == "" {
			return nil, errors.MissingField("bucket")
		}
		return NewStorage(ctx, loc.Bucket, cfg)
	})
}

// Storage implements storage.Storage against one S3 bucket.
type Storage struct {
	client *awss3.Client
	bucket string
}

// NewStorage creates an S3 storage client for bucket from the given config.
// Credentials fall back to the ambient AWS config chain when not set.
func NewStorage(ctx context.Context, bucket string, cfg storage.Config) (*Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Internal(fmt.Errorf("load aws config: %w", err))
	}

	var s3Opts []func(*awss3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *awss3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	} else if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *awss3.Options) {
			o.UsePathStyle = true
		})
	}

	client := awss3.NewFromConfig(awsCfg, s3Opts...)
	return &Storage{client: client, bucket: bucket}, nil
}

// Upload writes data from reader to S3.
func (s *Storage) Upload(ctx context.Context, path string, reader io.Reader) error {
	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
		Body:   reader,
	})
	if err != nil {
		return errors.StoreFailed("s3://"+s.bucket+"/"+path, err)
	}
	return nil
}

// Download returns a reader for the S3 object at the given path.
func (s *Storage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return nil, errors.FetchFailed("s3://"+s.bucket+"/"+path, err)
	}
	return out.Body, nil
}

// Delete removes an S3 object. Returns nil if the object does not exist.
func (s *Storage) Delete(ctx context.Context, path string) error {
	_, err := s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return errors.StoreFailed("s3://"+s.bucket+"/"+path, err)
	}
	return nil
}

// Exists checks whether an S3 object exists.
func (s *Storage) Exists(ctx context.Context, path string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return false, nil
	}
	return true, nil
}

// List returns metadata for all objects whose key starts with prefix.
func (s *Storage) List(ctx context.Context, prefix string) ([]storage.FileInfo, error) {
	input := &awss3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	}

	var files []storage.FileInfo
	for {
		out, err := s.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, errors.FetchFailed("s3://"+s.bucket+"/"+prefix, err)
		}
		for _, obj := range out.Contents {
			fi := storage.FileInfo{
				Path: aws.ToString(obj.Key),
				Size: aws.ToInt64(obj.Size),
			}
			if obj.LastModified != nil {
				fi.LastModified = *obj.LastModified
			}
			files = append(files, fi)
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		input.ContinuationToken = out.NextContinuationToken
	}
	return files, nil
}

// compile-time check
var _ storage.Storage = (*Storage)(nil)
