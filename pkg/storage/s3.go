package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Payphone-Digital/storefront/pkg/circuit"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Object is an upload request.
type Object struct {
	Key         string
	Body        io.Reader
	Size        int64
	ContentType string
}

// Stored describes an object after a successful upload.
type Stored struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

type Config struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	UsePathStyle  bool
}

// PublicURL is where a stored key can be fetched from.
func (c Config) PublicURL(key string) string {
	if c.PublicBaseURL != "" {
		return strings.TrimRight(c.PublicBaseURL, "/") + "/" + key
	}
	return strings.TrimRight(c.Endpoint, "/") + "/" + c.Bucket + "/" + key
}

type putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ImageStore uploads images to an S3 compatible bucket (AWS or MinIO).
type S3ImageStore struct {
	client  putter
	cfg     Config
	breaker *circuit.Breaker
}

func NewS3ImageStore(ctx context.Context, cfg Config, breaker *circuit.Breaker) (*S3ImageStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newS3ImageStore(client, cfg, breaker), nil
}

func newS3ImageStore(client putter, cfg Config, breaker *circuit.Breaker) *S3ImageStore {
	if breaker == nil {
		breaker = circuit.NewBreaker("storage", circuit.DefaultConfig(), nil)
	}
	return &S3ImageStore{client: client, cfg: cfg, breaker: breaker}
}

func (s *S3ImageStore) Put(ctx context.Context, obj Object) (*Stored, error) {
	err := s.breaker.ExecuteContext(ctx, func(ctx context.Context) error {
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(s.cfg.Bucket),
			Key:           aws.String(obj.Key),
			Body:          obj.Body,
			ContentLength: aws.Int64(obj.Size),
			ContentType:   aws.String(obj.ContentType),
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("put %s: %w", obj.Key, err)
	}

	return &Stored{
		Key:         obj.Key,
		URL:         s.cfg.PublicURL(obj.Key),
		Size:        obj.Size,
		ContentType: obj.ContentType,
	}, nil
}
