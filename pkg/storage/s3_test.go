package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Payphone-Digital/storefront/pkg/circuit"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestConfig_PublicURL(t *testing.T) {
	assert.Equal(t, "http://minio:9000/shop/images/a.png",
		Config{Endpoint: "http://minio:9000/", Bucket: "shop"}.PublicURL("images/a.png"))
	assert.Equal(t, "https://cdn.shop.com/images/a.png",
		Config{Endpoint: "http://minio:9000", Bucket: "shop", PublicBaseURL: "https://cdn.shop.com/"}.PublicURL("images/a.png"))
}

func TestS3ImageStore_Put(t *testing.T) {
	fp := &fakePutter{}
	store := newS3ImageStore(fp, Config{Endpoint: "http://minio:9000", Bucket: "shop"}, nil)

	got, err := store.Put(context.Background(), Object{
		Key:         "images/2026/01/02/x.png",
		Body:        strings.NewReader("png"),
		Size:        3,
		ContentType: "image/png",
	})
	require.NoError(t, err)

	assert.Equal(t, "http://minio:9000/shop/images/2026/01/02/x.png", got.URL)
	assert.Equal(t, "shop", aws.ToString(fp.input.Bucket))
	assert.Equal(t, "image/png", aws.ToString(fp.input.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(fp.input.ContentLength))
}

func TestS3ImageStore_BreakerOpens(t *testing.T) {
	fp := &fakePutter{err: errors.New("no such host")}
	breaker := circuit.NewBreaker("storage", circuit.Config{Threshold: 1, Timeout: time.Hour}, nil)
	store := newS3ImageStore(fp, Config{Bucket: "shop"}, breaker)

	_, err := store.Put(context.Background(), Object{Key: "k", Body: strings.NewReader("")})
	require.Error(t, err)

	_, err = store.Put(context.Background(), Object{Key: "k", Body: strings.NewReader("")})
	assert.True(t, circuit.IsRejected(err))
}
