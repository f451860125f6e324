// Package s3fetch provides the bucket store client and the dataframe loader:
// it fetches an ordered batch of subscription data files from object storage
// and concatenates them into a single in-memory frame.
package s3fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// FileRef identifies one file in a remote bucket.
type FileRef struct {
	Bucket string
	Key    string
}

func (r FileRef) String() string {
	return "s3://" + r.Bucket + "/" + r.Key
}

// Credentials are scoped bucket credentials issued by the API for one
// subscription's files.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// ObjectStore is the bucket surface the loader needs. *Client implements it
// against S3; tests substitute in-memory fakes.
type ObjectStore interface {
	// Download fetches the full content of an object.
	Download(ctx context.Context, bucket, key string) ([]byte, error)

	// List returns refs for every object under the prefix, in key order.
	List(ctx context.Context, bucket, prefix string) ([]FileRef, error)
}

// Client provides S3 operations for fetching subscription data files.
type Client struct {
	s3Client   *s3.Client
	downloader *manager.Downloader
}

// NewClient creates a client using the default AWS configuration chain.
func NewClient(ctx context.Context) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewClientWithConfig(cfg), nil
}

// NewClientWithConfig creates a client with a custom AWS config.
func NewClientWithConfig(cfg aws.Config) *Client {
	s3Client := s3.NewFromConfig(cfg)
	return &Client{
		s3Client:   s3Client,
		downloader: manager.NewDownloader(s3Client),
	}
}

// NewClientWithCredentials creates a client authenticated with the scoped
// credentials the API issues for a subscription's bucket.
func NewClientWithCredentials(ctx context.Context, creds Credentials, region string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken)),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewClientWithConfig(cfg), nil
}

// Download fetches an object into memory using the download manager's
// parallel range requests.
func (c *Client) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	buf := manager.NewWriteAtBuffer(nil)
	_, err := c.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("download s3://%s/%s: %w", bucket, key, err)
	}
	return buf.Bytes(), nil
}

// List returns all objects under the prefix. S3 lists keys in lexicographic
// order, which fixes the batch order for loads resolved by prefix.
func (c *Client) List(ctx context.Context, bucket, prefix string) ([]FileRef, error) {
	var refs []FileRef

	paginator := s3.NewListObjectsV2Paginator(c.s3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list s3://%s/%s: %w", bucket, prefix, err)
		}
		for _, obj := range page.Contents {
			refs = append(refs, FileRef{Bucket: bucket, Key: aws.ToString(obj.Key)})
		}
	}

	return refs, nil
}

// ParseS3URI parses an S3 URI (s3://bucket/key) into bucket and key components.
func ParseS3URI(uri string) (bucket, key string, err error) {
	if !strings.HasPrefix(uri, "s3://") {
		return "", "", errors.New("invalid S3 URI: must start with s3://")
	}

	path := strings.TrimPrefix(uri, "s3://")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) < 1 || parts[0] == "" {
		return "", "", errors.New("invalid S3 URI: missing bucket name")
	}

	bucket = parts[0]
	if len(parts) == 2 {
		key = parts[1]
	}

	return bucket, key, nil
}
