package cecil

import (
	"context"
	"fmt"

	"github.com/cecil-earth/cecil-go/internal/logctx"
	"github.com/cecil-earth/cecil-go/pkg/dataframe"
	"github.com/cecil-earth/cecil-go/pkg/s3fetch"
)

// LoadDataframe fetches all data files for a subscription and concatenates
// them into a single frame with the default loader config.
func (c *Client) LoadDataframe(ctx context.Context, subscriptionID string) (*dataframe.DataFrame, error) {
	return c.LoadDataframeWithConfig(ctx, subscriptionID, s3fetch.DefaultLoaderConfig())
}

// LoadDataframeWithConfig is LoadDataframe with explicit loader settings.
//
// The file listing comes from the API; the batch is the listing's explicit
// Files in order or, when that list is empty, every object under the
// listing's Prefix in key order. Bucket access uses the listing's scoped
// credentials when present, the default AWS chain otherwise.
func (c *Client) LoadDataframeWithConfig(ctx context.Context, subscriptionID string, cfg s3fetch.LoaderConfig) (*dataframe.DataFrame, error) {
	if err := requireID("load dataframe", subscriptionID); err != nil {
		return nil, err
	}

	files, err := c.GetSubscriptionFiles(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	store, err := c.newBucketClient(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("create bucket client: %w", err)
	}

	refs, err := resolveRefs(ctx, store, files)
	if err != nil {
		return nil, err
	}

	log := c.log.With().Str("subscription_id", subscriptionID).Logger()
	ctx = logctx.WithLogger(ctx, log)

	df, err := s3fetch.NewLoader(store, cfg).Load(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("load dataframe for subscription %s: %w", subscriptionID, err)
	}
	return df, nil
}

// resolveRefs turns a file listing into the ordered batch to load.
func resolveRefs(ctx context.Context, store s3fetch.ObjectStore, files *SubscriptionFiles) ([]s3fetch.FileRef, error) {
	if len(files.Files) > 0 {
		refs := make([]s3fetch.FileRef, len(files.Files))
		for i, f := range files.Files {
			refs[i] = s3fetch.FileRef{Bucket: files.Bucket, Key: f.Key}
		}
		return refs, nil
	}

	refs, err := store.List(ctx, files.Bucket, files.Prefix)
	if err != nil {
		return nil, fmt.Errorf("list subscription files: %w", err)
	}
	return refs, nil
}

// defaultBucketClient builds the real S3 store for a file listing.
func defaultBucketClient(ctx context.Context, files *SubscriptionFiles) (s3fetch.ObjectStore, error) {
	if files.Credentials != nil {
		creds := s3fetch.Credentials{
			AccessKeyID:     files.Credentials.AccessKeyID,
			SecretAccessKey: files.Credentials.SecretAccessKey,
			SessionToken:    files.Credentials.SessionToken,
		}
		return s3fetch.NewClientWithCredentials(ctx, creds, files.Region)
	}
	return s3fetch.NewClient(ctx)
}
