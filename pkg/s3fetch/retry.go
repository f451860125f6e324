package s3fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/cenkalti/backoff/v4"

	"github.com/cecil-earth/cecil-go/internal/logctx"
)

// FetchError reports the failure of one fragment after the retry policy has
// been exhausted or a permanent error was hit.
type FetchError struct {
	Bucket    string
	Key       string
	Attempts  int
	Permanent bool
	Err       error
}

func (e *FetchError) Error() string {
	if e.Permanent {
		return fmt.Sprintf("fetch s3://%s/%s: permanent failure after %d attempt(s): %v",
			e.Bucket, e.Key, e.Attempts, e.Err)
	}
	return fmt.Sprintf("fetch s3://%s/%s: giving up after %d attempt(s): %v",
		e.Bucket, e.Key, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// permanentCodes are S3 error codes that retrying cannot fix.
var permanentCodes = map[string]bool{
	"NoSuchKey":             true,
	"NoSuchBucket":          true,
	"NotFound":              true,
	"AccessDenied":          true,
	"InvalidAccessKeyId":    true,
	"SignatureDoesNotMatch": true,
	"ExpiredToken":          true,
}

// isPermanent reports whether err is a terminal bucket failure. Missing
// objects and rejected credentials do not heal on retry.
func isPermanent(err error) bool {
	var noKey *types.NoSuchKey
	var noBucket *types.NoSuchBucket
	var notFound *types.NotFound
	if errors.As(err, &noKey) || errors.As(err, &noBucket) || errors.As(err, &notFound) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return permanentCodes[apiErr.ErrorCode()]
	}

	return false
}

// fetchWithRetry downloads one object, retrying transient failures with
// exponential backoff. It returns the object bytes and the number of
// download attempts made.
func (l *Loader) fetchWithRetry(ctx context.Context, ref FileRef) ([]byte, int, error) {
	log := logctx.FromContext(ctx)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = l.cfg.InitialBackoff
	policy.Multiplier = l.cfg.BackoffMultiplier
	policy.MaxElapsedTime = 0 // bounded by attempts, not wall time

	attempts := 0
	var data []byte

	op := func() error {
		attempts++
		b, err := l.store.Download(ctx, ref.Bucket, ref.Key)
		if err != nil {
			if isPermanent(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		data = b
		return nil
	}

	notify := func(err error, wait time.Duration) {
		log.Debug().
			Str("key", ref.Key).
			Int("attempt", attempts).
			Dur("backoff", wait).
			Err(err).
			Msg("fragment fetch retry")
	}

	err := backoff.RetryNotify(op,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(l.cfg.MaxAttempts-1)), ctx),
		notify)
	if err != nil {
		// Retry unwraps backoff.Permanent before returning, so the cause
		// has to be re-classified here.
		return nil, attempts, &FetchError{
			Bucket:    ref.Bucket,
			Key:       ref.Key,
			Attempts:  attempts,
			Permanent: isPermanent(err),
			Err:       err,
		}
	}

	return data, attempts, nil
}
