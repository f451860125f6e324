// Package cecil is the Go client SDK for the Cecil platform: AOI, dataset,
// subscription, and webhook management over the HTTP API, plus loading a
// subscription's bucket files into an in-memory dataframe.
//
// Clients are constructed explicitly and passed around; there is no
// package-level singleton:
//
//	client, err := cecil.NewClient(cecil.Config{OrganisationID: orgID})
//	if err != nil {
//		return err
//	}
//	df, err := client.LoadDataframe(ctx, subscriptionID)
package cecil

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cecil-earth/cecil-go/pkg/s3fetch"
)

// Version is the SDK version reported in the User-Agent header.
const Version = "0.4.0"

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.cecil.earth/v0"

const (
	headerOrganisationID = "cecil-organisation-id"
	headerRequestID      = "X-Request-Id"

	defaultHTTPTimeout = 3 * time.Second
)

// Config configures a Client. OrganisationID is required; everything else
// has a default.
type Config struct {
	// BaseURL is the API endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// OrganisationID is sent with every request as the
	// cecil-organisation-id header. Required.
	OrganisationID string

	// HTTPClient overrides the default client (3 second timeout).
	HTTPClient *http.Client

	// Logger receives request/response debug events and loader progress.
	// The SDK is silent when nil.
	Logger *zerolog.Logger

	// UserAgent overrides the default "cecil-go/<version>".
	UserAgent string
}

// ConfigFromEnv builds a Config from the CECIL_ORGANISATION_ID and
// CECIL_API_URL environment variables.
func ConfigFromEnv() Config {
	return Config{
		BaseURL:        os.Getenv("CECIL_API_URL"),
		OrganisationID: os.Getenv("CECIL_ORGANISATION_ID"),
	}
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if c.UserAgent == "" {
		c.UserAgent = "cecil-go/" + Version
	}
	return c
}

// Client calls the Cecil API on behalf of one organisation. Safe for
// concurrent use.
type Client struct {
	baseURL        string
	organisationID string
	userAgent      string
	httpc          *http.Client
	log            zerolog.Logger

	// newBucketClient builds the object store for a subscription's files.
	// Swapped out by tests.
	newBucketClient func(ctx context.Context, files *SubscriptionFiles) (s3fetch.ObjectStore, error)
}

// NewClient creates a client for the given config.
func NewClient(cfg Config) (*Client, error) {
	if cfg.OrganisationID == "" {
		return nil, errors.New("organisation ID is required: set Config.OrganisationID or CECIL_ORGANISATION_ID")
	}
	cfg = cfg.withDefaults()

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	return &Client{
		baseURL:         cfg.BaseURL,
		organisationID:  cfg.OrganisationID,
		userAgent:       cfg.UserAgent,
		httpc:           cfg.HTTPClient,
		log:             log,
		newBucketClient: defaultBucketClient,
	}, nil
}
