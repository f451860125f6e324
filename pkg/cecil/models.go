package cecil

import (
	"errors"
	"fmt"
	"time"
)

// validator is implemented by models that check required fields after decode.
// The transport rejects responses whose models fail validation.
type validator interface {
	validate() error
}

// AOI is an area of interest registered with the platform.
type AOI struct {
	ID       string         `json:"ID"`
	Name     string         `json:"Name"`
	Geometry map[string]any `json:"Geometry"`
	Hectares *float64       `json:"Hectares,omitempty"`
	Created  time.Time      `json:"Created"`
	Archived *time.Time     `json:"Archived,omitempty"`
}

func (a *AOI) validate() error {
	if a.ID == "" {
		return errors.New("AOI record missing ID")
	}
	if a.Name == "" {
		return fmt.Errorf("AOI %s missing Name", a.ID)
	}
	return nil
}

// Dataset is a data product available for subscription.
type Dataset struct {
	ID           string    `json:"ID"`
	Name         string    `json:"Name"`
	ProviderName string    `json:"ProviderName"`
	CRS          string    `json:"CRS"`
	Created      time.Time `json:"Created"`
}

func (d *Dataset) validate() error {
	if d.ID == "" {
		return errors.New("dataset record missing ID")
	}
	if d.Name == "" {
		return fmt.Errorf("dataset %s missing Name", d.ID)
	}
	return nil
}

// SubscriptionStatus is the processing state of a subscription or one of its
// sub-requests.
type SubscriptionStatus string

const (
	StatusProcessing SubscriptionStatus = "Processing"
	StatusCompleted  SubscriptionStatus = "Completed"
	StatusFailed     SubscriptionStatus = "Failed"
)

func (s SubscriptionStatus) valid() bool {
	switch s {
	case StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// SubRequest is one upstream provider request made on behalf of a
// subscription.
type SubRequest struct {
	ExternalID   string             `json:"ExternalID"`
	Description  string             `json:"Description"`
	Status       SubscriptionStatus `json:"Status"`
	ErrorMessage *string            `json:"ErrorMessage,omitempty"`
}

// Subscription links an AOI to a dataset and tracks its processing state.
type Subscription struct {
	ID          string             `json:"ID"`
	AOIID       string             `json:"AOIID"`
	DatasetID   string             `json:"DatasetID"`
	Status      SubscriptionStatus `json:"Status"`
	SubRequests []SubRequest       `json:"SubRequests"`
	Created     time.Time          `json:"Created"`
	Archived    *time.Time         `json:"Archived,omitempty"`
}

func (s *Subscription) validate() error {
	if s.ID == "" {
		return errors.New("subscription record missing ID")
	}
	if s.AOIID == "" || s.DatasetID == "" {
		return fmt.Errorf("subscription %s missing AOIID or DatasetID", s.ID)
	}
	if !s.Status.valid() {
		return fmt.Errorf("subscription %s: unknown status %q", s.ID, s.Status)
	}
	for i := range s.SubRequests {
		if !s.SubRequests[i].Status.valid() {
			return fmt.Errorf("subscription %s: sub-request %d: unknown status %q",
				s.ID, i, s.SubRequests[i].Status)
		}
	}
	return nil
}

// Webhook is a registered callback endpoint notified of platform events.
type Webhook struct {
	ID      string    `json:"ID"`
	URL     string    `json:"URL"`
	Created time.Time `json:"Created"`
}

func (w *Webhook) validate() error {
	if w.ID == "" {
		return errors.New("webhook record missing ID")
	}
	if w.URL == "" {
		return fmt.Errorf("webhook %s missing URL", w.ID)
	}
	return nil
}

// BucketCredentials are scoped credentials for a subscription's bucket.
type BucketCredentials struct {
	AccessKeyID     string `json:"AccessKeyID"`
	SecretAccessKey string `json:"SecretAccessKey"`
	SessionToken    string `json:"SessionToken"`
}

// SubscriptionFile is one data file belonging to a subscription.
type SubscriptionFile struct {
	Key  string `json:"Key"`
	Size int64  `json:"Size"`
}

// SubscriptionFiles is the file listing for a subscription: the bucket
// location, optional scoped credentials, and the files in load order. An
// empty Files list means the batch is resolved by listing Prefix.
type SubscriptionFiles struct {
	SubscriptionID string             `json:"SubscriptionID"`
	Bucket         string             `json:"Bucket"`
	Prefix         string             `json:"Prefix"`
	Region         string             `json:"Region"`
	Credentials    *BucketCredentials `json:"Credentials,omitempty"`
	Files          []SubscriptionFile `json:"Files"`
}

func (f *SubscriptionFiles) validate() error {
	if f.Bucket == "" {
		return errors.New("subscription files record missing Bucket")
	}
	for i := range f.Files {
		if f.Files[i].Key == "" {
			return fmt.Errorf("subscription file %d missing Key", i)
		}
	}
	return nil
}

// records is the list envelope the API wraps collection responses in.
type records[T any] struct {
	Records []T `json:"Records"`
}
