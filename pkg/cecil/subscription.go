package cecil

import (
	"context"
	"net/http"
	"net/url"
)

type createSubscriptionRequest struct {
	AOIID     string `json:"AOIID"`
	DatasetID string `json:"DatasetID"`
}

// CreateSubscription subscribes an AOI to a dataset. The subscription starts
// in Processing; its data files appear once it reaches Completed.
func (c *Client) CreateSubscription(ctx context.Context, aoiID, datasetID string) (*Subscription, error) {
	var s Subscription
	body := createSubscriptionRequest{AOIID: aoiID, DatasetID: datasetID}
	if err := c.do(ctx, http.MethodPost, "/subscriptions", body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSubscription fetches one subscription.
func (c *Client) GetSubscription(ctx context.Context, id string) (*Subscription, error) {
	if err := requireID("get subscription", id); err != nil {
		return nil, err
	}
	var s Subscription
	if err := c.do(ctx, http.MethodGet, "/subscriptions/"+url.PathEscape(id), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSubscriptions fetches all subscriptions for the organisation.
func (c *Client) ListSubscriptions(ctx context.Context) ([]Subscription, error) {
	return list[Subscription](ctx, c, "/subscriptions")
}

// ArchiveSubscription archives a subscription and returns its updated state.
func (c *Client) ArchiveSubscription(ctx context.Context, id string) (*Subscription, error) {
	if err := requireID("archive subscription", id); err != nil {
		return nil, err
	}
	var s Subscription
	if err := c.do(ctx, http.MethodPost, "/subscriptions/"+url.PathEscape(id)+"/archive", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// RestoreSubscription restores an archived subscription and returns its
// updated state.
func (c *Client) RestoreSubscription(ctx context.Context, id string) (*Subscription, error) {
	if err := requireID("restore subscription", id); err != nil {
		return nil, err
	}
	var s Subscription
	if err := c.do(ctx, http.MethodPost, "/subscriptions/"+url.PathEscape(id)+"/restore", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSubscriptionFiles fetches the bucket file listing for a subscription,
// including scoped credentials when the API issues them.
func (c *Client) GetSubscriptionFiles(ctx context.Context, id string) (*SubscriptionFiles, error) {
	if err := requireID("get subscription files", id); err != nil {
		return nil, err
	}
	var f SubscriptionFiles
	if err := c.do(ctx, http.MethodGet, "/subscriptions/"+url.PathEscape(id)+"/files", nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
