package cecil

import (
	"context"
	"net/http"
	"net/url"
)

// ListDatasets fetches the catalog of datasets available for subscription.
func (c *Client) ListDatasets(ctx context.Context) ([]Dataset, error) {
	return list[Dataset](ctx, c, "/datasets")
}

// GetDataset fetches one dataset.
func (c *Client) GetDataset(ctx context.Context, id string) (*Dataset, error) {
	if err := requireID("get dataset", id); err != nil {
		return nil, err
	}
	var d Dataset
	if err := c.do(ctx, http.MethodGet, "/datasets/"+url.PathEscape(id), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
