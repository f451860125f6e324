package cecil

import (
	"context"
	"net/http"
	"net/url"
)

type createAOIRequest struct {
	Name     string         `json:"Name"`
	Geometry map[string]any `json:"Geometry"`
}

// CreateAOI registers a new area of interest from a GeoJSON-style geometry.
func (c *Client) CreateAOI(ctx context.Context, name string, geometry map[string]any) (*AOI, error) {
	var a AOI
	body := createAOIRequest{Name: name, Geometry: geometry}
	if err := c.do(ctx, http.MethodPost, "/aois", body, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAOI fetches one AOI.
func (c *Client) GetAOI(ctx context.Context, id string) (*AOI, error) {
	if err := requireID("get AOI", id); err != nil {
		return nil, err
	}
	var a AOI
	if err := c.do(ctx, http.MethodGet, "/aois/"+url.PathEscape(id), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAOIs fetches all AOIs for the organisation.
func (c *Client) ListAOIs(ctx context.Context) ([]AOI, error) {
	return list[AOI](ctx, c, "/aois")
}

// ArchiveAOI archives an AOI and returns its updated state. Archived AOIs
// keep their data but accept no new subscriptions.
func (c *Client) ArchiveAOI(ctx context.Context, id string) (*AOI, error) {
	if err := requireID("archive AOI", id); err != nil {
		return nil, err
	}
	var a AOI
	if err := c.do(ctx, http.MethodPost, "/aois/"+url.PathEscape(id)+"/archive", nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// RestoreAOI restores an archived AOI and returns its updated state.
func (c *Client) RestoreAOI(ctx context.Context, id string) (*AOI, error) {
	if err := requireID("restore AOI", id); err != nil {
		return nil, err
	}
	var a AOI
	if err := c.do(ctx, http.MethodPost, "/aois/"+url.PathEscape(id)+"/restore", nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
