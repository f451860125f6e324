package cecil

import (
	"context"
	"fmt"
	"net/http"
	"testing"
)

func TestListDatasets(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/datasets" {
			t.Errorf("got %s %s, want GET /datasets", r.Method, r.URL.Path)
		}
		fmt.Fprint(w, `{
			"Records": [
				{"ID": "ds-1", "Name": "canopy height", "ProviderName": "chloris", "CRS": "EPSG:4326", "Created": "2024-01-01T00:00:00Z"},
				{"ID": "ds-2", "Name": "biomass", "ProviderName": "chloris", "CRS": "EPSG:3857", "Created": "2024-01-02T00:00:00Z"}
			]
		}`)
	}))

	datasets, err := c.ListDatasets(context.Background())
	if err != nil {
		t.Fatalf("ListDatasets: %v", err)
	}

	if len(datasets) != 2 {
		t.Fatalf("len = %d, want 2", len(datasets))
	}
	if datasets[0].ID != "ds-1" || datasets[0].CRS != "EPSG:4326" {
		t.Errorf("got (%s, %s), want (ds-1, EPSG:4326)", datasets[0].ID, datasets[0].CRS)
	}
}

func TestGetDataset(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/datasets/ds-1" {
			t.Errorf("got %s %s, want GET /datasets/ds-1", r.Method, r.URL.Path)
		}
		fmt.Fprint(w, `{"ID": "ds-1", "Name": "canopy height", "ProviderName": "chloris", "CRS": "EPSG:4326", "Created": "2024-01-01T00:00:00Z"}`)
	}))

	ds, err := c.GetDataset(context.Background(), "ds-1")
	if err != nil {
		t.Fatalf("GetDataset: %v", err)
	}
	if ds.Name != "canopy height" || ds.ProviderName != "chloris" {
		t.Errorf("got (%q, %q), want (canopy height, chloris)", ds.Name, ds.ProviderName)
	}
}
