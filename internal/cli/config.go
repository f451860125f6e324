package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cecil-earth/cecil-go/pkg/cecil"
	"github.com/cecil-earth/cecil-go/pkg/logging"
)

// Config holds the CLI configuration, read from a YAML file and overridden
// by CECIL_* environment variables.
type Config struct {
	OrganisationID string `yaml:"organisation_id"`
	APIURL         string `yaml:"api_url"`
}

// loadConfig reads path, or ~/.cecil/config.yaml when path is empty. The
// default file may be absent; an explicit --config file must exist.
func loadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".cecil", "config.yaml")
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case explicit || !errors.Is(err, os.ErrNotExist):
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if v := os.Getenv("CECIL_ORGANISATION_ID"); v != "" {
		cfg.OrganisationID = v
	}
	if v := os.Getenv("CECIL_API_URL"); v != "" {
		cfg.APIURL = v
	}

	return cfg, nil
}

func (c Config) newClient() (*cecil.Client, error) {
	return cecil.NewClient(cecil.Config{
		BaseURL:        c.APIURL,
		OrganisationID: c.OrganisationID,
		Logger:         logging.L(),
	})
}
