// Package portalconfig loads the site configuration: server ports, site
// content and the resource files behind the rentals workflow.
package portalconfig

import (
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

// Artist is one roster entry shown on the portal page.
type Artist struct {
	Name string `yaml:"name"`
	Bio  string `yaml:"bio"`
}

// Config is the full server configuration. Every field has a usable default
// so the server runs without a config file in development.
type Config struct {
	Development bool   `yaml:"development"`
	PortalPort  string `yaml:"portal_port"`
	PortalURL   string `yaml:"portal_url"`
	OpsPort     string `yaml:"ops_port"`

	Site struct {
		Name    string   `yaml:"name"`
		Tagline string   `yaml:"tagline"`
		Roster  []Artist `yaml:"roster"`
	} `yaml:"site"`

	Rentals struct {
		ContactEmail     string `yaml:"contact_email"`
		OwnerName        string `yaml:"owner_name"`
		EquipmentCSV     string `yaml:"equipment_csv"`
		UnavailableCSV   string `yaml:"unavailable_csv"`
		ContractTemplate string `yaml:"contract_template"`
		SessionMinutes   int    `yaml:"session_minutes"`
	} `yaml:"rentals"`

	Audio struct {
		TracksFile string `yaml:"tracks_file"`
	} `yaml:"audio"`

	About struct {
		ContentFile string `yaml:"content_file"`
	} `yaml:"about"`
}

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	cfg.PortalPort = "8020"
	cfg.OpsPort = "8021"
	cfg.Site.Name = "Space Hash Records"
	cfg.Site.Tagline = "Pushing boundaries since 2023"
	cfg.Rentals.ContactEmail = "spacehashes@gmail.com"
	cfg.Rentals.OwnerName = "Donovan Jenkins"
	cfg.Rentals.EquipmentCSV = "resources/equipment.csv"
	cfg.Rentals.UnavailableCSV = "resources/unavailable.csv"
	cfg.Rentals.ContractTemplate = "resources/rental_contract.pdf"
	cfg.Rentals.SessionMinutes = 10
	cfg.Audio.TracksFile = "resources/tracks.txt"
	cfg.About.ContentFile = "resources/about.md"
	return cfg
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config file %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parsing config file")
	}
	return cfg, nil
}

// SessionTTL is how long rental sessions and generated contract sets stay in
// the cache without activity.
func (c Config) SessionTTL() time.Duration {
	minutes := c.Rentals.SessionMinutes
	if minutes <= 0 {
		minutes = 10
	}
	return time.Duration(minutes) * time.Minute
}
