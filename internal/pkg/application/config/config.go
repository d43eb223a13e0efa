package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Site       Site       `yaml:"site"`
	Sword      Sword      `yaml:"sword"`
	Grobid     Grobid     `yaml:"grobid"`
	AssetStore AssetStore `yaml:"assetstore"`
	Seed       Seed       `yaml:"seed"`
}

type Site struct {
	Name           string `yaml:"name"`
	BaseURL        string `yaml:"baseURL"`
	HandlePrefix   string `yaml:"handlePrefix"`
	HandleResolver string `yaml:"handleResolver"`
}

type Sword struct {
	Enabled            bool              `yaml:"enabled"`
	MaxUploadSize      int64             `yaml:"maxUploadSize"`
	Accepts            []string          `yaml:"accepts"`
	AcceptPackaging    []AcceptPackaging `yaml:"acceptPackaging"`
	Mediation          bool              `yaml:"mediation"`
	Treatment          string            `yaml:"treatment"`
	DefaultPolicy      string            `yaml:"defaultPolicy"`
	AllowFilenameTitle bool              `yaml:"allowFilenameTitle"`
}

type AcceptPackaging struct {
	Format  string  `yaml:"format"`
	Quality float64 `yaml:"q"`
}

type Grobid struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
}

type AssetStore struct {
	Dir string `yaml:"dir"`
}

type Seed struct {
	Administrators []Person    `yaml:"administrators"`
	EPersons       []Person    `yaml:"epersons"`
	Communities    []Community `yaml:"communities"`
}

type Person struct {
	Email     string `yaml:"email"`
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
	Password  string `yaml:"password"`
}

type Community struct {
	Name           string       `yaml:"name"`
	Description    string       `yaml:"description"`
	Collections    []Collection `yaml:"collections"`
	Subcommunities []Community  `yaml:"subcommunities"`
}

type Collection struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Rights      string   `yaml:"rights"`
	Submitters  []string `yaml:"submitters"`
	Reviewers   []string `yaml:"reviewers"`
}

func Default() *Config {
	return &Config{
		Site: Site{
			Name:           "Diwise Repository",
			BaseURL:        "http://localhost:8880",
			HandlePrefix:   "123456789",
			HandleResolver: "http://hdl.handle.net/",
		},
		Sword: Sword{
			Enabled:       true,
			MaxUploadSize: 100 * 1024 * 1024,
			Accepts:       []string{"application/zip", "application/pdf"},
			AcceptPackaging: []AcceptPackaging{
				{Format: "http://purl.org/net/sword-types/METSDSpaceSIP", Quality: 1.0},
			},
			Mediation:          true,
			Treatment:          "Deposited items will be stored as a bitstream in a new item.",
			DefaultPolicy:      "",
			AllowFilenameTitle: true,
		},
		Grobid: Grobid{
			Enabled: false,
			URL:     "http://grobid:8070",
		},
	}
}

// Load reads a yaml configuration on top of the defaults.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if err = yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return cfg, nil
}

// LoadFile loads the configuration at path. A missing file gives the defaults.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}
