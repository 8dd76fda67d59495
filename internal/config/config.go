package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
)

// .env keys understood by the credential store.
const (
	keyAccessToken = "LG_THINQ_ACCESS_TOKEN"
	keyClientID    = "LG_THINQ_CLIENT_ID"
	keyCountry     = "LG_THINQ_COUNTRY"
	keySecret      = "SESSION_SECRET"
)

const defaultCountry = "US"

// ErrMissingCredentials is returned by Load when the access token or client id
// is absent. The handler turns it into the configuration-prompt state instead
// of a hard failure.
var ErrMissingCredentials = errors.New("missing " + keyAccessToken + " or " + keyClientID + " in your .env file")

// Config holds the ThinQ API credentials for one request.
type Config struct {
	AccessToken string
	ClientID    string
	Country     string
}

// Store is the durable flat key-value storage for ThinQ credentials.
// Load is all-or-nothing: either a complete Config or a single error.
type Store interface {
	Load() (Config, error)
	Save(cfg Config) error
}

// FileStore persists credentials to a .env file. Each Load re-reads the file
// so edits (manual or via Save) take effect on the next request.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	if path == "" {
		path = ".env"
	}
	return &FileStore{path: path}
}

// Load reads the .env file and validates required keys. Country falls back to
// "US" when unset. A missing file is reported the same way as missing keys.
func (s *FileStore) Load() (Config, error) {
	values, err := godotenv.Read(s.path)
	if err != nil {
		return Config{}, ErrMissingCredentials
	}
	cfg := Config{
		AccessToken: strings.TrimSpace(values[keyAccessToken]),
		ClientID:    strings.TrimSpace(values[keyClientID]),
		Country:     strings.TrimSpace(values[keyCountry]),
	}
	if cfg.Country == "" {
		cfg.Country = defaultCountry
	}
	if cfg.AccessToken == "" || cfg.ClientID == "" {
		return Config{}, ErrMissingCredentials
	}
	return cfg, nil
}

// Save overwrites the whole file with the provided credentials, carrying the
// optional session secret forward so saving credentials never drops it.
func (s *FileStore) Save(cfg Config) error {
	country := strings.TrimSpace(cfg.Country)
	if country == "" {
		country = defaultCountry
	}
	values := map[string]string{
		keyAccessToken: strings.TrimSpace(cfg.AccessToken),
		keyClientID:    strings.TrimSpace(cfg.ClientID),
		keyCountry:     country,
	}
	if existing, err := godotenv.Read(s.path); err == nil {
		if secret := strings.TrimSpace(existing[keySecret]); secret != "" {
			values[keySecret] = secret
		}
	}
	return godotenv.Write(values, s.path)
}
