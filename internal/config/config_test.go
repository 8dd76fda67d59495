package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeEnv(t *testing.T, content string) *FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	return NewFileStore(path)
}

func TestLoad_CompleteConfig(t *testing.T) {
	store := writeEnv(t, "LG_THINQ_ACCESS_TOKEN=tok\nLG_THINQ_CLIENT_ID=cid\nLG_THINQ_COUNTRY=DE\n")
	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AccessToken != "tok" || cfg.ClientID != "cid" || cfg.Country != "DE" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoad_CountryDefaultsToUS(t *testing.T) {
	store := writeEnv(t, "LG_THINQ_ACCESS_TOKEN=tok\nLG_THINQ_CLIENT_ID=cid\n")
	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Country != "US" {
		t.Fatalf("country = %q, want US", cfg.Country)
	}
}

func TestLoad_MissingCredentialsIsAllOrNothing(t *testing.T) {
	cases := []string{
		"",
		"LG_THINQ_ACCESS_TOKEN=tok\n",
		"LG_THINQ_CLIENT_ID=cid\n",
		"LG_THINQ_ACCESS_TOKEN=\nLG_THINQ_CLIENT_ID=cid\n",
	}
	for _, content := range cases {
		store := writeEnv(t, content)
		if _, err := store.Load(); !errors.Is(err, ErrMissingCredentials) {
			t.Fatalf("content %q: expected ErrMissingCredentials, got %v", content, err)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.env"))
	if _, err := store.Load(); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestSave_OverwritesAndPreservesSecret(t *testing.T) {
	store := writeEnv(t, "LG_THINQ_ACCESS_TOKEN=old\nLG_THINQ_CLIENT_ID=old\nSESSION_SECRET=keepme\n")

	if err := store.Save(Config{AccessToken: " new-tok ", ClientID: "new-cid", Country: ""}); err != nil {
		t.Fatalf("save: %v", err)
	}

	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cfg.AccessToken != "new-tok" || cfg.ClientID != "new-cid" || cfg.Country != "US" {
		t.Fatalf("unexpected reloaded config: %+v", cfg)
	}

	raw, err := os.ReadFile(store.path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(raw), "SESSION_SECRET") {
		t.Fatalf("session secret dropped:\n%s", raw)
	}
}

func TestSave_ToFreshFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), ".env"))
	if err := store.Save(Config{AccessToken: "tok", ClientID: "cid", Country: "us"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Country != "us" {
		t.Fatalf("country = %q", cfg.Country)
	}
}
