package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.TelegramAPIToken != "token" {
		t.Errorf("expected telegram token to be loaded, got %q", cfg.TelegramAPIToken)
	}
	if cfg.Gemini.APIKey != "gemini-key" {
		t.Errorf("expected gemini key to be loaded, got %q", cfg.Gemini.APIKey)
	}
	if cfg.Storage.Driver != DriverFile {
		t.Errorf("expected default driver %q, got %q", DriverFile, cfg.Storage.Driver)
	}
	if cfg.Lookup.MaxAttempts != 4 {
		t.Errorf("expected 4 lookup attempts, got %d", cfg.Lookup.MaxAttempts)
	}
	if cfg.Lookup.InitialBackoff != 500*time.Millisecond {
		t.Errorf("expected 500ms initial backoff, got %v", cfg.Lookup.InitialBackoff)
	}
	if cfg.Translator.Source != "en" || cfg.Translator.Target != "hi" {
		t.Errorf("unexpected translator languages %s -> %s", cfg.Translator.Source, cfg.Translator.Target)
	}
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "")

	_, err := Load()
	if !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Fatalf("expected ErrMissingEnvironmentVariables, got %v", err)
	}
}

func TestLoadStorageDriver(t *testing.T) {
	testCases := []struct {
		name    string
		driver  string
		dbURL   string
		wantErr error
	}{
		{"memory", DriverMemory, "", nil},
		{"redis", DriverRedis, "", nil},
		{"postgres with url", DriverPostgres, "postgres://localhost/lingvo", nil},
		{"postgres without url", DriverPostgres, "", ErrMissingEnvironmentVariables},
		{"unknown", "mongo", "", ErrUnknownStorageDriver},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TELEGRAM_API_TOKEN", "token")
			t.Setenv("STORAGE_DRIVER", tc.driver)
			t.Setenv("DATABASE_URL", tc.dbURL)

			cfg, err := Load()
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Storage.Driver != tc.driver {
				t.Errorf("expected driver %q, got %q", tc.driver, cfg.Storage.Driver)
			}
		})
	}
}
