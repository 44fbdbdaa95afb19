package cli

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/ovumcalc/internal/api"
	"github.com/terraincognita07/ovumcalc/internal/config"
	"github.com/terraincognita07/ovumcalc/internal/i18n"
)

func TestRunServerRequiresSecretKey(t *testing.T) {
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "serve.db")
	cfg.SecretKey = "too-short"

	err := runServer(context.Background(), cfg)
	if !errors.Is(err, config.ErrSecretKeyTooShort) {
		t.Fatalf("expected ErrSecretKeyTooShort, got %v", err)
	}
}

func TestNewAppServesHealthAndJSONNotFound(t *testing.T) {
	t.Parallel()

	manager, err := i18n.NewEmbeddedManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}
	handler, err := api.NewHandler(nil, "0123456789abcdef0123456789abcdef", time.UTC, manager)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	app := newApp(handler)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	response, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	if err != nil {
		t.Fatalf("missing request failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", response.StatusCode)
	}
}

func TestNewI18nManagerPrefersLocalesDir(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.DefaultLanguage = "ru"
	manager, err := newI18nManager(cfg)
	if err != nil {
		t.Fatalf("embedded manager: %v", err)
	}
	if manager.DefaultLanguage() != "ru" {
		t.Fatalf("expected default language ru, got %q", manager.DefaultLanguage())
	}

	cfg.LocalesDir = filepath.Join(t.TempDir(), "missing")
	if _, err := newI18nManager(cfg); err == nil {
		t.Fatal("expected error for a missing locales dir")
	}
}
