package pubdesk

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// isolateEnv points ENV_FILE at a missing file so no .env in the working
// directory leaks into the test.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigYAMLAndDefaults(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, "pubdesk.yaml", "name: Newsroom\napi_url: https://api.example.com/v1\nsession_secret: "+testSecret+"\ncache_ttl: 45s\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "Newsroom" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.AuthURL != "https://api.example.com/v1" {
		t.Errorf("AuthURL = %q, want the API URL", cfg.AuthURL)
	}
	if cfg.CacheTTL != 45*time.Second {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
	if cfg.Addr != ":3000" || cfg.EditorTimeZone != "UTC" || cfg.RequestTimeout != 15*time.Second {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestLoadConfigEnvOverridesYAML(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, "pubdesk.yaml", "name: Newsroom\napi_url: https://api.example.com/v1\n")
	t.Setenv("PUBDESK_NAME", "Desk")
	t.Setenv("PUBDESK_SESSION_SECRET", testSecret)
	t.Setenv("PUBDESK_REQUEST_TIMEOUT", "3s")
	t.Setenv("PUBDESK_COOKIE_SECURE", "true")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "Desk" || cfg.SessionSecret != testSecret {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.RequestTimeout != 3*time.Second || !cfg.CookieSecure {
		t.Errorf("typed env not applied: %+v", cfg)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	envFile := writeFile(t, "custom.env", "PUBDESK_API_URL=https://env.example.com\nPUBDESK_LOG_LEVEL=debug\n")
	t.Setenv("ENV_FILE", envFile)
	// Register cleanups so the values godotenv sets are removed afterwards.
	for _, key := range []string{"PUBDESK_API_URL", "PUBDESK_LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIURL != "https://env.example.com" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	isolateEnv(t)

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing config file: expected error")
	}
	if _, err := LoadConfig(writeFile(t, "bad.yaml", "name: [unclosed\n")); err == nil {
		t.Error("bad yaml: expected error")
	}

	t.Setenv("PUBDESK_CACHE_TTL", "soon")
	if _, err := LoadConfig(""); err == nil || !strings.Contains(err.Error(), "PUBDESK_CACHE_TTL") {
		t.Errorf("bad duration: err = %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := SiteConfig{SessionSecret: "short", EditorTimeZone: "Mars/Olympus"}
	err := cfg.validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"APIURL is required", "at least 32 bytes", "EditorTimeZone"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestInitRejectsInvalidConfig(t *testing.T) {
	app := New(SiteConfig{APIURL: "https://api.example.com"}, DefaultViews())
	if err := app.Init(); err == nil {
		t.Fatal("Init without a session secret: expected error")
	}
}
