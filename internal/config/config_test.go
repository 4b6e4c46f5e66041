package config

import (
	"os"
	"reflect"
	"testing"
)

// TestParseCSVEnv проверяет разбор списка значений из ENV.
func TestParseCSVEnv(t *testing.T) {
	t.Setenv("CORS_ALLOW_ORIGINS", " https://app.example.com, ,http://localhost:3000 ")

	got := parseCSVEnv("CORS_ALLOW_ORIGINS")
	want := []string{"https://app.example.com", "http://localhost:3000"}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// TestParseCSVEnvMissing проверяет поведение при отсутствии переменной.
func TestParseCSVEnvMissing(t *testing.T) {
	got := parseCSVEnv("MISSING_ENV")
	if got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", "")
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// TestLoadDefaults проверяет значения по умолчанию.
func TestLoadDefaults(t *testing.T) {
	isolateEnv(t)
	t.Setenv("AI_PROVIDER", "groq")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Storage.Driver != StorageDriverFile {
		t.Fatalf("expected file driver, got %s", cfg.Storage.Driver)
	}
	if cfg.AI.BaseURL != "https://api.groq.com/openai/v1" {
		t.Fatalf("unexpected groq base url: %s", cfg.AI.BaseURL)
	}
	if cfg.AI.MaxOutputTokens != 500 {
		t.Fatalf("expected 500 max tokens, got %d", cfg.AI.MaxOutputTokens)
	}
	if cfg.Auth.Enabled() {
		t.Fatal("expected auth to be disabled without JWT_SECRET")
	}
	if !reflect.DeepEqual(cfg.CORS.AllowOrigins, []string{"*"}) {
		t.Fatalf("expected wildcard CORS, got %v", cfg.CORS.AllowOrigins)
	}
}

// TestLoadOpenAIKeyFallback проверяет чтение OPENAI_API_KEY.
func TestLoadOpenAIKeyFallback(t *testing.T) {
	isolateEnv(t)
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.AI.APIKey != "sk-test" {
		t.Fatalf("expected key from OPENAI_API_KEY, got %q", cfg.AI.APIKey)
	}
	if cfg.AI.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %s", cfg.AI.Model)
	}
}

// TestLoadValidation проверяет ошибки конфигурации.
func TestLoadValidation(t *testing.T) {
	isolateEnv(t)
	t.Setenv("STORAGE_DRIVER", "redis")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for redis driver without REDIS_URL")
	}

	t.Setenv("STORAGE_DRIVER", "memory")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown driver")
	}

	t.Setenv("STORAGE_DRIVER", "file")
	t.Setenv("JWT_SECRET", "secret")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for JWT_SECRET without passcode hash")
	}

	t.Setenv("JWT_SECRET", "")
	t.Setenv("AI_PROVIDER", "claude")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown AI provider")
	}
}
