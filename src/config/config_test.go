package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/crypdick/truenas-settings-auto-backup/src/config"
)

func TestResolveAPIKey_ExplicitWins(t *testing.T) {
	t.Setenv(config.APIKeyEnvVar, "from-env")
	keyFile := writeKeyFile(t, "from-file\n")

	got, err := config.ResolveAPIKey("from-flag", keyFile)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "from-flag" {
		t.Fatalf("key = %q, want from-flag", got)
	}
}

func TestResolveAPIKey_FileBeforeEnv(t *testing.T) {
	t.Setenv(config.APIKeyEnvVar, "from-env")
	keyFile := writeKeyFile(t, "  from-file\n")

	got, err := config.ResolveAPIKey("", keyFile)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "from-file" {
		t.Fatalf("key = %q, want from-file (trimmed)", got)
	}
}

func TestResolveAPIKey_EnvFallback(t *testing.T) {
	t.Setenv(config.APIKeyEnvVar, "from-env\n")

	got, err := config.ResolveAPIKey("", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "from-env" {
		t.Fatalf("key = %q, want from-env", got)
	}
}

func TestResolveAPIKey_NoSource(t *testing.T) {
	t.Setenv(config.APIKeyEnvVar, "")

	_, err := config.ResolveAPIKey("", "")
	if !errors.Is(err, config.ErrNoAPIKey) {
		t.Fatalf("err = %v, want ErrNoAPIKey", err)
	}
}

func TestResolveAPIKey_UnreadableFile(t *testing.T) {
	_, err := config.ResolveAPIKey("", filepath.Join(t.TempDir(), "absent"))
	if err == nil || errors.Is(err, config.ErrNoAPIKey) {
		t.Fatalf("err = %v, want a read error distinct from ErrNoAPIKey", err)
	}
}

func writeKeyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}
	return path
}
