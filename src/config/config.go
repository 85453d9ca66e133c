package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// APIKeyEnvVar is the lowest-priority credential source.
const APIKeyEnvVar = "TRUENAS_API_KEY"

// ErrNoAPIKey is returned when no credential source yields a key.
// The CLI maps it to exit code 2.
var ErrNoAPIKey = errors.New("API key not provided: use --api-key, --api-key-file, or " + APIKeyEnvVar)

// Config holds everything a backup run needs, assembled once at startup.
// Nothing downstream reads flags or the environment.
type Config struct {
	Host           string
	OutDir         string
	APIKey         string
	IncludeSecrets bool
	VerifyTLS      bool
	Retention      int
}

// ResolveAPIKey picks the API key from the highest-priority source that is
// set: explicit value, key file, then the environment variable. The result
// is trimmed of surrounding whitespace (key files usually end in a newline).
func ResolveAPIKey(explicit, keyFile string) (string, error) {
	if k := strings.TrimSpace(explicit); k != "" {
		return k, nil
	}
	if keyFile != "" {
		data, err := os.ReadFile(keyFile)
		if err != nil {
			return "", fmt.Errorf("read api key file: %w", err)
		}
		if k := strings.TrimSpace(string(data)); k != "" {
			return k, nil
		}
		return "", ErrNoAPIKey
	}
	if k := strings.TrimSpace(os.Getenv(APIKeyEnvVar)); k != "" {
		return k, nil
	}
	return "", ErrNoAPIKey
}
