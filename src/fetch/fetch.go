package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/crypdick/truenas-settings-auto-backup/src/truenasapi"
)

const timeout = 300 * time.Second

// HTTPError is a non-2xx response from the download endpoint.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: %d %s", e.StatusCode, e.Body)
}

// Get downloads the prepared artifact. downloadURL may be absolute or
// relative to the host's HTTP base; a non-empty token is attached as the
// auth_token query parameter.
func Get(ctx context.Context, host, downloadURL, token string, verifyTLS bool) ([]byte, error) {
	full := downloadURL
	if !strings.HasPrefix(full, "http://") && !strings.HasPrefix(full, "https://") {
		full = truenasapi.HTTPBase(host) + downloadURL
	}
	if token != "" {
		u, err := url.Parse(full)
		if err != nil {
			return nil, fmt.Errorf("parse download URL %q: %w", full, err)
		}
		q := u.Query()
		q.Set("auth_token", token)
		u.RawQuery = q.Encode()
		full = u.String()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: timeout}
	if !verifyTLS {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
