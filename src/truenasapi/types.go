package truenasapi

import (
	"context"
	"encoding/json"
	"fmt"
)

// Download is the descriptor a download-job call returns: where to fetch the
// artifact and, optionally, a token authorizing the fetch.
type Download struct {
	URL   string
	Token string
}

// Client is a narrow interface over the TrueNAS middleware API used by our
// app. Keep it small and focused on what we actually need so it stays
// mockable.
type Client interface {
	// LoginWithAPIKey authenticates the session.
	LoginWithAPIKey(ctx context.Context, key string) error

	// DownloadConfig asks the middleware to prepare a configuration export
	// and returns the descriptor for fetching it.
	DownloadConfig(ctx context.Context, includeSecrets bool) (Download, error)

	Close() error
}

// decodeDownload turns the reply of a core.download call into a Download.
// The middleware has shipped two shapes over the years: an object with the
// URL under one of several keys, and an array with the URL at index 1 and
// an optional token at index 2. Anything else is a protocol error, as is a
// reply with no URL. A missing token decodes to "".
func decodeDownload(raw json.RawMessage) (Download, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		url := firstString(obj, "url", "result", "job_url")
		if url == "" {
			return Download{}, fmt.Errorf("no download URL in reply %s", raw)
		}
		return Download{URL: url, Token: firstString(obj, "token", "auth_token")}, nil
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil && len(arr) >= 2 {
		d := Download{URL: asString(arr[1])}
		if len(arr) >= 3 {
			d.Token = asString(arr[2])
		}
		if d.URL == "" {
			return Download{}, fmt.Errorf("no download URL in reply %s", raw)
		}
		return d, nil
	}

	return Download{}, fmt.Errorf("unexpected reply shape from core.download: %s", raw)
}

func firstString(obj map[string]json.RawMessage, keys ...string) string {
	for _, k := range keys {
		if s := asString(obj[k]); s != "" {
			return s
		}
	}
	return ""
}

func asString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
