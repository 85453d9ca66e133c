package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/crypdick/truenas-settings-auto-backup/src/config"
	"github.com/crypdick/truenas-settings-auto-backup/src/retention"
	"github.com/crypdick/truenas-settings-auto-backup/src/truenasapi"
)

// Fetcher downloads the artifact a session handed us. Injected so tests can
// point it at a local server.
type Fetcher func(ctx context.Context, host, downloadURL, token string, verifyTLS bool) ([]byte, error)

// Run performs one backup: authenticate, request the export, fetch it,
// write it under cfg.OutDir with a timestamped name, then prune old
// backups. Returns the path of the written file.
func Run(ctx context.Context, client truenasapi.Client, fetch Fetcher, cfg config.Config, now time.Time) (string, error) {
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	dl, err := requestExport(ctx, client, cfg)
	if err != nil {
		return "", err
	}

	data, err := fetch(ctx, cfg.Host, dl.URL, dl.Token, cfg.VerifyTLS)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("truenas_config_%s.tar", now.Format("20060102_150405"))
	path := filepath.Join(cfg.OutDir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	if err := retention.Prune(cfg.OutDir, cfg.Retention); err != nil {
		return path, err
	}
	return path, nil
}

// requestExport runs the control-channel phase. The connection is closed
// before the HTTP fetch starts, on every exit path.
func requestExport(ctx context.Context, client truenasapi.Client, cfg config.Config) (truenasapi.Download, error) {
	defer client.Close()
	if err := client.LoginWithAPIKey(ctx, cfg.APIKey); err != nil {
		return truenasapi.Download{}, err
	}
	return client.DownloadConfig(ctx, cfg.IncludeSecrets)
}
