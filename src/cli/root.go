package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/crypdick/truenas-settings-auto-backup/src/backup"
	"github.com/crypdick/truenas-settings-auto-backup/src/config"
	"github.com/crypdick/truenas-settings-auto-backup/src/fetch"
	"github.com/crypdick/truenas-settings-auto-backup/src/truenasapi"
)

// NewRootCmd returns the root cobra command for the truenas-backup CLI.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		host           string
		outDir         string
		apiKey         string
		apiKeyFile     string
		includeSecrets bool
		noVerifyTLS    bool
		keep           int
	)

	cmd := &cobra.Command{
		Use:           "truenas-backup",
		Short:         "Download a TrueNAS configuration backup via the middleware API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := config.ResolveAPIKey(apiKey, apiKeyFile)
			if err != nil {
				return err
			}
			cfg := config.Config{
				Host:           host,
				OutDir:         outDir,
				APIKey:         key,
				IncludeSecrets: includeSecrets,
				VerifyTLS:      !noVerifyTLS,
				Retention:      keep,
			}

			client, err := truenasapi.Connect(cfg.Host, cfg.VerifyTLS)
			if err != nil {
				return err
			}
			path, err := backup.Run(cmd.Context(), client, fetch.Get, cfg, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Wrote %s\n", path)
			return nil
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().StringVar(&host, "host", "", "TrueNAS host/IP or URL (e.g., 127.0.0.1 or https://truenas.local)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory to store backups")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key; falls back to "+config.APIKeyEnvVar+" env")
	cmd.Flags().StringVar(&apiKeyFile, "api-key-file", "", "Path to file containing API key")
	cmd.Flags().BoolVar(&includeSecrets, "include-secrets", false, "Include secret seed in the backup")
	cmd.Flags().BoolVar(&noVerifyTLS, "no-verify-tls", false, "Disable TLS certificate verification")
	cmd.Flags().IntVar(&keep, "retention", 14, "Keep last N backups")
	_ = cmd.MarkFlagRequired("host")
	_ = cmd.MarkFlagRequired("out-dir")

	cmd.AddCommand(newVersionCmd(stdout))

	return cmd
}

// Execute runs the CLI with the process stdio and maps errors to exit codes:
// 0 success, 1 runtime failure, 2 missing credentials.
func Execute() int {
	root := NewRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, config.ErrNoAPIKey) {
			return 2
		}
		return 1
	}
	return 0
}
