package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/systmms/fixedsecret/internal/config"
	dserrors "github.com/systmms/fixedsecret/internal/errors"
	"github.com/systmms/fixedsecret/internal/logging"
	"github.com/systmms/fixedsecret/internal/metrics"
	"github.com/systmms/fixedsecret/internal/source"
)

// sourceOptions lets tests inject fakes for remote sources
var sourceOptions []source.Option

func NewCheckCommand(cfg *config.Config) *cobra.Command {
	var (
		fingerprint bool
		stats       bool
	)

	cmd := &cobra.Command{
		Use:   "check [keys...]",
		Short: "Load keys and verify their length",
		Long: `Load each named key (all keys when none are given) into a zeroizing
container, confirm it has the configured length, and destroy it again.

Examples:
  fixedsecret check                      # Check every key in the manifest
  fixedsecret check signing session      # Check selected keys
  fixedsecret check --fingerprint        # Also print a short SHA-256 fingerprint
  echo $KEY | fixedsecret check stdin    # Keys with file "-" read stdin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}

			names := args
			if len(names) == 0 {
				names = cfg.KeyNames()
			}

			reg := prometheus.NewRegistry()
			if err := metrics.Register(reg); err != nil {
				return err
			}

			opts := append([]source.Option{source.WithStdin(cmd.InOrStdin())}, sourceOptions...)
			out := cmd.OutOrStdout()

			failed := 0
			for _, name := range names {
				key, err := cfg.GetKey(name)
				if err != nil {
					return err
				}

				cfg.Logger.Debug("loading %s from %s", name, key.From.Describe())
				err = checkKey(cmd.Context(), out, cfg.Logger, key, fingerprint, opts)
				if dserrors.IsRetryable(err) {
					cfg.Logger.Debug("retrying %s after: %v", name, err)
					err = checkKey(cmd.Context(), out, cfg.Logger, key, fingerprint, opts)
				}
				if err != nil {
					cfg.Logger.Error("%v", dserrors.SourceError(key.From.Kind(), name, err))
					failed++
				}
			}

			if stats {
				samples, err := metrics.Gather(reg)
				if err != nil {
					return err
				}
				for _, s := range samples {
					fmt.Fprintf(out, "%s %g\n", s.Name, s.Value)
				}
			}

			if failed > 0 {
				return dserrors.UserError{
					Message:    fmt.Sprintf("%d of %d keys failed to load", failed, len(names)),
					Suggestion: "Run with --debug for source details",
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fingerprint, "fingerprint", false, "Print the first 8 bytes of each key's SHA-256")
	cmd.Flags().BoolVar(&stats, "stats", false, "Print container counters after checking")

	return cmd
}

func checkKey(ctx context.Context, out io.Writer, logger *logging.Logger, key config.Key, fingerprint bool, opts []source.Option) error {
	if ctx == nil {
		ctx = context.Background()
	}

	h, err := source.Open(ctx, key, opts...)
	if err != nil {
		return err
	}
	defer h.Destroy()

	// The handle formats as [REDACTED]
	logger.Debug("opened %s: %v", key.Name, h)

	line := fmt.Sprintf("✓ %s: %d bytes from %s", key.Name, h.Len(), key.From.Describe())
	if fingerprint {
		var sum [sha256.Size]byte
		h.BorrowBytes(func(view []byte) {
			sum = sha256.Sum256(view)
		})
		line += " (sha256:" + hex.EncodeToString(sum[:8]) + ")"
	}
	fmt.Fprintln(out, line)
	return nil
}
