// Package cli is the jwtgenerator command line: flag parsing, wiring of the
// issuer, and mapping of failures to exit codes.
package cli

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/macatibm/jwtgenerator/internal/config"
	"github.com/macatibm/jwtgenerator/internal/issuer"
	"github.com/macatibm/jwtgenerator/internal/logging"
	"github.com/macatibm/jwtgenerator/internal/metrics"
	"github.com/macatibm/jwtgenerator/internal/output"
)

const Name = "jwtgenerator"

const (
	ExitOK                   = 0
	ExitFailure              = 1
	ExitInvalidConfiguration = 2
	ExitKeyUnavailable       = 3
	ExitSigningFailure       = 4
)

// Execute runs the command with args and returns the process exit code.
// On failure a single diagnostic line goes to stderr and stdout stays empty.
func Execute(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args on a nil slice.
		args = []string{}
	}
	cmd := NewCommand(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", Name, err)
		return ExitCode(err)
	}
	return ExitOK
}

func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch issuer.Kind(err) {
	case issuer.KindInvalidConfiguration:
		return ExitInvalidConfiguration
	case issuer.KindKeyUnavailable:
		return ExitKeyUnavailable
	case issuer.KindSigningFailure:
		return ExitSigningFailure
	default:
		return ExitFailure
	}
}

func NewCommand(stdout, stderr io.Writer) *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   Name + " [flags] <private-key>",
		Short: "Generates signed JWT token for Mac@IBM Notifications",
		Long: "Reads an RS256 private key (PEM) and prints a JWT with sub=" + issuer.Subject +
			", iss=" + issuer.IssuerName + " and exp=now+expires-in.",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return fmt.Errorf("%w: %w", issuer.ErrInvalidConfiguration, err)
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			cfg.KeyPath = args[0]
			return run(cfg, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", issuer.ErrInvalidConfiguration, err)
	})

	f := cmd.Flags()
	f.IntVarP(&cfg.ExpiresIn, "expires-in", "e", config.DefaultExpiresIn, "JWT expiration time in seconds")
	f.StringVarP(&cfg.Format, "output", "o", config.DefaultFormat, "output format: text, json or yaml")
	f.StringVar(&cfg.LogLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn or error")
	f.StringVar(&cfg.LogFormat, "log-format", config.DefaultLogFormat, "log format: text or json")
	f.StringVar(&cfg.MetricsTextfile, "metrics-textfile", "", "write issuance metrics in Prometheus text format to this path")
	return cmd
}

// run returns at most one error. A failed metrics export is folded into it,
// or logged at error level when the token was already printed.
func run(cfg config.Config, stdout, stderr io.Writer) (err error) {
	if err := config.Normalize(&cfg); err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", issuer.ErrInvalidConfiguration, err)
	}
	format := output.Format(cfg.Format)

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	if cfg.MetricsTextfile != "" {
		defer func() {
			werr := metrics.WriteTextfile(cfg.MetricsTextfile, reg)
			switch {
			case werr == nil:
			case err != nil:
				err = fmt.Errorf("%w (metrics textfile: %v)", err, werr)
			default:
				log.Error("failed to write metrics textfile",
					slog.String("path", cfg.MetricsTextfile),
					slog.String("error", werr.Error()),
				)
			}
		}()
	}

	iss, err := issuer.New(cfg.KeyPath, cfg.ExpiresIn, issuer.WithLogger(log), issuer.WithObserver(m))
	if err != nil {
		return err
	}
	tok, err := iss.IssueToken()
	if err != nil {
		return err
	}

	// Render fully before touching stdout so a failure never leaves a partial token.
	var buf bytes.Buffer
	if err := output.Write(&buf, format, tok); err != nil {
		return fmt.Errorf("render token: %w", err)
	}
	if _, err := stdout.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write token: %w", err)
	}

	log.Info("token issued",
		slog.String("output", string(format)),
		slog.Time("expires_at", tok.ExpiresAt()),
	)
	return nil
}
