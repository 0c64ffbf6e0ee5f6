// Package cli implements renza-report, a command line companion of the
// server that renders delivery receipts without going through HTTP.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"renza-entrega/internal/app"
	"renza-entrega/internal/config"
	"renza-entrega/internal/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Format     string
	NoLogo     bool
}

var validFormats = []string{"text", "json"}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "renza-report",
		Short: "Render RENZA delivery receipts",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range validFormats {
				if f == opts.Format {
					return nil
				}
			}
			return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, validFormats)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default $CONFIG_PATH or ./config/local.yaml)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVar(&opts.NoLogo, "no-logo", false, "do not download the letterhead logo")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewRenderCommand(opts))

	return cmd
}

// open loads the configuration and builds the application. Logs go to
// errOut so they never mix with command output.
func (o *RootOptions) open(ctx context.Context, errOut io.Writer) (*app.App, error) {
	// .env is optional
	_ = godotenv.Load()

	path := o.ConfigPath
	if path == "" {
		path = config.Path()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if o.NoLogo {
		cfg.Logo.URL = ""
	}

	log := logger.New(cfg.Env, errOut, "")

	return app.New(ctx, cfg, log)
}
