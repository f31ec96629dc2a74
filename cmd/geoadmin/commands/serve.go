package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pthm/geoadmin/internal/api"
	"github.com/pthm/geoadmin/internal/config"
	"github.com/pthm/geoadmin/internal/logging"
	"github.com/pthm/geoadmin/internal/server"
)

type serveFlags struct {
	listen   string
	backend  string
	logLevel string
}

func serveCmd() *cobra.Command {
	var flags serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the admin UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, conf)
		},
	}
	cmd.Flags().StringVar(&flags.listen, "listen", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&flags.backend, "backend", "", "backend base URL (overrides config)")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "debug|info|warn|error (overrides config)")
	return cmd
}

// loadConfig layers the flags that were set over the file and environment.
func loadConfig(cmd *cobra.Command, flags serveFlags) (*config.Config, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("listen") {
		conf.Listen = flags.listen
	}
	if cmd.Flags().Changed("backend") {
		conf.Backend.BaseURL = flags.backend
	}
	if cmd.Flags().Changed("log-level") {
		conf.Log.Level = flags.logLevel
	}
	if err := conf.Verify(); err != nil {
		return nil, err
	}
	return conf, nil
}

func serve(ctx context.Context, conf *config.Config) error {
	level, err := logging.ParseLevel(conf.Log.Level)
	if err != nil {
		return err
	}
	log, err := logging.New().FromPath(conf.Log.Path).Level(level).Make()
	if err != nil {
		return err
	}
	defer log.Close()

	encoding, err := api.ParseUpdateEncoding(conf.Backend.UpdateEncoding)
	if err != nil {
		return err
	}
	client, err := api.New(conf.Backend.BaseURL,
		api.WithTimeout(conf.Backend.Timeout),
		api.WithUpdateEncoding(encoding),
		api.WithLogger(log.Logger),
	)
	if err != nil {
		return fmt.Errorf("backend client: %w", err)
	}

	log.Info().
		Str("backend", conf.Backend.BaseURL).
		Str("update_encoding", string(encoding)).
		Str("version", Version).
		Msg("starting geoadmin")

	return server.New(client, []byte(conf.PropsKey), log.Logger).Run(ctx, conf.Listen)
}
