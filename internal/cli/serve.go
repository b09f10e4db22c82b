package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/benedict2310/sitebuilder/internal/preview"
	"github.com/spf13/cobra"
)

var signalNotifyContext = signal.NotifyContext

func newServeCmd() *cobra.Command {
	var bind string
	var port int
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live preview of the draft and published versions",
		Long: "Serves the draft at /, the latest published version at /published/ " +
			"and any version at /versions/<id>/. Storage changes made by other " +
			"sitebuilder commands are picked up automatically.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("bind") {
				cfg.Serve.Bind = bind
			}
			if cmd.Flags().Changed("port") {
				cfg.Serve.Port = port
			}
			if noWatch {
				cfg.Serve.Watch = false
			}

			ctx, stop := signalNotifyContext(cmd.Context(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			p, err := openPersistence(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closePersistence(p)

			srv, err := preview.New(preview.Config{
				Bind:           cfg.Serve.Bind,
				Port:           cfg.Serve.Port,
				AllowedOrigins: cfg.Serve.AllowedOrigins,
				SocialCards:    cfg.Export.SocialCards,
			}, preview.PersisterSource{Persister: p.persister}, logger)
			if err != nil {
				return exitCodeError(ExitInvalid, err)
			}
			if cfg.Serve.Watch {
				if err := srv.Watch(ctx, p.path); err != nil {
					logger.Warn("live reload disabled", "error", err)
				}
			}
			if err := srv.Start(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Previewing at http://%s/ (published: /published/)\n", srv.Addr())

			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Address to bind (default from config, 127.0.0.1)")
	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default from config; 0 picks a free port)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload when storage changes")
	return cmd
}
