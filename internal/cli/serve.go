package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/bagtoad/pathpick/internal/config"
	"github.com/bagtoad/pathpick/internal/server"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the picker nodes over HTTP",
		Long: `Start an HTTP server exposing the picker nodes:

  GET  /api/nodes                    node descriptors
  POST /api/nodes/{name}/run         {"directory", "extensions", "index"} -> {"file_path"}
  POST /api/nodes/{name}/is_changed  same body -> {"token"}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			srv := &http.Server{
				Addr:              config.Resolve(listen, e.cfg.Listen, config.DefaultConfig().Listen),
				Handler:           server.NewHandler(e.registry, e.log).Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				e.log.Infof("serving %d nodes at http://%s", len(e.registry.Nodes()), srv.Addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server failed: %w", err)
			case <-ctx.Done():
			}

			e.log.Infof("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Address to listen on (default from config, 127.0.0.1:8188)")
	return cmd
}
