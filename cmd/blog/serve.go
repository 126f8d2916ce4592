package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	var (
		addr     string
		watch    bool
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build, then serve the public directory and post previews",
		Long: `serve performs an initial build and serves the public directory, which
holds rss.xml and rss-viewer.html, along with sanitized previews of each
post under /posts/. With --watch, changes under the content directory or to
the feed stylesheets clear the render cache and trigger a rebuild.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := opts.module()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = module.config.Server.Addr
			}

			if err := buildSite(cmd.Context(), cmd.OutOrStdout(), module, false); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := &http.Server{
				Addr:              addr,
				Handler:           newDevRouter(module),
				ReadHeaderTimeout: 10 * time.Second,
			}

			group, groupCtx := errgroup.WithContext(ctx)
			group.Go(func() error {
				return listenAndServe(groupCtx, server)
			})
			if watch {
				paths := append([]string{module.config.Content.Dir}, module.config.Feed.Stylesheets...)
				group.Go(func() error {
					return watchPaths(groupCtx, paths, debounce, module.logger, func(ctx context.Context) {
						rebuild(ctx, cmd, module)
					})
				})
			}
			if module.cache != nil && !module.config.IsProduction() {
				group.Go(func() error {
					module.cache.Monitor(groupCtx, module.config.Render.StatsInterval)
					return nil
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on %s (Ctrl+C to stop)\n", module.config.Feed.PublicDir, addr)
			return group.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to server.addr)")
	cmd.Flags().BoolVar(&watch, "watch", false, "rebuild when content or stylesheets change")
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "quiet period before a rebuild starts")
	return cmd
}

func rebuild(ctx context.Context, cmd *cobra.Command, module *moduleResources) {
	if module.cache != nil {
		if err := module.cache.Clear(ctx); err != nil {
			module.logger.Warn("serve.cache.clear_failed", "error", err)
		}
	}
	if err := buildSite(ctx, cmd.OutOrStdout(), module, false); err != nil {
		reportFailure(cmd.ErrOrStderr(), err)
		return
	}
	module.logger.Info("serve.rebuild.completed")
}

func listenAndServe(ctx context.Context, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
