// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/journal-search/internal/secrets"
	"github.com/pdiddy/journal-search/internal/session"
	"github.com/pdiddy/journal-search/internal/web"
)

const (
	defaultSessionTTL = 2 * time.Hour
	shutdownTimeout   = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search page over HTTP",
	Long: `Serve hosts the catalog search page. Each browser gets its own search and
page, kept in memory and identified by a cookie. A session-key file in the
secrets directory signs the cookie. Idle sessions expire after --session-ttl.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8501)")
	serveCmd.Flags().Duration("session-ttl", 0, "expire sessions idle this long, 0 keeps them (default 2h)")

	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.session_ttl", serveCmd.Flags().Lookup("session-ttl"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	ds, cfg, err := loadCatalog(ctx)
	if err != nil {
		return err
	}
	key, err := secrets.SessionKey(cfg.Server.SecretsDir, logger)
	if err != nil {
		return err
	}
	if key == nil {
		logger.Warn("no session key; cookies are unsigned", zap.String("secrets_dir", cfg.Server.SecretsDir))
	}

	sessions := session.NewManager(ds.Records(), cfg.Server.SessionTTL, logger.Named("sessions"))
	defer sessions.Close()

	srv := web.NewServer(sessions, web.Options{
		Title:        cfg.Server.Title,
		Footer:       cfg.Server.Footer,
		ArticleTypes: ds.ArticleTypes(),
		SessionKey:   key,
	}, logger.Named("web"))

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr), zap.Int("articles", ds.Len()))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving %s: %w", cfg.Server.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
