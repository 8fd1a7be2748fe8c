// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/journal-search/internal/httputil"
	"github.com/pdiddy/journal-search/pkg/types"
)

const defaultFetchTimeout = 30 * time.Second

// fetch downloads a remote catalog.
func fetch(ctx context.Context, url string, cfg types.HTTPConfig, logger *zap.Logger) ([]byte, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = types.DefaultUserAgent
	}
	logger.Debug("fetching catalog", zap.String("url", url), zap.Duration("timeout", timeout))
	client := &http.Client{Timeout: timeout}
	return httputil.Get(ctx, client, url, ua, cfg.MaxRetries, logger)
}
