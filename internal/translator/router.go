package translator

import (
	"context"
	"fmt"
	"sort"

	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
)

// Router dispatches to the configured engine and retries once on the fallback engine.
type Router struct {
	backends map[string]Provider
	engine   string
	fallback string
	logger   logger.Logger
}

// NewRouter fails when the primary engine has no backend.
// An unregistered fallback is ignored.
func NewRouter(backends map[string]Provider, engine, fallback string, log logger.Logger) (*Router, error) {
	if _, ok := backends[engine]; !ok {
		return nil, fmt.Errorf("no translation backend for engine %q", engine)
	}
	if _, ok := backends[fallback]; !ok || fallback == engine {
		fallback = ""
	}
	return &Router{backends: backends, engine: engine, fallback: fallback, logger: log}, nil
}

func (r *Router) Complete(ctx context.Context, req Request) (string, error) {
	text, err := r.backends[r.engine].Complete(ctx, req)
	if err == nil || r.fallback == "" || ctx.Err() != nil {
		return text, err
	}

	r.logger.Warn(ctx, "Engine %s failed (%v), retrying on %s", r.engine, err, r.fallback)
	text, ferr := r.backends[r.fallback].Complete(ctx, req)
	if ferr != nil {
		return "", fmt.Errorf("%s: %v; %s: %w", r.engine, err, r.fallback, ferr)
	}
	return text, nil
}

// Engines returns the names of all registered backends.
func (r *Router) Engines() []string {
	names := make([]string, 0, len(r.backends))
	for k := range r.backends {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
