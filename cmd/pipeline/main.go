package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/podcast-flow/internal/config"
	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
	"github.com/nguyentantai21042004/podcast-flow/internal/translator"
	"github.com/nguyentantai21042004/podcast-flow/internal/watcher"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "pipeline",
		Short:         "Transcribe English podcasts and translate them into style-matched Mandarin",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")
	root.AddCommand(runCmd(), watchCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "run <audio>",
		Short: "Process a single audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, log, err := setup(ctx)
			if err != nil {
				return err
			}
			proc, err := buildProcessor(cfg, log)
			if err != nil {
				return err
			}

			var info *translator.PodcastInfo
			if title != "" || description != "" {
				info = &translator.PodcastInfo{Title: title, Description: description}
			}

			res, err := proc.Process(ctx, args[0], info)
			if err != nil {
				return err
			}

			failed := 0
			for _, s := range res.TranslatedSegments {
				if s.Failed() {
					failed++
				}
			}
			log.Info(ctx, "Run %s: %d segments translated, %d failed", res.RunID, len(res.TranslatedSegments), failed)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "podcast title added to translation context")
	cmd.Flags().StringVar(&description, "description", "", "podcast topic added to translation context")
	return cmd
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Process every audio file dropped into the input folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			cfg, log, err := setup(ctx)
			if err != nil {
				return err
			}
			log.Info(ctx, "System: %s/%s, CPU cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())

			if err := ensureDirectories(cfg); err != nil {
				return err
			}
			proc, err := buildProcessor(cfg, log)
			if err != nil {
				return err
			}

			w, err := watcher.New(cfg.Paths.Input, proc.Handle, log, cfg.Performance.MaxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			if cfg.Metrics.Addr != "" {
				srv := serveMetrics(ctx, cfg.Metrics.Addr, log)
				defer shutdown(srv)
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			errChan := make(chan error, 1)
			go func() {
				if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
					errChan <- err
				}
			}()

			log.Info(ctx, "========================================")
			log.Info(ctx, "Podcast Pipeline is ready!")
			log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
			log.Info(ctx, "Output: %s", cfg.Paths.Output)
			log.Info(ctx, "Transcription: %s, translation: %s", cfg.Transcription.Provider, cfg.Translation.Engine)
			log.Info(ctx, "Press Ctrl+C to stop")
			log.Info(ctx, "========================================")

			var runErr error
			select {
			case <-sigChan:
				log.Info(ctx, "Shutdown signal received")
			case runErr = <-errChan:
				log.Error(ctx, "Watcher error: %v", runErr)
			}

			log.Info(ctx, "Shutting down gracefully...")
			cancel()
			log.Info(ctx, "Podcast Pipeline stopped")
			return runErr
		},
	}
}

func setup(ctx context.Context) (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "Configuration loaded from %s", configPath)
	return cfg, log, nil
}

func serveMetrics(ctx context.Context, addr string, log logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info(ctx, "Serving metrics on %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "Metrics server: %v", err)
		}
	}()
	return srv
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
