package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	pagefill "github.com/goliatone/go-pagefill"
	"github.com/goliatone/go-pagefill/internal/config"
	"github.com/goliatone/go-pagefill/pkg/httpapi"
)

func main() {
	configPath := flag.String("config", "", "configuration file (YAML)")
	addrFlag := flag.String("addr", "", "listen address (overrides config)")
	templatesFlag := flag.String("templates", "", "templates directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if addr := strings.TrimSpace(*addrFlag); addr != "" {
		cfg.Server.Addr = addr
	}
	fallback := pagefill.SamplesFS()
	if dir := strings.TrimSpace(*templatesFlag); dir != "" {
		cfg.Templates.Dir = dir
		fallback = nil
	}

	fsys, err := cfg.TemplatesFS(fallback)
	if err != nil {
		log.Fatalf("templates: %v", err)
	}
	templates, err := pagefill.LoadTemplates(fsys)
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	options, err := cfg.PipelineOptions(templates)
	if err != nil {
		log.Fatalf("pipeline: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api, err := httpapi.New(ctx,
		httpapi.WithStore(templates),
		httpapi.WithPipeline(pagefill.NewPipeline(options...)),
		httpapi.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
		httpapi.WithLogf(log.Printf),
	)
	if err != nil {
		log.Fatalf("api: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", api)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: mux,
	}

	log.Printf("listening on %s (%d templates)", cfg.Server.Addr, templates.Len())

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		log.Fatalf("listen: %v", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
