package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CrawlerLinkedinAbout/internal/config"
	"CrawlerLinkedinAbout/internal/logger"
	"CrawlerLinkedinAbout/internal/web"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "Arquivo de configuração TOML")
	addr := flag.String("addr", "", "Endereço HTTP (default :8080)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("fatal: carregando configuração", "err", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Web.Addr = *addr
	}
	logger.Init(cfg)

	srv := &http.Server{
		Addr:              cfg.Web.Addr,
		Handler:           web.New(cfg, nil, slog.Default()).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("Servidor rodando", "url", "http://localhost"+cfg.Web.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}
