package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"CrawlerLinkedinAbout/internal/company"
	"CrawlerLinkedinAbout/internal/config"
	"CrawlerLinkedinAbout/internal/dataset"
	"CrawlerLinkedinAbout/internal/logger"
	"CrawlerLinkedinAbout/internal/pipeline"
	"CrawlerLinkedinAbout/internal/scraper"
)

func main() {
	var (
		slug       = flag.String("company", "", "Slug da empresa na URL do LinkedIn (ex: hcltech)")
		configPath = flag.String("config", config.DefaultPath, "Arquivo de configuração TOML")
		out        = flag.String("out", "", "CSV de saída (default: company_linkedin_about.csv)")
		headless   = flag.Bool("headless", true, "Rodar Chromium em modo headless")
		stealth    = flag.Bool("stealth", false, "Injetar o script de evasão go-rod/stealth")
		dumpHTML   = flag.Bool("dump-html", false, "Salvar HTML da aba About para depuração")
	)
	flag.Parse()

	if *slug == "" && flag.NArg() > 0 {
		*slug = flag.Arg(0)
	}
	if *slug == "" {
		fmt.Fprintln(os.Stderr, "uso: crawler --company <slug> [--config config.toml] [--out arquivo.csv] [--headless=false] [--stealth] [--dump-html]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("fatal: carregando configuração", "err", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "headless":
			cfg.Browser.Headless = *headless
		case "stealth":
			cfg.Browser.Stealth = *stealth
		case "out":
			cfg.Output.CSVPath = *out
		}
	})

	logger.Init(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	var opts pipeline.Options
	if *dumpHTML {
		opts.DumpPath = filepath.Join(filepath.Dir(cfg.Output.CSVPath), "about_page.html")
	}

	res, err := pipeline.Run(ctx, cfg, *slug, opts)
	if res.Record != nil {
		printRecord(*res.Record)
	}

	var perr *dataset.PersistenceError
	switch {
	case err == nil:
		slog.Info("🏁 Fim.", "path", cfg.Output.CSVPath)
	case errors.Is(err, scraper.ErrAboutSectionNotFound):
		slog.Error("❌ Falha ao extrair os dados da empresa", "url", res.Ref.URL)
		os.Exit(1)
	case errors.As(err, &perr):
		slog.Error("⚠️ Dados extraídos mas não gravados; feche o arquivo e rode de novo", "path", perr.Path, "err", perr.Err)
		os.Exit(1)
	default:
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func printRecord(r company.Record) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	values := r.Values()
	for i, c := range company.Columns {
		fmt.Fprintf(w, "%s\t%s\n", c, values[i])
	}
	_ = w.Flush()
}
