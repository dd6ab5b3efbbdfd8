// Package web is the browser front end: pick a company, run the pipeline,
// see the row and download the dataset.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"CrawlerLinkedinAbout/internal/company"
	"CrawlerLinkedinAbout/internal/config"
	"CrawlerLinkedinAbout/internal/dataset"
	"CrawlerLinkedinAbout/internal/extract"
	"CrawlerLinkedinAbout/internal/pipeline"
	"CrawlerLinkedinAbout/internal/scraper"
)

const (
	defaultSlug      = "hcltech"
	downloadFilename = "company_data.csv"
)

// Runner runs one scrape. pipeline.Run in production.
type Runner func(ctx context.Context, slug string, onEvent func(pipeline.Event)) (pipeline.Result, error)

type Server struct {
	cfg *config.Config
	run Runner
	log *slog.Logger

	// one browser session at a time
	busy sync.Mutex
}

func New(cfg *config.Config, run Runner, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	if run == nil {
		run = func(ctx context.Context, slug string, onEvent func(pipeline.Event)) (pipeline.Result, error) {
			return pipeline.Run(ctx, cfg, slug, pipeline.Options{OnEvent: onEvent, Logger: log})
		}
	}
	return &Server{cfg: cfg, run: run, log: log}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/preview", s.handlePreview)
	r.Post("/run", s.handleRun)
	r.Get("/download", s.handleDownload)
	return r
}

type runPayload struct {
	Company string `json:"company"`
}

type runResponse struct {
	Ok        bool            `json:"ok"`
	Message   string          `json:"message"`
	URL       string          `json:"url,omitempty"`
	RunID     string          `json:"run_id,omitempty"`
	StartedAt string          `json:"started_at"`
	EndedAt   string          `json:"ended_at"`
	Record    *company.Record `json:"record,omitempty"`
	PhoneE164 string          `json:"phone_e164,omitempty"`
	Rows      int             `json:"rows,omitempty"`
}

type streamEvent struct {
	Type string `json:"type"` // "log" | "done"
	Msg  string `json:"msg,omitempty"`
	Data any    `json:"data,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{Slug: defaultSlug, Columns: company.Columns}
	if ref, err := company.NewRef(defaultSlug); err == nil {
		data.URL = ref.URL
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		s.log.Error("renderizando página", "err", err)
	}
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	ref, err := company.NewRef(r.URL.Query().Get("company"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"slug": ref.Slug, "url": ref.URL})
}

func writeEvent(w http.ResponseWriter, ev streamEvent) {
	b, _ := json.Marshal(ev)
	_, _ = w.Write(b)
	_, _ = w.Write([]byte("\n"))
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var p runPayload
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "payload inválido", http.StatusBadRequest)
			return
		}
	} else {
		p.Company = r.FormValue("company")
	}
	if strings.TrimSpace(p.Company) == "" {
		http.Error(w, "informe a empresa", http.StatusBadRequest)
		return
	}

	if !s.busy.TryLock() {
		http.Error(w, "já existe uma extração em andamento", http.StatusConflict)
		return
	}
	defer s.busy.Unlock()

	w.Header().Set("Content-Type", "application/x-ndjson; charset=utf-8")
	w.Header().Set("X-Accel-Buffering", "no")
	w.Header().Set("Cache-Control", "no-cache")

	start := time.Now()
	writeEvent(w, streamEvent{Type: "log", Msg: fmt.Sprintf("▶️ Iniciando extração de %q ...", strings.TrimSpace(p.Company))})

	res, err := s.run(r.Context(), p.Company, func(ev pipeline.Event) {
		writeEvent(w, streamEvent{Type: "log", Msg: fmt.Sprintf("[%s] %s", ev.Stage, ev.Msg)})
	})

	resp := runResponse{
		Ok:        err == nil,
		Message:   "ok",
		URL:       res.Ref.URL,
		RunID:     res.RunID,
		StartedAt: start.Format(time.RFC3339),
		EndedAt:   time.Now().Format(time.RFC3339),
		Record:    res.Record,
		Rows:      len(res.Dataset.Rows),
	}
	if res.Record != nil {
		if e164, ok := extract.FormatE164(res.Record.Phone, s.cfg.Web.PhoneRegion); ok {
			resp.PhoneE164 = e164
		}
	}
	if err != nil {
		resp.Message = userMessage(err)
		s.log.Warn("extração falhou", "company", p.Company, "err", err)
	}
	writeEvent(w, streamEvent{Type: "done", Data: resp})
}

func userMessage(err error) string {
	var perr *dataset.PersistenceError
	switch {
	case errors.Is(err, scraper.ErrAboutSectionNotFound):
		return "Falha ao extrair os dados da empresa."
	case errors.As(err, &perr):
		return fmt.Sprintf("Dados extraídos, mas não foi possível gravar %s. Feche o arquivo e tente de novo.", perr.Path)
	default:
		return "Ocorreu um erro: " + err.Error()
	}
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	t, err := dataset.Load(s.cfg.Output.CSVPath)
	if errors.Is(err, os.ErrNotExist) {
		http.Error(w, "nenhum dado gravado ainda", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+downloadFilename)
	if err := dataset.Encode(w, t); err != nil {
		s.log.Error("enviando csv", "err", err)
	}
}
