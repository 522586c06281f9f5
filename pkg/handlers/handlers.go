package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/eknkc/pug"
	"github.com/eknkc/pug/compiler"

	"portfolio-catalog/pkg/catalog"
	"portfolio-catalog/pkg/services"
)

// Handlers serves preview pages and JSON feeds for a catalog service
type Handlers struct {
	service  *services.Service
	viewsDir string
	logger   *slog.Logger
}

// New creates handlers that render pug views from viewsDir. A relative
// viewsDir is resolved against the working directory once, here.
func New(service *services.Service, viewsDir string, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	if abs, err := filepath.Abs(viewsDir); err == nil {
		viewsDir = abs
	}
	return &Handlers{service: service, viewsDir: viewsDir, logger: logger}
}

// Routes registers every handler. Site assets are served from siteDir so
// thumbnails resolve the way they do on the published site.
func (h *Handlers) Routes(siteDir string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /assets/", http.FileServer(http.Dir(siteDir)))
	mux.HandleFunc("GET /{$}", h.IndexHandler)
	mux.HandleFunc("GET /report.json", h.ReportHandler)
	mux.HandleFunc("GET /feed.json", h.FeedHandler)
	mux.HandleFunc("POST /admin/reload", h.ReloadHandler)
	mux.HandleFunc("GET /{slug}", h.PageHandler)
	return h.withRequestLog(mux)
}

// IndexHandler renders every hub and gallery
func (h *Handlers) IndexHandler(w http.ResponseWriter, _ *http.Request) {
	h.logger.Debug("generating index")

	index, err := h.service.GetIndex()
	if err != nil {
		h.serverError(w, "load catalog", err)
		return
	}
	h.render(w, "index.pug", index)
}

// PageHandler renders the gallery or hub named by the last path segment, the
// same way a hub entry target is resolved
func (h *Handlers) PageHandler(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSuffix(r.PathValue("slug"), ".html")

	if gallery, err := h.service.GetGallery(slug); err == nil {
		h.logger.Debug("generating gallery page", slog.String("slug", slug))
		h.render(w, "gallery.pug", gallery)
		return
	} else if !errors.Is(err, services.ErrNotFound) {
		h.serverError(w, "load catalog", err)
		return
	}

	hub, err := h.service.GetHub(slug)
	if errors.Is(err, services.ErrNotFound) {
		h.logger.Info("page not found", slog.String("slug", slug))
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, "load catalog", err)
		return
	}
	h.logger.Debug("generating hub page", slog.String("slug", slug))
	h.render(w, "hub.pug", hub)
}

// FeedHandler serves every gallery with its resolved members as JSON
func (h *Handlers) FeedHandler(w http.ResponseWriter, _ *http.Request) {
	h.logger.Debug("generating feed")

	galleries, err := h.service.GetGalleries()
	if err != nil {
		h.serverError(w, "load catalog", err)
		return
	}
	h.writeJSON(w, http.StatusOK, galleries)
}

// ReportHandler serves the consistency report as JSON. A catalog that
// cannot be built is reported with status 422 and its load errors.
func (h *Handlers) ReportHandler(w http.ResponseWriter, _ *http.Request) {
	report, err := h.service.Check()
	if err != nil {
		if loadErrs := catalog.LoadErrors(err); len(loadErrs) > 0 {
			h.writeJSON(w, http.StatusUnprocessableEntity, loadErrorBody(loadErrs))
			return
		}
		h.serverError(w, "check catalog", err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handlers) render(w http.ResponseWriter, view string, data any) {
	template, err := pug.CompileFile(view, pug.Options{Dir: compiler.FsDir(h.viewsDir)})
	if err != nil {
		h.serverError(w, "template error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := template.Execute(w, data); err != nil {
		h.logger.Error("template execution error", slog.String("view", view), slog.Any("error", err))
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		h.serverError(w, "encode json", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.logger.Debug("write response", slog.Any("error", err))
	}
}

func (h *Handlers) serverError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, slog.Any("error", err))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

type loadErrorJSON struct {
	Kind    catalog.Kind `json:"kind"`
	Subject string       `json:"subject"`
	Sources []string     `json:"sources,omitempty"`
	Error   string       `json:"error"`
}

func loadErrorBody(errs []*catalog.LoadError) map[string]any {
	out := make([]loadErrorJSON, 0, len(errs))
	for _, e := range errs {
		out = append(out, loadErrorJSON{Kind: e.Kind, Subject: e.Subject, Sources: e.Sources, Error: e.Error()})
	}
	return map[string]any{"load_errors": out}
}
