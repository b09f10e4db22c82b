// Package preview serves rendered drafts and published versions over HTTP.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/benedict2310/sitebuilder/internal/bundle"
	"github.com/benedict2310/sitebuilder/internal/release"
	"github.com/benedict2310/sitebuilder/pkg/model"
)

const shutdownTimeout = 10 * time.Second

type Config struct {
	Bind           string
	Port           int
	AllowedOrigins []string
	SocialCards    bool
}

func (c Config) ListenAddr() string {
	return net.JoinHostPort(c.Bind, strconv.Itoa(c.Port))
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Bind) == "" {
		return fmt.Errorf("bind address is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}

type Server struct {
	cfg      Config
	logger   *slog.Logger
	source   Source
	build    func(context.Context, model.ProjectData) (release.Site, error)
	debounce time.Duration

	mu    sync.Mutex
	snap  *Snapshot
	sites map[string]release.Site

	router     chi.Router
	listener   net.Listener
	httpServer *http.Server
	errCh      chan error
}

func New(cfg Config, source Source, logger *slog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("preview source is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		source:   source,
		debounce: 300 * time.Millisecond,
		sites:    map[string]release.Site{},
		errCh:    make(chan error, 1),
	}
	s.build = func(ctx context.Context, doc model.ProjectData) (release.Site, error) {
		return release.Build(ctx, doc, release.Options{SocialCards: cfg.SocialCards, Logger: logger})
	}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)
	r.Use(s.requestLogger)

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Get("/published", redirectSlash)
	r.Get("/published/*", s.servePublished)
	r.Get("/versions/{id}", redirectSlash)
	r.Get("/versions/{id}/*", s.serveVersion)
	r.Get("/*", s.serveDraft)
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("preview request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func redirectSlash(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, r.URL.Path+"/", http.StatusMovedPermanently)
}

func (s *Server) serveDraft(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r.Context())
	if err != nil {
		s.fail(w, http.StatusServiceUnavailable, err)
		return
	}
	s.serveSite(w, r, "draft", snap.Draft)
}

func (s *Server) servePublished(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r.Context())
	if err != nil {
		s.fail(w, http.StatusServiceUnavailable, err)
		return
	}
	v, ok := snap.Latest()
	if !ok {
		http.Error(w, "nothing published yet", http.StatusNotFound)
		return
	}
	s.serveSite(w, r, "version:"+v.ID, v.Data)
}

func (s *Server) serveVersion(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r.Context())
	if err != nil {
		s.fail(w, http.StatusServiceUnavailable, err)
		return
	}
	id := chi.URLParam(r, "id")
	v, ok := snap.Version(id)
	if !ok {
		http.Error(w, fmt.Sprintf("version %q not found", id), http.StatusNotFound)
		return
	}
	s.serveSite(w, r, "version:"+v.ID, v.Data)
}

func (s *Server) serveSite(w http.ResponseWriter, r *http.Request, key string, doc model.ProjectData) {
	site, err := s.site(r.Context(), key, doc)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	rel := sitePath(chi.URLParam(r, "*"))
	content, ok := site.File(rel)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", bundle.ContentTypeForPath(rel))
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(content)
}

func sitePath(p string) string {
	p = strings.TrimPrefix(p, "/")
	if p == "" || strings.HasSuffix(p, "/") {
		p += "index.html"
	}
	return p
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	s.logger.Error("preview request failed", "status", status, "error", err)
	http.Error(w, err.Error(), status)
}

func (s *Server) snapshot(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap != nil {
		return *s.snap, nil
	}
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	s.snap = &snap
	return snap, nil
}

func (s *Server) site(ctx context.Context, key string, doc model.ProjectData) (release.Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if site, ok := s.sites[key]; ok {
		return site, nil
	}
	site, err := s.build(ctx, doc)
	if err != nil {
		return release.Site{}, err
	}
	s.sites[key] = site
	return site, nil
}

// Invalidate drops the cached snapshot and every built site.
func (s *Server) Invalidate() {
	s.mu.Lock()
	s.snap = nil
	s.sites = map[string]release.Site{}
	s.mu.Unlock()
	s.logger.Debug("preview cache invalidated")
}

func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.ListenAddr(), err)
	}
	s.listener = ln
	if !isLoopbackHost(s.cfg.Bind) {
		s.logger.Warn("binding to non-loopback address", "bind", s.cfg.Bind)
	}
	s.logger.Info("preview server starting", "listen_addr", ln.Addr().String())

	go func() {
		err := s.httpServer.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.errCh <- err
		}
		close(s.errCh)
	}()
	return nil
}

func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	select {
	case err := <-s.errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.listener == nil {
		return nil
	}
	s.logger.Info("preview server shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	if err, ok := <-s.errCh; ok && err != nil {
		return fmt.Errorf("http server failed: %w", err)
	}
	s.listener = nil
	return nil
}

func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func isLoopbackHost(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
