package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"spendview/internal/cache"
	"spendview/internal/config"
	"spendview/internal/core"
	"spendview/internal/log"
	appweb "spendview/web"
)

// refreshesPerMinute bounds manual refreshes per client IP; each one is a
// fresh Sheets API call.
const refreshesPerMinute = 10

// Server serves the dashboard page, the chart JSON endpoints, and the export
// downloads. All worksheet reads go through the SheetCache.
type Server struct {
	http.Server
	templates *template.Template
	cache     *cache.SheetCache
	limiter   *refreshLimiter

	// dash holds the current dashboard settings; swapped atomically when the
	// config file watcher reloads.
	dash atomic.Pointer[config.Dashboard]

	// envDefaults backs any field the dashboard file leaves empty.
	envDefaults core.FetchConfig

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, sc *cache.SheetCache, cfg *config.Config, dash *config.Dashboard) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		cache:   sc,
		limiter: newRefreshLimiter(refreshesPerMinute),
		envDefaults: core.FetchConfig{
			Ref: core.SheetRef{
				SpreadsheetID: cfg.SpreadsheetID,
				Worksheet:     cfg.WorksheetName,
			},
			Window: cfg.FreshnessWindow,
		},
	}
	if dash == nil {
		dash = config.DefaultDashboard()
	}
	s.dash.Store(dash)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.withMiddleware(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/api/rows", s.withMiddleware(s.handleRows))
	mux.HandleFunc("/api/summary", s.withMiddleware(s.handleSummary))
	mux.HandleFunc("/api/charts/", s.withMiddleware(s.handleChart))
	mux.HandleFunc("/api/refresh", s.withMiddleware(s.handleRefresh))
	mux.HandleFunc("/export/csv", s.withMiddleware(s.handleExportCSV))
	mux.HandleFunc("/export/xlsx", s.withMiddleware(s.handleExportXLSX))

	// Attach a component logger to every request context.
	httpLogger := log.New(log.DefaultConfig()).WithComponent(log.ComponentHTTP)
	s.Server.Handler = log.Middleware(httpLogger)(mux)

	return s
}

// UpdateDashboard swaps in freshly loaded dashboard settings. Wired to the
// config file watcher.
func (s *Server) UpdateDashboard(d *config.Dashboard) {
	if d != nil {
		s.dash.Store(d)
	}
}

// dashboard returns the current dashboard settings.
func (s *Server) dashboard() *config.Dashboard {
	return s.dash.Load()
}

// withMiddleware adds client IP extraction, request IDs, security headers,
// refresh rate limiting, and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, clientIP)

		// Refreshes bypass the cache, so they carry the upstream quota cost.
		if r.Method == http.MethodPost && !s.limiter.allow(clientIP) {
			slog.WarnContext(ctx, "Refresh rate limit exceeded", log.FieldClientIP, clientIP, log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Too many refreshes. Please try again later.", http.StatusTooManyRequests)
			return
		}

		setSecurityHeaders(w)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, duration.Milliseconds(),
			log.FieldClientIP, clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Shutdown gracefully shuts down the server and its helper goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
