// Package relay serves the web form that hands page URLs to an external
// automation webhook and shows the document link the automation posts back.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/pagedoc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// PollInterval is how often the form page asks for a new result.
const PollInterval = 3 * time.Second

// Server is the relay HTTP handler.
type Server struct {
	router   chi.Router
	results  pagedoc.ResultStore
	webhook  pagedoc.Webhook
	log      *slog.Logger
	basePath string
}

// Option configures a Server.
type Option func(*Server)

// WithBasePath mounts the relay routes under path, e.g. "/zapier".
func WithBasePath(path string) Option {
	return func(s *Server) {
		s.basePath = path
	}
}

// NewServer creates and configures the relay server.
func NewServer(results pagedoc.ResultStore, webhook pagedoc.Webhook, log *slog.Logger, opts ...Option) *Server {
	s := &Server{
		results: results,
		webhook: webhook,
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.basePath = "/" + strings.Trim(s.basePath, "/")
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	routes := func(r chi.Router) {
		r.Get("/", s.handleForm)
		r.Post("/", s.handleSubmit)
		r.Post("/callback", s.handleCallback)
		r.Get("/result", s.handleResult)
	}
	if s.basePath == "/" {
		routes(r)
	} else {
		r.Route(s.basePath, routes)
	}

	s.router = r
}

// path joins the base path with a route.
func (s *Server) path(route string) string {
	if s.basePath == "/" {
		return "/" + route
	}
	if route == "" {
		return s.basePath
	}
	return s.basePath + "/" + route
}

var formTemplate = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html>
  <head>
    <title>Publish a page to Google Docs</title>
    <meta charset="utf-8" />
  </head>
  <body style="font-family: Arial; padding: 40px;">
    <h2>Publish a page to Google Docs</h2>

    <form method="POST" action="{{.Action}}">
      <p>Enter one URL</p>
      <input type="url" name="url" required placeholder="https://example.com" style="width: 400px; padding: 8px;" />
      <br /><br />
      <button type="submit">Generate Google Doc</button>
    </form>

    <p id="result" style="margin-top:20px;"></p>

    <script>
      setInterval(async () => {
        const res = await fetch({{.ResultPath}});
        const data = await res.json();
        if (data.url) {
          const a = document.createElement('a');
          a.href = data.url;
          a.target = '_blank';
          a.textContent = 'Open Google Doc';
          const p = document.getElementById('result');
          p.replaceChildren(a);
        }
      }, {{.PollMillis}});
    </script>
  </body>
</html>
`))

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := formTemplate.Execute(w, struct {
		Action     string
		ResultPath string
		PollMillis int64
	}{
		Action:     s.path(""),
		ResultPath: s.path("result"),
		PollMillis: PollInterval.Milliseconds(),
	})
	if err != nil {
		s.log.Error("rendering form", "err", err)
	}
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	pageURL := field(r, "url")
	if pageURL == "" {
		http.Error(w, "URL is required", http.StatusBadRequest)
		return
	}

	if err := s.webhook.Forward(r.Context(), pageURL); err != nil {
		s.log.Error("forwarding to webhook", "url", pageURL, "err", err)
		http.Error(w, "Failed to send to webhook", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, s.path(""), http.StatusFound)
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	docURL := field(r, "google_doc_url")
	if docURL == "" {
		jsonError(w, "google_doc_url missing", http.StatusBadRequest)
		return
	}

	s.results.SetResult(docURL)
	writeJSON(w, map[string]bool{"success": true})
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		URL *string `json:"url"`
	}{}
	if u, ok := s.results.Result(); ok {
		resp.URL = &u
	}
	writeJSON(w, resp)
}

// field reads a string field from a JSON or form-encoded request body.
func field(r *http.Request, name string) string {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return ""
		}
		v, _ := body[name].(string)
		return v
	}
	return r.PostFormValue(name)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// ListenAndServe serves handler on addr until ctx is canceled, then shuts
// down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, log *slog.Logger) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("relay listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down relay")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
