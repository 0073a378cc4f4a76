package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/jpalmerr/productboard/internal/store"
	"github.com/jpalmerr/productboard/product"
	"github.com/jpalmerr/productboard/view"
)

const (
	// sseWriteTimeout is the maximum time allowed for a single SSE write operation.
	// This prevents goroutine leaks when clients are slow or disconnected.
	sseWriteTimeout = 5 * time.Second

	// shutdownTimeout bounds graceful shutdown of in-flight requests.
	shutdownTimeout = 5 * time.Second

	// maxActionBodySize caps POST /api/actions request bodies.
	maxActionBodySize = 64 << 10

	// defaultTitle is used when no custom title is configured.
	defaultTitle = "ProductBoard"

	// titlePlaceholder is the marker in HTML that gets replaced with the actual title.
	titlePlaceholder = "{{.Title}}"
)

// Action types accepted by POST /api/actions.
const (
	ActionSearch   = "search"
	ActionCategory = "category"
	ActionSort     = "sort"
	ActionClear    = "clear"
	ActionRefresh  = "refresh"
)

// Controller drives the shared product fetch and health check.
type Controller interface {
	// RequestMount starts a product fetch and a health check in the
	// background and returns the state after the fetch was marked as
	// started. It is called once for every new dashboard client.
	RequestMount() view.State

	// RequestRefresh starts a product fetch in the background and returns
	// the state after the fetch was marked as started.
	RequestRefresh() view.State
}

// ActionRequest is the body of POST /api/actions.
//
// Seq orders the actions of one client: a filter action with a Seq not
// greater than the last applied one is ignored. Zero disables the check.
type ActionRequest struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Seq   uint64 `json:"seq,omitempty"`
}

// Server handles HTTP requests for the dashboard and its API.
//
// Server provides these endpoints:
//   - GET /: Serves the embedded dashboard HTML
//   - GET /api/state: Returns the rendered view model as JSON
//   - POST /api/actions: Applies a user action and returns the new model
//   - GET /api/export: Downloads the visible products as products.csv
//   - GET /api/sse: Server-Sent Events stream of view models
//
// The product list, fetch status and health are shared. Search, category and
// sort belong to each client, identified by the "client" query parameter;
// /api/state and /api/sse assign an id (returned in X-Client-ID) when none is
// given. The first request of a new client mounts the view, which fetches the
// products and checks health.
//
// The server is designed for graceful shutdown via context cancellation.
type Server struct {
	store      store.Store
	controller Controller
	sessions   *sessions
	port       int
	httpServer *http.Server
	assets     fs.FS
	title      string
	logger     *slog.Logger
}

// NewServer creates a new HTTP [Server].
//
// Parameters:
//   - st: Store holding the current view state
//   - ctrl: Controller that fetches for mounts and refreshes
//   - port: TCP port to listen on
//   - assets: Embedded filesystem containing dashboard assets (may be nil)
//   - title: Dashboard title (defaults to "ProductBoard" if empty)
//   - logger: Logger for server events
//
// The server is not started until [Server.Start] is called.
func NewServer(st store.Store, ctrl Controller, port int, assets fs.FS, title string, logger *slog.Logger) *Server {
	return &Server{
		store:      st,
		controller: ctrl,
		sessions:   newSessions(),
		port:       port,
		assets:     assets,
		title:      title,
		logger:     logger,
	}
}

// Handler returns the request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/actions", s.handleActions)
	mux.HandleFunc("/api/export", s.handleExport)
	mux.HandleFunc("/api/sse", s.handleSSE)

	if s.assets != nil {
		mux.HandleFunc("/", s.handleDashboard)
	}

	return mux
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns immediately after confirming the server
// is listening. The server will continue running until the context is
// cancelled, at which point it initiates a graceful shutdown with a 5-second
// timeout.
//
// Returns an error if the server fails to bind to the configured port.
func (s *Server) Start(ctx context.Context) error {
	// create listener first to verify port availability synchronously
	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.port, err)
	}

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// request contexts derive from ctx so SSE handlers end on shutdown
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
	}()

	return nil
}

// handleDashboard serves the main dashboard page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if s.assets == nil {
		http.Error(w, "Dashboard not found", http.StatusInternalServerError)
		return
	}

	content, err := fs.ReadFile(s.assets, "assets/index.html")
	if err != nil {
		http.Error(w, "Dashboard not found", http.StatusInternalServerError)
		return
	}

	// apply title substitution with HTML escaping to prevent XSS
	title := s.title
	if title == "" {
		title = defaultTitle
	}
	rendered := strings.ReplaceAll(string(content), titlePlaceholder, html.EscapeString(title))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err = w.Write([]byte(rendered)); err != nil {
		s.logger.Error("failed to write dashboard response", "error", err)
	}
}

// handleState returns the rendered model of the current state.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := s.attachClient(w, r)
	s.writeModel(w, s.clientState(id))
}

// handleActions applies one user action.
func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ActionRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxActionBodySize)).Decode(&req); err != nil {
		http.Error(w, "Invalid action body", http.StatusBadRequest)
		return
	}

	var action view.Action
	switch req.Type {
	case ActionSearch:
		action = view.SearchChanged{Term: req.Value}
	case ActionCategory:
		action = view.CategorySelected{Category: req.Value}
	case ActionSort:
		action = view.SortToggled{}
	case ActionClear:
		action = view.FiltersCleared{}
	case ActionRefresh:
		// refreshes the shared list; params stay as they are
	default:
		http.Error(w, fmt.Sprintf("Unknown action type %q", req.Type), http.StatusBadRequest)
		return
	}

	id := s.attachClient(w, r)
	if action == nil {
		next := s.controller.RequestRefresh()
		s.writeModel(w, next.WithParams(s.sessions.params(id)))
		return
	}

	params := s.sessions.apply(id, req.Seq, action)
	s.writeModel(w, s.store.Get().WithParams(params))
}

// handleExport downloads the visible products as CSV.
// Responds 204 No Content when there is nothing to export.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := s.clientState(r.URL.Query().Get(clientIDParam))
	if state.Status() != view.FetchReady {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	data, ok := state.ExportCSV()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", product.ExportContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", product.ExportFilename))
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(data); err != nil {
		s.logger.Error("failed to write export response", "error", err)
	}
}

// handleSSE streams rendered models via Server-Sent Events.
//
// The handler uses write deadlines to prevent goroutine leaks when clients are
// slow or disconnected.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	if _, ok := w.(http.Flusher); !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	rc := http.NewResponseController(w)
	deadlinesSupported := true

	writeAndFlush := func(state view.State) error {
		data, err := json.Marshal(view.Render(state))
		if err != nil {
			return err
		}

		if deadlinesSupported {
			if err := rc.SetWriteDeadline(time.Now().Add(sseWriteTimeout)); err != nil {
				s.logger.Warn("sse write deadlines not supported", "error", err)
				deadlinesSupported = false
			}
		}

		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return err
		}
		return rc.Flush()
	}

	ch := s.store.Subscribe()
	defer s.store.Unsubscribe(ch)

	id := s.attachClient(w, r)
	s.sessions.open(id)
	defer s.sessions.close(id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	if err := writeAndFlush(s.clientState(id)); err != nil {
		return
	}

	for {
		select {
		case state, ok := <-ch:
			if !ok {
				return
			}
			if err := writeAndFlush(state.WithParams(s.sessions.params(id))); err != nil {
				return
			}

		case <-r.Context().Done():
			// fires on both client disconnect and server shutdown
			return
		}
	}
}

// attachClient resolves the client of r, mounting the view for a client not
// seen before, and echoes its id in the X-Client-ID header.
func (s *Server) attachClient(w http.ResponseWriter, r *http.Request) string {
	id, created := s.sessions.attach(r.URL.Query().Get(clientIDParam))
	if created {
		s.logger.Debug("dashboard client connected", "client_id", id)
		s.controller.RequestMount()
	}
	w.Header().Set(ClientIDHeader, id)
	return id
}

// clientState combines the shared state with the params of client id.
func (s *Server) clientState(id string) view.State {
	return s.store.Get().WithParams(s.sessions.params(id))
}

func (s *Server) writeModel(w http.ResponseWriter, state view.State) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	if err := json.NewEncoder(w).Encode(view.Render(state)); err != nil {
		s.logger.Error("failed to encode state response", "error", err)
	}
}
