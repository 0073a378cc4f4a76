package productboard

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jpalmerr/productboard/dashboard"
	"github.com/jpalmerr/productboard/internal/client"
	"github.com/jpalmerr/productboard/internal/server"
	"github.com/jpalmerr/productboard/internal/store"
	"github.com/jpalmerr/productboard/product"
	"github.com/jpalmerr/productboard/view"
)

const defaultPort = 8080

// Board owns the dashboard state and drives the product fetch and health
// probe that feed it.
//
// Board is created using [New] with functional options and started with
// [Board.Start]. All state changes go through [Board.Dispatch], which applies
// [view.Reduce] under a single lock; readers get immutable snapshots.
//
// The typical lifecycle is:
//
//	b, err := productboard.New(productboard.WithBaseURL("http://localhost:5103"))
//	if err != nil {
//	    slog.Error("failed to create board", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	b.Start(ctx) // blocks until context cancelled
type Board struct {
	title          string
	baseURL        string
	port           int
	logger         *slog.Logger
	stateCallbacks []func(view.State)
	now            func() time.Time

	client *client.Client
	store  *store.MemoryStore

	// mu serialises reducer transitions
	mu sync.Mutex

	// runMu guards runCtx, stopped and every wg.Add, so no background
	// work is added once Start has begun waiting for it
	runMu   sync.Mutex
	runCtx  context.Context
	stopped bool
	wg      sync.WaitGroup
}

// New creates a new [Board] with the given options.
//
// Defaults:
//   - Base URL: http://localhost:5103
//   - Port: 8080
//   - No request timeout beyond the transport defaults
//
// Returns an error if any option is invalid.
func New(opts ...Option) (*Board, error) {
	cfg := &boardConfig{
		baseURL: client.DefaultBaseURL,
		port:    defaultPort,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.port < 1 || cfg.port > 65535 {
		return nil, fmt.Errorf("port must be between 1 and 65535, got %d", cfg.port)
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	apiClient, err := client.New(cfg.baseURL,
		client.WithTimeout(cfg.requestTimeout),
		client.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	now := cfg.now
	if now == nil {
		now = time.Now
	}

	return &Board{
		title:          cfg.title,
		baseURL:        apiClient.BaseURL(),
		port:           cfg.port,
		logger:         logger,
		stateCallbacks: cfg.stateCallbacks,
		now:            now,
		client:         apiClient,
		store:          store.NewMemoryStore(view.Initial()),
	}, nil
}

// Start serves the dashboard and loads the product list.
//
// Start is a blocking call that runs until the provided context is cancelled.
// During execution:
//
//   - The HTTP server starts on the configured port
//   - The product list is fetched and the API health is checked
//   - Each newly connected dashboard client fetches and checks again
//     ([Board.RequestMount]); otherwise fetches happen only on
//     user-requested refreshes
//
// Returns nil on graceful shutdown. Returns an error if the HTTP server fails to start.
func (b *Board) Start(ctx context.Context) error {
	b.logger.Info("productboard starting", "api_base_url", b.baseURL)
	b.logger.Info("dashboard available", "url", fmt.Sprintf("http://localhost:%d", b.port))

	// check if context already cancelled
	if ctx.Err() != nil {
		return nil
	}

	b.runMu.Lock()
	b.runCtx = ctx
	b.stopped = false
	b.runMu.Unlock()

	httpServer := server.NewServer(b.store, b, b.port, dashboard.Assets, b.title, b.logger)
	if err := httpServer.Start(ctx); err != nil {
		b.stop()
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	if runCtx, ok := b.acquire(); ok {
		go func() {
			defer b.wg.Done()
			b.Mount(runCtx)
		}()
	}

	<-ctx.Done()
	b.stop()
	b.wg.Wait()
	b.client.Close()
	b.logger.Info("productboard stopped")
	return nil
}

// Mount performs what a freshly opened view does: it fetches the product
// list and probes API health concurrently, and returns when both resolved.
func (b *Board) Mount(ctx context.Context) {
	b.Dispatch(view.FetchStarted{})
	b.resolveMount(ctx)
}

// RequestMount starts a product fetch and a health check in the background
// and returns the state after the fetch was marked as started. The dashboard
// server calls it when a new client connects.
//
// Like [Board.RequestRefresh], the work is bound to the context passed to
// [Board.Start]. Once the board has stopped, RequestMount only returns the
// current state.
func (b *Board) RequestMount() view.State {
	ctx, ok := b.acquire()
	if !ok {
		return b.State()
	}
	state := b.Dispatch(view.FetchStarted{})

	go func() {
		defer b.wg.Done()
		b.resolveMount(ctx)
	}()

	return state
}

// Refresh fetches the product list and reduces the outcome into the state.
//
// Concurrent refreshes are not cancelled or serialised: each one applies its
// result when it resolves, so the last response to arrive wins.
//
// Returns the fetch error, if any. When ctx is cancelled before the fetch
// resolves the outcome is discarded and the fetch is marked abandoned, which
// clears the refreshing flag but keeps the fetch status.
func (b *Board) Refresh(ctx context.Context) error {
	b.Dispatch(view.FetchStarted{})
	return b.fetch(ctx)
}

// RequestRefresh starts a refresh in the background and returns the state
// after the fetch was marked as started.
//
// The fetch is bound to the context passed to [Board.Start], or to
// context.Background() if the board was never started. Once the board has
// stopped, RequestRefresh only returns the current state.
func (b *Board) RequestRefresh() view.State {
	ctx, ok := b.acquire()
	if !ok {
		return b.State()
	}
	state := b.Dispatch(view.FetchStarted{})

	go func() {
		defer b.wg.Done()
		_ = b.fetch(ctx)
	}()

	return state
}

// ProbeHealth checks API health once and records the result.
func (b *Board) ProbeHealth(ctx context.Context) view.HealthStatus {
	status := view.HealthOffline
	if b.client.ProbeHealth(ctx).Online() {
		status = view.HealthOnline
	}
	if ctx.Err() != nil {
		return status
	}

	b.Dispatch(view.HealthResolved{Status: status})
	b.logger.Info("api health", "status", status.String())
	return status
}

// Dispatch reduces action into the current state, publishes the result and
// returns it. Registered state callbacks run after the state is published.
func (b *Board) Dispatch(action view.Action) view.State {
	b.mu.Lock()
	next := view.Reduce(b.store.Get(), action)
	b.store.Update(next)
	b.mu.Unlock()

	for _, cb := range b.stateCallbacks {
		b.invokeCallbackSafe(cb, next)
	}
	return next
}

// State returns the current state snapshot.
func (b *Board) State() view.State {
	return b.store.Get()
}

// Model returns the rendered view of the current state.
func (b *Board) Model() view.Model {
	return view.Render(b.State())
}

// ExportCSV serialises the currently visible products.
// The boolean is false when nothing is visible or no list is loaded.
func (b *Board) ExportCSV() ([]byte, bool) {
	state := b.State()
	if state.Status() != view.FetchReady {
		return nil, false
	}
	return state.ExportCSV()
}

// Visible returns the currently visible products.
func (b *Board) Visible() []product.Product {
	return b.State().Visible()
}

// BaseURL returns the upstream API base URL.
func (b *Board) BaseURL() string {
	return b.baseURL
}

// Port returns the configured HTTP port for the dashboard server.
func (b *Board) Port() int {
	return b.port
}

// Title returns the configured dashboard title.
func (b *Board) Title() string {
	return b.title
}

// fetch runs one product request and dispatches its outcome.
func (b *Board) fetch(ctx context.Context) error {
	products, err := b.client.FetchProducts(ctx)
	if ctx.Err() != nil {
		b.Dispatch(view.FetchAbandoned{})
		return ctx.Err()
	}

	if err != nil {
		b.logger.Warn("product fetch failed", "error", err.Error())
		b.Dispatch(view.FetchFailed{Message: view.ErrorMessage(client.ServerMessage(err))})
		return err
	}

	b.Dispatch(view.FetchSucceeded{Products: products, At: b.now()})
	b.logger.Info("products loaded", "count", len(products))
	return nil
}

// resolveMount runs the fetch and the health check of a mount concurrently.
// The fetch must already be marked as started.
func (b *Board) resolveMount(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = b.fetch(ctx)
	}()
	go func() {
		defer wg.Done()
		b.ProbeHealth(ctx)
	}()
	wg.Wait()
}

// acquire registers one background task with wg and returns the context it
// runs under. It reports false once the board has stopped or its run
// context is done; the caller must then not start the task. On success the
// caller must call b.wg.Done when the task ends.
func (b *Board) acquire() (context.Context, bool) {
	b.runMu.Lock()
	defer b.runMu.Unlock()

	if b.stopped {
		return nil, false
	}
	ctx := b.runCtx
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		return nil, false
	}
	b.wg.Add(1)
	return ctx, true
}

// stop refuses further background tasks. Tasks acquired before stop are
// still awaited by Start.
func (b *Board) stop() {
	b.runMu.Lock()
	b.stopped = true
	b.runCtx = nil
	b.runMu.Unlock()
}

// invokeCallbackSafe calls a state callback with panic recovery.
// Panics are logged with a correlation ID but do not propagate.
func (b *Board) invokeCallbackSafe(cb func(view.State), state view.State) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("state callback panicked",
				"correlation_id", uuid.NewString(),
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	cb(state)
}
