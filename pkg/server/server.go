package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vnest-dev/vnest/internal/errors"
	"github.com/vnest-dev/vnest/pkg/dom"
)

const tracerName = "github.com/vnest-dev/vnest/pkg/server"

// Config configures a Server.
type Config struct {
	// Addr is the listen address for Run (default: "localhost:3000").
	Addr string

	// Logger receives server logs (default: slog.Default()).
	Logger *slog.Logger

	// Registerer and Gatherer back /metrics
	// (default: the Prometheus global registry).
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	// Namespace prefixes metric names (default: "vnest").
	Namespace string

	// CheckOrigin validates WebSocket origins. Nil allows all origins.
	CheckOrigin func(*http.Request) bool

	// ShutdownTimeout bounds graceful shutdown (default: 10s).
	ShutdownTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = "localhost:3000"
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Registerer == nil {
		c.Registerer = prometheus.DefaultRegisterer
	}
	if c.Gatherer == nil {
		c.Gatherer = prometheus.DefaultGatherer
	}
	if c.Namespace == "" {
		c.Namespace = "vnest"
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	return c
}

// Server serves one live document.
type Server struct {
	config  Config
	doc     *dom.Document
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *metrics
	hub     *hub
	router  chi.Router

	// mu guards doc, the dirty flags and the pushed hashes.
	mu        sync.Mutex
	bodyDirty bool
	headDirty bool

	// hashes of the markup last broadcast, by message type
	pushed map[MessageType]uint64

	stopObserve func()
	httpServer  *http.Server
}

// New creates a Server for doc. The caller must not touch doc afterwards
// except through Update.
func New(doc *dom.Document, cfg Config) *Server {
	cfg = cfg.withDefaults()
	s := &Server{
		config:  cfg,
		doc:     doc,
		logger:  cfg.Logger.With("component", "server"),
		tracer:  otel.Tracer(tracerName),
		metrics: newMetrics(cfg.Registerer, cfg.Namespace),
		hub:     newHub(cfg.CheckOrigin),
		pushed:  make(map[MessageType]uint64),
	}
	s.hub.onDrop = func() { s.metrics.clients.Dec() }
	for _, msg := range s.markup(true, true) {
		s.pushed[msg.Type] = xxhash.Sum64String(msg.HTML)
	}
	s.stopObserve = doc.Observe(s.observe)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleSnapshot)
	r.Get("/_vnest/ws", s.handleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	s.router = r

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Router returns the chi router so callers can mount extra routes.
func (s *Server) Router() chi.Router {
	return s.router
}

// ClientCount returns the number of connected WebSocket clients.
func (s *Server) ClientCount() int {
	return s.hub.count()
}

// observe runs under s.mu: every document mutation happens inside Update
// or an event dispatch.
func (s *Server) observe(m dom.Mutation) {
	s.metrics.mutations.WithLabelValues(m.Op.String()).Inc()
	if s.inHead(m) {
		s.headDirty = true
		return
	}
	s.bodyDirty = true
}

func (s *Server) inHead(m dom.Mutation) bool {
	if m.Target == nil {
		return true
	}
	head := s.doc.Head()
	return head != nil && head.Contains(m.Target)
}

// Update runs fn with exclusive access to the document, then pushes any
// resulting changes to clients.
func (s *Server) Update(fn func(doc *dom.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := fn(s.doc)
	s.flush()
	return err
}

// Snapshot returns the full document HTML with the client script.
func (s *Server) Snapshot() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Server) snapshot() string {
	start := time.Now()
	defer func() { s.metrics.renderDuration.Observe(time.Since(start).Seconds()) }()

	html := s.doc.String()
	if i := strings.LastIndex(html, "</body>"); i >= 0 {
		return html[:i] + ClientScript + html[i:]
	}
	return html + ClientScript
}

// flush pushes pending changes. Markup identical to the last push is
// skipped: attribute writes are unconditional, so a burst of mutations can
// leave the serialized document unchanged. Caller holds s.mu.
func (s *Server) flush() {
	if !s.bodyDirty && !s.headDirty {
		return
	}
	var msgs []Message
	for _, msg := range s.markup(s.headDirty, s.bodyDirty) {
		sum := xxhash.Sum64String(msg.HTML)
		if last, ok := s.pushed[msg.Type]; ok && last == sum {
			continue
		}
		s.pushed[msg.Type] = sum
		msgs = append(msgs, msg)
	}
	s.bodyDirty, s.headDirty = false, false

	if len(msgs) == 0 {
		s.logger.Debug("update left markup unchanged")
		return
	}
	delivered := s.hub.broadcast(msgs...)
	s.metrics.pushes.Inc()
	s.logger.Debug("pushed update", "messages", len(msgs), "clients", delivered)
}

// markup returns the head and body messages selected by the flags.
func (s *Server) markup(withHead, withBody bool) []Message {
	var msgs []Message
	if withHead {
		if head := s.doc.Head(); head != nil {
			msgs = append(msgs, Message{Type: MessageHead, HTML: head.InnerHTML()})
		}
	}
	if withBody {
		if body := s.doc.Body(); body != nil {
			msgs = append(msgs, Message{Type: MessageBody, HTML: body.InnerHTML()})
		}
	}
	return msgs
}

// Click dispatches a click to the element with the given id and pushes
// the resulting changes. An unknown id is a no-op and reports false.
func (s *Server) Click(ctx context.Context, id string) bool {
	_, span := s.tracer.Start(ctx, "vnest.click",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attribute.String("vnest.event_target", id)),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	el := s.doc.GetElementByID(id)
	if el == nil {
		s.metrics.events.WithLabelValues("click", "not_found").Inc()
		span.SetAttributes(attribute.Bool("vnest.found", false))
		s.logger.Debug("click on unknown element", "id", id)
		return false
	}

	calls := el.Click()
	s.metrics.events.WithLabelValues("click", "ok").Inc()
	span.SetAttributes(
		attribute.Bool("vnest.found", true),
		attribute.Int("vnest.listeners", calls),
	)
	span.SetStatus(codes.Ok, "")
	s.flush()
	return true
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(s.Snapshot()))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.hub.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.metrics.wsErrors.WithLabelValues("upgrade").Inc()
		s.logger.Warn("websocket upgrade failed", "error", errors.New("E301").Wrap(err))
		return
	}

	// The current state goes out before the client joins the broadcast
	// set so it cannot miss or reorder an update.
	s.mu.Lock()
	initial := s.markup(true, true)
	err = s.hub.send(conn, initial...)
	if err == nil {
		s.hub.add(conn)
	}
	s.mu.Unlock()
	if err != nil {
		s.metrics.wsErrors.WithLabelValues("write").Inc()
		conn.Close()
		return
	}

	s.metrics.clients.Inc()
	s.logger.Debug("client connected", "remote", r.RemoteAddr)
	defer s.hub.remove(conn)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.metrics.wsErrors.WithLabelValues("read").Inc()
				s.logger.Warn("client dropped", "remote", r.RemoteAddr, "error", err)
			}
			return
		}
		s.handleMessage(r.Context(), data)
	}
}

func (s *Server) handleMessage(ctx context.Context, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		s.metrics.events.WithLabelValues("invalid", "error").Inc()
		s.logger.Warn("invalid client message", "error", errors.New("E302").Wrap(err))
		return
	}

	switch msg.Type {
	case MessageClick:
		s.Click(ctx, msg.ID)
	default:
		s.metrics.events.WithLabelValues(string(msg.Type), "error").Inc()
		s.logger.Warn("invalid client message",
			"error", errors.New("E302").WithDetail("unknown type "+string(msg.Type)))
	}
}

// Run listens on the configured address until ctx is done, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return errors.New("E303").Wrap(err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes client connections and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	s.stopObserve()
	s.mu.Unlock()
	s.hub.close()
	s.metrics.clients.Set(0)

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return errors.New("E303").Wrap(err)
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
