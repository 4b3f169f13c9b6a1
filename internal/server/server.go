// Package server exposes the portfolio and its projections over HTTP, with a
// live stream of change events.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/debtburn/internal/notify"
	"github.com/theirongolddev/debtburn/internal/portfolio"
)

// Config controls the HTTP service.
type Config struct {
	Addr         string
	EventsBuffer int
	DefaultExtra float64 // used when a request has no ?extra=
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	Loans           int       `json:"loans"`
	Bills           int       `json:"bills"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
	LastEventAt     time.Time `json:"last_event_at,omitempty"`
}

// Service is the HTTP API. It also implements notify.Notifier: every event it
// receives is kept in a ring buffer and pushed to stream subscribers.
type Service struct {
	cfg       Config
	portfolio *portfolio.Service
	logger    *logrus.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	events      []notify.Event
	lastEventAt time.Time

	nextSubID int
	subs      map[int]chan notify.Event
}

// New returns a service with defaults applied to cfg. Attach a portfolio
// before serving.
func New(cfg Config, logger *logrus.Logger) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8788"
	}

	return &Service{
		cfg:       cfg,
		logger:    logger,
		startedAt: time.Now(),
		subs:      make(map[int]chan notify.Event),
	}
}

// Attach sets the portfolio the API reads and changes. The portfolio's
// notifier is expected to include s.
func (s *Service) Attach(p *portfolio.Service) {
	s.portfolio = p
}

// Notify implements notify.Notifier.
func (s *Service) Notify(_ context.Context, ev notify.Event) error {
	s.publishEvent(ev)
	return nil
}

// Handler returns the API routes.
func (s *Service) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	v1.HandleFunc("/summary", s.handleSummary).Methods(http.MethodGet)
	v1.HandleFunc("/projection", s.handleProjection).Methods(http.MethodGet)
	v1.HandleFunc("/strategies", s.handleStrategies).Methods(http.MethodGet)

	v1.HandleFunc("/loans", s.handleListLoans).Methods(http.MethodGet)
	v1.HandleFunc("/loans", s.handleAddLoan).Methods(http.MethodPost)
	v1.HandleFunc("/loans/{id}", s.handleUpdateLoan).Methods(http.MethodPut)
	v1.HandleFunc("/loans/{id}", s.handleDeleteLoan).Methods(http.MethodDelete)

	v1.HandleFunc("/bills", s.handleListBills).Methods(http.MethodGet)
	v1.HandleFunc("/bills", s.handleAddBill).Methods(http.MethodPost)
	v1.HandleFunc("/bills/{id}", s.handleUpdateBill).Methods(http.MethodPut)
	v1.HandleFunc("/bills/{id}", s.handleDeleteBill).Methods(http.MethodDelete)

	v1.HandleFunc("/events", s.handleEvents).Methods(http.MethodGet)
	v1.HandleFunc("/stream", s.handleStream).Methods(http.MethodGet)

	r.Use(s.logRequests)
	return r
}

// Run serves the API until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	if s.portfolio == nil {
		return errors.New("server: no portfolio attached")
	}

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.WithField("addr", s.cfg.Addr).Info("serving HTTP API")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Service) publishEvent(ev notify.Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}
	s.lastEventAt = ev.At

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) recentEvents() []notify.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]notify.Event, len(s.events))
	copy(events, s.events)
	return events
}

func (s *Service) addSubscriber(ch chan notify.Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

func (s *Service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSSE(w http.ResponseWriter, ev notify.Event) {
	data, err := ev.ToJSON()
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Kind)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}
