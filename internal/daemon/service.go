// Package daemon provides the long-running background financial monitor service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fundsight/fundsight/internal/config"
	"github.com/fundsight/fundsight/internal/model"
	"github.com/fundsight/fundsight/internal/pipeline"
	"github.com/fundsight/fundsight/internal/source"
	"github.com/fundsight/fundsight/internal/store"
)

// Config controls the daemon runtime behavior.
type Config struct {
	DataDir         string
	Client          string
	Keywords        config.Keywords
	DaysInMonth     int
	DelinquencyDays int
	UseCache        bool
	Interval        time.Duration
	Addr            string
	EventsBuffer    int
	Logger          zerolog.Logger
}

// Snapshot is a compact financial state for status/event payloads.
type Snapshot struct {
	At              time.Time       `json:"at"`
	TotalIncome     decimal.Decimal `json:"total_income"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	NetCashFlow     decimal.Decimal `json:"net_cash_flow"`
	CashOnHand      decimal.Decimal `json:"cash_on_hand"`
	DaysCashOnHand  decimal.Decimal `json:"days_cash_on_hand"`
	ProgramRatio    decimal.Decimal `json:"program_expense_ratio"`
	Transactions    int             `json:"transactions"`
	DelinquentLoans int             `json:"delinquent_loans"`
	SkippedRows     int             `json:"skipped_rows"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	TotalIncome     decimal.Decimal `json:"total_income"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	NetCashFlow     decimal.Decimal `json:"net_cash_flow"`
	Transactions    int             `json:"transactions"`
	DelinquentLoans int             `json:"delinquent_loans"`
}

func (d Delta) isZero() bool {
	return d.TotalIncome.IsZero() &&
		d.TotalExpenses.IsZero() &&
		d.NetCashFlow.IsZero() &&
		d.Transactions == 0 &&
		d.DelinquentLoans == 0
}

// Event is emitted whenever the financial snapshot updates.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DataDir         string    `json:"data_dir"`
	Client          string    `json:"client"`
	Snapshot        Snapshot  `json:"snapshot"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	summary     model.FinancialSummary
	ledger      model.Ledger
	files       []source.DiscoveredFile
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 30 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.DaysInMonth <= 0 {
		cfg.DaysInMonth = 30
	}
	if cfg.DelinquencyDays <= 0 {
		cfg.DelinquencyDays = 60
	}

	return &Service{
		cfg:       cfg,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/summary", s.handleSummary)
	mux.HandleFunc("/v1/report", s.handleReport)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce() {
	result, err := s.loadLedger()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = time.Now()
		s.pollCount++
		s.mu.Unlock()
		s.cfg.Logger.Error().Err(err).Msg("daemon poll failed")
		return
	}

	now := time.Now()
	opts := pipeline.Options{Keywords: s.cfg.Keywords, DaysInMonth: s.cfg.DaysInMonth}
	summary := pipeline.Aggregate(result.Ledger, opts)

	delinquent := 0
	if loanFile := firstOfKind(result.Files, source.KindMortgage); loanFile != "" {
		if rows, _, err := source.ParseMortgageRows(loanFile); err == nil {
			portfolio := pipeline.ClassifyLoans(rows, now, s.cfg.DelinquencyDays)
			delinquent = portfolio.DelinquentCount
		}
	}

	snap := snapshotFromSummary(summary, now, result.SkippedRows, delinquent)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.summary = summary
	s.ledger = result.Ledger
	s.files = result.Files
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
			Delta:     Delta{},
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "ledger_delta",
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

func (s *Service) loadLedger() (*pipeline.LoadResult, error) {
	if s.cfg.UseCache {
		cache, err := store.Open(pipeline.CachePath())
		if err == nil {
			defer func() { _ = cache.Close() }()
			cr, loadErr := pipeline.LoadWithCache(s.cfg.DataDir, cache, nil)
			if loadErr == nil {
				return &cr.LoadResult, nil
			}
		}
	}

	return pipeline.Load(s.cfg.DataDir, nil)
}

func firstOfKind(files []source.DiscoveredFile, kind source.FileKind) string {
	for _, f := range files {
		if f.Kind == kind {
			return f.Path
		}
	}
	return ""
}

func snapshotFromSummary(sum model.FinancialSummary, at time.Time, skipped, delinquent int) Snapshot {
	return Snapshot{
		At:              at,
		TotalIncome:     sum.TotalIncome,
		TotalExpenses:   sum.TotalExpenses,
		NetCashFlow:     sum.NetCashFlow,
		CashOnHand:      sum.CashOnHand,
		DaysCashOnHand:  sum.DaysCashOnHand,
		ProgramRatio:    sum.ProgramExpenseRatio,
		Transactions:    sum.TransactionCount,
		DelinquentLoans: delinquent,
		SkippedRows:     skipped,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		TotalIncome:     curr.TotalIncome.Sub(prev.TotalIncome),
		TotalExpenses:   curr.TotalExpenses.Sub(prev.TotalExpenses),
		NetCashFlow:     curr.NetCashFlow.Sub(prev.NetCashFlow),
		Transactions:    curr.Transactions - prev.Transactions,
		DelinquentLoans: curr.DelinquentLoans - prev.DelinquentLoans,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DataDir:         s.cfg.DataDir,
		Client:          s.cfg.Client,
		Snapshot:        s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleSummary(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	ok := s.hasSnapshot
	summary := s.summary
	s.mu.RUnlock()

	if !ok {
		http.Error(w, "no data yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summary)
}

// handleReport serves a freshly built report model from the last polled
// ledger. Scenario and budget sections are omitted; clients fold those in
// from their own parameters.
func (s *Service) handleReport(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	ok := s.hasSnapshot
	summary := s.summary
	s.mu.RUnlock()

	if !ok {
		http.Error(w, "no data yet", http.StatusServiceUnavailable)
		return
	}

	report := pipeline.BuildReport(pipeline.ReportInputs{
		Client:  s.cfg.Client,
		Summary: summary,
	})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Snapshot,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
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
