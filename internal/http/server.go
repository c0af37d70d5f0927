// Package http exposes the record editor over a JSON API: the editor
// host for clients that create and edit transactions, plus the read
// endpoints backing the summary views.
package http

import (
	"net/http"
	"time"

	"tally/internal/editor"
	"tally/internal/lists"
	"tally/internal/log"
	"tally/internal/middleware"
	"tally/internal/store"
)

type Server struct {
	http.Server

	backend  store.Store
	recent   *lists.Recent
	monthly  *lists.Monthly
	notifier editor.Notifier
	owner    string
	logger   *log.Logger
	limiter  *middleware.Limiter
}

// NewServer wires the API. notifier may be nil when commit events are
// disabled.
func NewServer(addr string, backend store.Store, recent *lists.Recent, monthly *lists.Monthly, notifier editor.Notifier, owner string, logger *log.Logger) *Server {
	s := &Server{
		backend:  backend,
		recent:   recent,
		monthly:  monthly,
		notifier: notifier,
		owner:    owner,
		logger:   logger.WithComponent(log.ComponentHTTP),
		limiter:  middleware.NewLimiter(middleware.DefaultRequestsPerMinute),
	}

	mux := http.NewServeMux()
	handler := middleware.Headers(
		middleware.Trace(s.logger)(
			s.limiter.Middleware(mux)))
	s.Server = http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	mux.HandleFunc("/transactions", s.handleTransactions)
	mux.HandleFunc("/transactions/", s.handleTransactionByID)
	mux.HandleFunc("/transactions/recent", s.handleRecent)
	mux.HandleFunc("/transactions/month", s.handleMonth)
	mux.HandleFunc("/categories", s.handleCategories)
	mux.HandleFunc("/accounts", s.handleAccounts)
	mux.HandleFunc("/healthz", s.handleHealth)

	s.RegisterOnShutdown(s.limiter.Stop)
	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
