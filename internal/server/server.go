package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"notepad/internal/logging"
	"notepad/internal/store"
)

const shutdownTimeout = 5 * time.Second

// Server is the reference note service the client talks to.
type Server struct {
	addr   string
	notes  store.NoteStore
	logger logging.Logger
	server *http.Server
}

func New(addr string, notes store.NoteStore, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Server{
		addr:   addr,
		notes:  notes,
		logger: logger.With(logging.F("component", "server")),
	}
}

func (s *Server) Handler() http.Handler {
	api := &API{
		Notes:  NewNoteService(s.notes),
		Logger: s.logger,
	}
	mux := http.NewServeMux()
	api.RegisterRoutes(mux)
	return LoggingMiddleware(s.logger, CORSMiddleware(mux))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening",
			logging.F("addr", listener.Addr().String()),
			logging.F("storage", s.notes.Backend()),
		)
		errCh <- s.server.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
