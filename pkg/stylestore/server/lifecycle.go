package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Start binds the listener and serves HTTP in the background. When an event
// store is configured it also runs the retention cleanup loop.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.cancel = cancel
	s.mu.Unlock()

	if s.storage.EventStore != nil && s.config.EventCleanupInterval > 0 {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.startEventCleanup(ctx)
		}()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.logger.Info("Starting HTTP server", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(err, "HTTP server error")
			s.serveErr <- err
		}
	}()

	return nil
}

func (s *Server) WaitForShutdown(ctx context.Context) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-sigChan:
		s.logger.Info("Shutting down...")
		return s.Shutdown(context.Background())
	case <-ctx.Done():
		s.logger.Info("Shutting down due to context cancellation...")
		return s.Shutdown(context.Background())
	case err := <-s.serveErr:
		if shutdownErr := s.Shutdown(context.Background()); shutdownErr != nil {
			s.logger.Error(shutdownErr, "shutdown after server error failed")
		}
		return fmt.Errorf("HTTP server failed: %w", err)
	}
}

// Shutdown stops the HTTP server and background loops and waits for them to
// exit.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, DefaultShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	stop := s.cancel
	s.mu.Unlock()
	if stop != nil {
		stop()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	s.wg.Wait()

	s.logger.Info("Shutdown complete")
	return nil
}

func (s *Server) startEventCleanup(ctx context.Context) {
	ticker := time.NewTicker(s.config.EventCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanupEvents()
		}
	}
}

func (s *Server) cleanupEvents() {
	before := time.Now().AddDate(0, 0, -s.config.EventRetentionDays)
	if err := s.storage.EventStore.CleanupOldEvents(before); err != nil {
		s.logger.Error(err, "failed to cleanup old events")
	}
}
