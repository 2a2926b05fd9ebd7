package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"inkwell/app/routes"
)

const shutdownTimeout = 10 * time.Second

// RunAppServer starts the blog API and blocks until SIGINT or SIGTERM.
func (c *CLI) RunAppServer() int {
	if err := c.cfg.ValidateServer(); err != nil {
		c.printf("Invalid configuration: %v\n", err)
		return 1
	}

	store, err := c.openStore()
	if err != nil {
		c.printf("Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	router := routes.SetupRoutes(routes.NewServices(store, c.cfg, c.logger), c.logger)
	srv := &http.Server{
		Addr:              c.cfg.ServerAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		c.printf("Failed to listen on %s: %v\n", srv.Addr, err)
		return 1
	}
	c.logger.Info("starting blog service", "addr", listener.Addr().String(), "env", c.cfg.Env)
	if err := runServer(ctx, srv, listener, c.logger); err != nil {
		c.printf("Server error: %v\n", err)
		return 1
	}
	return 0
}

// runServer serves on listener until ctx is done, then shuts srv down
// gracefully.
func runServer(ctx context.Context, srv *http.Server, listener net.Listener, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down blog service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("blog service stopped")
	return nil
}
