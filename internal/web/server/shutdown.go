package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// GracefulShutdown runs a server until its context is cancelled, then runs
// cleanup hooks and drains in-flight requests.
type GracefulShutdown struct {
	server        *Server
	shutdownHooks []ShutdownHook
	timeout       time.Duration
	logger        *zap.Logger
	mu            sync.Mutex
	shutdownOnce  sync.Once
	shutdownChan  chan struct{}
	shutdownError error
}

// ShutdownHook is a function called during graceful shutdown
type ShutdownHook func(ctx context.Context) error

// ShutdownConfig holds graceful shutdown configuration
type ShutdownConfig struct {
	// Timeout is the maximum time to wait for shutdown
	Timeout time.Duration

	// Logger for shutdown messages
	Logger *zap.Logger
}

// DefaultShutdownConfig returns default shutdown configuration
func DefaultShutdownConfig() *ShutdownConfig {
	return &ShutdownConfig{
		Timeout: 30 * time.Second,
		Logger:  zap.NewNop(),
	}
}

// NewGracefulShutdown creates a new graceful shutdown handler
func NewGracefulShutdown(server *Server, config *ShutdownConfig) *GracefulShutdown {
	if config == nil {
		config = DefaultShutdownConfig()
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultShutdownConfig().Timeout
	}

	return &GracefulShutdown{
		server:       server,
		timeout:      timeout,
		logger:       logger.Named("server"),
		shutdownChan: make(chan struct{}),
	}
}

// RegisterHook registers a shutdown hook. Hooks run in registration order
// before the server stops accepting requests.
func (gs *GracefulShutdown) RegisterHook(hook ShutdownHook) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.shutdownHooks = append(gs.shutdownHooks, hook)
}

// Run serves until ctx is done or the server fails. The listener is opened
// before serving starts, so a bad address is reported immediately.
func (gs *GracefulShutdown) Run(ctx context.Context) error {
	if err := gs.server.Listen(); err != nil {
		return err
	}

	errChan := make(chan error, 1)
	go func() {
		gs.logger.Info("listening", zap.String("addr", gs.server.Addr()))
		errChan <- gs.server.Serve()
	}()

	select {
	case <-ctx.Done():
		gs.logger.Info("shutdown requested", zap.NamedError("cause", context.Cause(ctx)))
		err := gs.Shutdown()
		<-errChan
		return err
	case err := <-errChan:
		return err
	}
}

// Shutdown performs graceful shutdown. It is safe to call more than once;
// every call returns the result of the first.
func (gs *GracefulShutdown) Shutdown() error {
	gs.shutdownOnce.Do(func() {
		gs.logger.Info("shutting down", zap.Duration("timeout", gs.timeout))

		ctx, cancel := context.WithTimeout(context.Background(), gs.timeout)
		defer cancel()

		gs.mu.Lock()
		hooks := make([]ShutdownHook, len(gs.shutdownHooks))
		copy(hooks, gs.shutdownHooks)
		gs.mu.Unlock()

		for i, hook := range hooks {
			if err := hook(ctx); err != nil {
				gs.logger.Warn("shutdown hook failed", zap.Int("hook", i), zap.Error(err))
			}
		}

		if err := gs.server.Shutdown(ctx); err != nil {
			gs.shutdownError = fmt.Errorf("server shutdown error: %w", err)
			gs.logger.Error("server shutdown failed", zap.Error(err))
		} else {
			gs.logger.Info("server stopped")
		}

		close(gs.shutdownChan)
	})

	<-gs.shutdownChan
	return gs.shutdownError
}

// Wait blocks until shutdown is complete
func (gs *GracefulShutdown) Wait() error {
	<-gs.shutdownChan
	return gs.shutdownError
}
