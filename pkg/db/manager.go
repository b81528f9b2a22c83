package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"gorm.io/gorm"

	"github.com/OmerAlfiel/Shahen-website/pkg/logger"
)

// ErrUnavailable is returned by Ensure when every connection attempt failed.
var ErrUnavailable = errors.New("database unavailable")

// Connector opens a client; New bound to its options in production.
type Connector func(ctx context.Context) (*Client, error)

// ConnectHook runs once after each successful connection, e.g. migrations.
type ConnectHook func(ctx context.Context, conn *gorm.DB) error

// ManagerOptions configures connection retries.
type ManagerOptions struct {
	Attempts  int
	Backoff   time.Duration
	OnConnect ConnectHook
}

// Manager owns the lazily established database connection. The API starts
// serving before the database is reachable; Ensure connects on demand.
type Manager struct {
	connect   Connector
	attempts  uint64
	backoff   time.Duration
	onConnect ConnectHook
	logg      *logger.Logger

	mu     sync.Mutex
	client *Client
}

func NewManager(connect Connector, opts ManagerOptions, logg *logger.Logger) *Manager {
	attempts := opts.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	return &Manager{
		connect:   connect,
		attempts:  uint64(attempts),
		backoff:   opts.Backoff,
		onConnect: opts.OnConnect,
		logg:      logg,
	}
}

// Ensure returns the live connection, connecting with retries when none
// exists yet. Concurrent callers share one connection attempt.
func (m *Manager) Ensure(ctx context.Context) (*gorm.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		return m.client.DB(), nil
	}

	backoff := retry.WithMaxRetries(m.attempts-1, retry.NewConstant(max(m.backoff, time.Millisecond)))
	attempt := 0
	var client *Client
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		c, err := m.connect(ctx)
		if err != nil {
			if m.logg != nil {
				logCtx := m.logg.WithFields(ctx, map[string]any{
					"attempt":      attempt,
					"max_attempts": m.attempts,
					"error":        err.Error(),
				})
				m.logg.Warn(logCtx, "database connection attempt failed")
			}
			return retry.RetryableError(err)
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if m.onConnect != nil {
		if hookErr := m.onConnect(ctx, client.DB()); hookErr != nil && m.logg != nil {
			m.logg.Error(ctx, "database post-connect hook failed", hookErr)
		}
	}

	m.client = client
	return client.DB(), nil
}

// Connected reports whether a connection has been established.
func (m *Manager) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client != nil
}

// Ping checks the live connection; it never dials.
func (m *Manager) Ping(ctx context.Context) error {
	m.mu.Lock()
	client := m.client
	m.mu.Unlock()
	if client == nil {
		return ErrUnavailable
	}
	return client.Ping(ctx)
}

// Close releases the connection if one was established.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		return nil
	}
	err := m.client.Close()
	m.client = nil
	return err
}
