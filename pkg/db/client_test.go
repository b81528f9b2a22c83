package db

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/OmerAlfiel/Shahen-website/pkg/config"
)

type testModel struct {
	ID   int
	Name string
}

func newTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&testModel{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	db := newTestDB(t, "with_tx")
	client := NewFromGorm(db)

	ctx := context.Background()
	if err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&testModel{Name: "committed"}).Error
	}); err != nil {
		t.Fatalf("WithTx commit failed: %v", err)
	}

	var count int64
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&testModel{Name: "rolled"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected WithTx to return an error")
	}
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed after rollback: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected rollback to keep 1 record, got %d", count)
	}
}

func TestNewWithSQLite(t *testing.T) {
	client, err := New(context.Background(), Options{
		DB:         config.DBConfig{MaxOpenConns: 2},
		UseSQLite:  true,
		SQLitePath: "file:client_new?mode=memory&cache=shared",
	}, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestNewRequiresResolvedTarget(t *testing.T) {
	if _, err := New(context.Background(), Options{}, nil); err == nil {
		t.Fatal("expected error without a resolved target")
	}
}

func TestManagerRetriesThenConnects(t *testing.T) {
	conn := newTestDB(t, "manager_retry")
	var calls atomic.Int32
	var hooked atomic.Int32

	manager := NewManager(func(ctx context.Context) (*Client, error) {
		if calls.Add(1) < 3 {
			return nil, errors.New("dial tcp: connection refused")
		}
		return NewFromGorm(conn), nil
	}, ManagerOptions{
		Attempts: 5,
		Backoff:  time.Millisecond,
		OnConnect: func(ctx context.Context, db *gorm.DB) error {
			hooked.Add(1)
			return nil
		},
	}, nil)

	if manager.Connected() {
		t.Fatal("manager should start disconnected")
	}
	if err := manager.Ping(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable before connecting, got %v", err)
	}

	got, err := manager.Ensure(context.Background())
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if got != conn {
		t.Fatal("expected managed connection")
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}

	if _, err := manager.Ensure(context.Background()); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if calls.Load() != 3 || hooked.Load() != 1 {
		t.Fatalf("expected cached connection, calls=%d hooks=%d", calls.Load(), hooked.Load())
	}
	if !manager.Connected() {
		t.Fatal("expected connected manager")
	}
}

func TestManagerGivesUpAfterAttempts(t *testing.T) {
	var calls atomic.Int32
	manager := NewManager(func(ctx context.Context) (*Client, error) {
		calls.Add(1)
		return nil, errors.New("no route to host")
	}, ManagerOptions{Attempts: 3, Backoff: time.Millisecond}, nil)

	_, err := manager.Ensure(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
	if manager.Connected() {
		t.Fatal("manager should stay disconnected")
	}
}

func TestManagerKeepsConnectionWhenHookFails(t *testing.T) {
	conn := newTestDB(t, "manager_hook")
	manager := NewManager(func(ctx context.Context) (*Client, error) {
		return NewFromGorm(conn), nil
	}, ManagerOptions{
		Attempts:  1,
		OnConnect: func(context.Context, *gorm.DB) error { return errors.New("migration failed") },
	}, nil)

	if _, err := manager.Ensure(context.Background()); err != nil {
		t.Fatalf("hook failure should not fail ensure: %v", err)
	}
	if !manager.Connected() {
		t.Fatal("expected connection to be kept")
	}
}
