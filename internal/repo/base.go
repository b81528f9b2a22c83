package repo

import (
	"context"

	"gorm.io/gorm"
)

// Connector yields the live connection, dialing first if needed.
type Connector interface {
	Ensure(ctx context.Context) (*gorm.DB, error)
}

// Static adapts an already open connection to Connector.
type Static struct {
	Conn *gorm.DB
}

func (s Static) Ensure(context.Context) (*gorm.DB, error) {
	return s.Conn, nil
}

// Base provides a shared foundation for domain repositories.
type Base struct {
	conn Connector
}

// NewBase constructs a Base repository backed by the provided connector.
func NewBase(conn Connector) Base {
	return Base{conn: conn}
}

// DB returns the connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) (*gorm.DB, error) {
	db, err := b.conn.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		return db, nil
	}
	return db.WithContext(ctx), nil
}
