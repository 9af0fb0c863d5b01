package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tahweela/tahweela-backend/pkg/db"
)

// Base is embedded by the gorm-backed repositories.
type Base struct {
	conn *gorm.DB
}

func NewBase(conn *gorm.DB) Base {
	return Base{conn: conn}
}

// DB returns the connection bound to ctx when one is given.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.conn
	}
	return b.conn.WithContext(ctx)
}

// Transaction runs fn atomically. Connections opened with
// SkipDefaultTransaction rely on it for multi-row writes.
func (b Base) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return db.WithTx(b.DB(ctx), fn)
}
