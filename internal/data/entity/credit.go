package entity

import (
	"time"

	"github.com/google/uuid"
)

// CreditAccount is a stored-value balance redeemable against booking cost.
// Debits happen exactly once per confirmed booking, inside the confirm
// transaction; cancelling a confirmed booking refunds them in the same way.
type CreditAccount struct {
	UserID    uuid.UUID `db:"user_id"`
	Balance   float64   `db:"balance"`
	UpdatedAt time.Time `db:"updated_at"`
}
