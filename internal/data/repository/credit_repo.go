package repository

import (
	"context"
	"errors"
	"fmt"

	"lodge-booking/internal/data/entity"
	"lodge-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CreditRepository interface {
	// FindByUserID returns the account, or a zero-balance account when the
	// user has never held credits.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.CreditAccount, error)

	// Add tops up (or, with a negative amount, adjusts) a balance. Debits
	// tied to a confirmation happen inside the booking confirm transaction,
	// not here.
	Add(ctx context.Context, userID uuid.UUID, amount float64) error
}

type creditRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCreditRepository(db database.PgxIface, log *zap.Logger) CreditRepository {
	return &creditRepository{
		db:  db,
		log: log.With(zap.String("repository", "credit")),
	}
}

func (r *creditRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.CreditAccount, error) {
	query := `SELECT user_id, balance, updated_at FROM credit_accounts WHERE user_id = $1`

	var account entity.CreditAccount
	err := r.db.QueryRow(ctx, query, userID).Scan(&account.UserID, &account.Balance, &account.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return &entity.CreditAccount{UserID: userID}, nil
	}
	if err != nil {
		r.log.Error("Failed to find credit account",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find credit account for %s: %w", userID.String(), err)
	}

	return &account, nil
}

func (r *creditRepository) Add(ctx context.Context, userID uuid.UUID, amount float64) error {
	query := `
		INSERT INTO credit_accounts (user_id, balance, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET balance = credit_accounts.balance + $2, updated_at = NOW()
	`

	if _, err := r.db.Exec(ctx, query, userID, amount); err != nil {
		r.log.Error("Failed to add credits",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Float64("amount", amount),
		)
		return fmt.Errorf("add credits for %s: %w", userID.String(), err)
	}

	return nil
}
