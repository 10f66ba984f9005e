package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lodge-booking/internal/data/entity"
	"lodge-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AccommodationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Accommodation, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Accommodation, error)

	// Purchase attaches a buyer to an auction item with a single conditional
	// update. Exactly one caller can ever succeed per item.
	Purchase(ctx context.Context, id, buyerID uuid.UUID, price float64, at time.Time) error

	// RefreshAuctionPrice opportunistically updates the cached display price.
	// Never sources a sale price from this column.
	RefreshAuctionPrice(ctx context.Context, id uuid.UUID, price float64) error
}

type accommodationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAccommodationRepository(db database.PgxIface, log *zap.Logger) AccommodationRepository {
	return &accommodationRepository{
		db:  db,
		log: log.With(zap.String("repository", "accommodation")),
	}
}

const accommodationColumns = `
	id, name, category, total_inventory, base_weekly_price, is_in_auction,
	auction_tier, auction_start_price, auction_floor_price, auction_current_price,
	buyer_id, purchase_price, purchased_at, created_at, updated_at
`

func scanAccommodation(row pgx.Row) (*entity.Accommodation, error) {
	var a entity.Accommodation
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Category,
		&a.TotalInventory,
		&a.BaseWeeklyPrice,
		&a.IsInAuction,
		&a.AuctionTier,
		&a.AuctionStart,
		&a.AuctionFloor,
		&a.AuctionCurrent,
		&a.BuyerID,
		&a.PurchasePrice,
		&a.PurchasedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *accommodationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Accommodation, error) {
	query := `SELECT ` + accommodationColumns + ` FROM accommodations WHERE id = $1`

	accommodation, err := scanAccommodation(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to find accommodation by ID",
			zap.Error(err),
			zap.String("accommodation_id", id.String()),
		)
		return nil, fmt.Errorf("find accommodation by ID %s: %w", id.String(), err)
	}

	return accommodation, nil
}

func (r *accommodationRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Accommodation, error) {
	query := `SELECT ` + accommodationColumns + ` FROM accommodations WHERE id = ANY($1) ORDER BY name`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find accommodations by IDs",
			zap.Error(err),
			zap.Int("count", len(ids)),
		)
		return nil, fmt.Errorf("find accommodations by IDs: %w", err)
	}
	defer rows.Close()

	var accommodations []*entity.Accommodation
	for rows.Next() {
		accommodation, err := scanAccommodation(rows)
		if err != nil {
			r.log.Error("Failed to scan accommodation row", zap.Error(err))
			return nil, fmt.Errorf("scan accommodation row: %w", err)
		}
		accommodations = append(accommodations, accommodation)
	}

	return accommodations, rows.Err()
}

// Purchase is the single-winner coordinator. The conditional
// UPDATE ... WHERE buyer_id IS NULL is atomic at the storage layer, so no
// explicit row lock is needed: there is exactly one unit per auction item.
// Zero rows affected means someone else already won. The audit record
// commits with the sale so the trail always shows the winning price.
func (r *accommodationRepository) Purchase(ctx context.Context, id, buyerID uuid.UUID, price float64, at time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin purchase transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE accommodations
		SET buyer_id = $2, purchase_price = $3, purchased_at = $4,
		    auction_current_price = $3, updated_at = $4
		WHERE id = $1 AND is_in_auction = TRUE AND buyer_id IS NULL
	`

	result, err := tx.Exec(ctx, query, id, buyerID, price, at)
	if err != nil {
		r.log.Error("Failed to purchase auction item",
			zap.Error(err),
			zap.String("accommodation_id", id.String()),
			zap.String("buyer_id", buyerID.String()),
		)
		return fmt.Errorf("purchase auction item %s: %w", id.String(), err)
	}

	if result.RowsAffected() > 0 {
		accommodationID := id
		if err := appendAudit(ctx, tx, &entity.AuditRecord{
			BaseSimple:      entity.BaseSimple{ID: uuid.New(), CreatedAt: at},
			AccommodationID: &accommodationID,
			ActorID:         buyerID,
			Action:          entity.AuditActionPurchase,
			Price:           price,
		}); err != nil {
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit purchase transaction: %w", err)
		}
		return nil
	}

	// Lost the race, or the target was never purchasable. Work out which.
	var isInAuction bool
	var existingBuyer *uuid.UUID
	err = r.db.QueryRow(ctx,
		`SELECT is_in_auction, buyer_id FROM accommodations WHERE id = $1`, id,
	).Scan(&isInAuction, &existingBuyer)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("inspect auction item %s: %w", id.String(), err)
	}
	if !isInAuction {
		return ErrNotAuctionItem
	}
	return ErrAlreadySold
}

func (r *accommodationRepository) RefreshAuctionPrice(ctx context.Context, id uuid.UUID, price float64) error {
	query := `
		UPDATE accommodations
		SET auction_current_price = $2, updated_at = NOW()
		WHERE id = $1 AND is_in_auction = TRUE AND buyer_id IS NULL
	`

	if _, err := r.db.Exec(ctx, query, id, price); err != nil {
		return fmt.Errorf("refresh auction price for %s: %w", id.String(), err)
	}
	return nil
}
