package repository

import (
	"context"
	"errors"
	"fmt"

	"lodge-booking/internal/data/entity"
	"lodge-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AuctionConfigRepository interface {
	// FindActive returns the single active config governing all tiers.
	FindActive(ctx context.Context) (*entity.AuctionConfig, error)
}

type auctionConfigRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuctionConfigRepository(db database.PgxIface, log *zap.Logger) AuctionConfigRepository {
	return &auctionConfigRepository{
		db:  db,
		log: log.With(zap.String("repository", "auction_config")),
	}
}

func (r *auctionConfigRepository) FindActive(ctx context.Context) (*entity.AuctionConfig, error) {
	query := `
		SELECT id, start_time, end_time, drop_interval_hours, is_active
		FROM auction_configs
		WHERE is_active = TRUE
		ORDER BY start_time DESC
		LIMIT 1
	`

	var config entity.AuctionConfig
	err := r.db.QueryRow(ctx, query).Scan(
		&config.ID,
		&config.StartTime,
		&config.EndTime,
		&config.DropIntervalHours,
		&config.IsActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to find active auction config", zap.Error(err))
		return nil, fmt.Errorf("find active auction config: %w", err)
	}

	return &config, nil
}
