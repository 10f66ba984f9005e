package repository

import (
	"context"
	"fmt"

	"lodge-booking/internal/data/entity"
	"lodge-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuditRepository interface {
	Append(ctx context.Context, record *entity.AuditRecord) error
	FindByAccommodationID(ctx context.Context, accommodationID uuid.UUID) ([]*entity.AuditRecord, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.AuditRecord, error)
}

type auditRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuditRepository(db database.PgxIface, log *zap.Logger) AuditRepository {
	return &auditRepository{
		db:  db,
		log: log.With(zap.String("repository", "audit")),
	}
}

// appendAudit writes one immutable trail entry. Shared with the booking and
// auction transactions so their audit rows commit atomically with the action.
func appendAudit(ctx context.Context, db execer, record *entity.AuditRecord) error {
	query := `
		INSERT INTO audit_records (id, accommodation_id, booking_id, actor_id, action, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := db.Exec(ctx, query,
		record.ID,
		record.AccommodationID,
		record.BookingID,
		record.ActorID,
		record.Action,
		record.Price,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append audit record %s: %w", record.Action, err)
	}

	return nil
}

func (r *auditRepository) Append(ctx context.Context, record *entity.AuditRecord) error {
	if err := appendAudit(ctx, r.db, record); err != nil {
		r.log.Error("Failed to append audit record",
			zap.Error(err),
			zap.String("action", string(record.Action)),
			zap.String("actor_id", record.ActorID.String()),
		)
		return err
	}
	return nil
}

const auditColumns = `id, accommodation_id, booking_id, actor_id, action, price, created_at`

func (r *auditRepository) FindByAccommodationID(ctx context.Context, accommodationID uuid.UUID) ([]*entity.AuditRecord, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_records WHERE accommodation_id = $1 ORDER BY created_at`
	return r.query(ctx, query, accommodationID)
}

func (r *auditRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.AuditRecord, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_records WHERE booking_id = $1 ORDER BY created_at`
	return r.query(ctx, query, bookingID)
}

func (r *auditRepository) query(ctx context.Context, query string, arg any) ([]*entity.AuditRecord, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		r.log.Error("Failed to query audit records", zap.Error(err))
		return nil, fmt.Errorf("query audit records: %w", err)
	}
	defer rows.Close()

	var records []*entity.AuditRecord
	for rows.Next() {
		var record entity.AuditRecord
		err := rows.Scan(
			&record.ID,
			&record.AccommodationID,
			&record.BookingID,
			&record.ActorID,
			&record.Action,
			&record.Price,
			&record.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan audit record", zap.Error(err))
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		records = append(records, &record)
	}

	return records, rows.Err()
}
