package usecase

import (
	"context"
	"time"

	"lodge-booking/internal/data/entity"
	"lodge-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockAccommodationRepo struct {
	mock.Mock
}

func (m *mockAccommodationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Accommodation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Accommodation), args.Error(1)
}

func (m *mockAccommodationRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Accommodation, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Accommodation), args.Error(1)
}

func (m *mockAccommodationRepo) Purchase(ctx context.Context, id, buyerID uuid.UUID, price float64, at time.Time) error {
	args := m.Called(ctx, id, buyerID, price, at)
	return args.Error(0)
}

func (m *mockAccommodationRepo) RefreshAuctionPrice(ctx context.Context, id uuid.UUID, price float64) error {
	args := m.Called(ctx, id, price)
	return args.Error(0)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *mockBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

func (m *mockBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) CountOverlappingLive(ctx context.Context, accommodationID uuid.UUID, checkIn, checkOut, pendingSince time.Time) (int, error) {
	args := m.Called(ctx, accommodationID, checkIn, checkOut, pendingSince)
	return args.Int(0), args.Error(1)
}

func (m *mockBookingRepo) Reserve(ctx context.Context, booking *entity.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockBookingRepo) Confirm(ctx context.Context, bookingID uuid.UUID, externalRef string, amount float64) (*entity.Booking, error) {
	args := m.Called(ctx, bookingID, externalRef, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *mockBookingRepo) Cancel(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *mockBookingRepo) SweepExpired(ctx context.Context, cutoff time.Time) (int, error) {
	args := m.Called(ctx, cutoff)
	return args.Int(0), args.Error(1)
}

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *mockPaymentRepo) FindByExternalRef(ctx context.Context, externalRef string) (*entity.Payment, error) {
	args := m.Called(ctx, externalRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

type mockCreditRepo struct {
	mock.Mock
}

func (m *mockCreditRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.CreditAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CreditAccount), args.Error(1)
}

func (m *mockCreditRepo) Add(ctx context.Context, userID uuid.UUID, amount float64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

type mockAuctionConfigRepo struct {
	mock.Mock
}

func (m *mockAuctionConfigRepo) FindActive(ctx context.Context) (*entity.AuctionConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AuctionConfig), args.Error(1)
}

type mockAuditRepo struct {
	mock.Mock
}

func (m *mockAuditRepo) Append(ctx context.Context, record *entity.AuditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockAuditRepo) FindByAccommodationID(ctx context.Context, accommodationID uuid.UUID) ([]*entity.AuditRecord, error) {
	args := m.Called(ctx, accommodationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.AuditRecord), args.Error(1)
}

func (m *mockAuditRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.AuditRecord, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.AuditRecord), args.Error(1)
}

// mockRepos bundles one mock per repository behind the aggregate the
// services consume.
type mockRepos struct {
	accommodation *mockAccommodationRepo
	booking       *mockBookingRepo
	payment       *mockPaymentRepo
	credit        *mockCreditRepo
	auctionConfig *mockAuctionConfigRepo
	audit         *mockAuditRepo
}

func newMockRepos() (*mockRepos, *repository.Repository) {
	m := &mockRepos{
		accommodation: new(mockAccommodationRepo),
		booking:       new(mockBookingRepo),
		payment:       new(mockPaymentRepo),
		credit:        new(mockCreditRepo),
		auctionConfig: new(mockAuctionConfigRepo),
		audit:         new(mockAuditRepo),
	}
	repo := &repository.Repository{
		Accommodation: m.accommodation,
		Booking:       m.booking,
		Payment:       m.payment,
		Credit:        m.credit,
		AuctionConfig: m.auctionConfig,
		Audit:         m.audit,
	}
	return m, repo
}
