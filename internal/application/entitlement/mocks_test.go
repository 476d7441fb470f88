package entitlement

import (
	"context"
	"time"

	"github.com/reelgate-inc/reelgate/internal/domain/entitlement"
)

type mockEntitlementRepository struct {
	CreateFunc                     func(ctx context.Context, e *entitlement.Entitlement) error
	GetByIDFunc                    func(ctx context.Context, id uint) (*entitlement.Entitlement, error)
	GetLatestByUserFunc            func(ctx context.Context, userID string) (*entitlement.Entitlement, error)
	GetByExternalSessionIDFunc     func(ctx context.Context, sessionID string) (*entitlement.Entitlement, error)
	ListByUserFunc                 func(ctx context.Context, userID string) ([]*entitlement.Entitlement, error)
	MarkNotificationSentFunc       func(ctx context.Context, id uint, kind entitlement.NotificationKind) (bool, error)
	ListRentalsExpiringBetweenFunc func(ctx context.Context, from, to time.Time, kind entitlement.NotificationKind) ([]*entitlement.Entitlement, error)
}

func (m *mockEntitlementRepository) Create(ctx context.Context, e *entitlement.Entitlement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	return nil
}

func (m *mockEntitlementRepository) GetByID(ctx context.Context, id uint) (*entitlement.Entitlement, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, entitlement.ErrEntitlementNotFound
}

func (m *mockEntitlementRepository) GetLatestByUser(ctx context.Context, userID string) (*entitlement.Entitlement, error) {
	if m.GetLatestByUserFunc != nil {
		return m.GetLatestByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockEntitlementRepository) GetByExternalSessionID(ctx context.Context, sessionID string) (*entitlement.Entitlement, error) {
	if m.GetByExternalSessionIDFunc != nil {
		return m.GetByExternalSessionIDFunc(ctx, sessionID)
	}
	return nil, nil
}

func (m *mockEntitlementRepository) ListByUser(ctx context.Context, userID string) ([]*entitlement.Entitlement, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockEntitlementRepository) MarkNotificationSent(ctx context.Context, id uint, kind entitlement.NotificationKind) (bool, error) {
	if m.MarkNotificationSentFunc != nil {
		return m.MarkNotificationSentFunc(ctx, id, kind)
	}
	return true, nil
}

func (m *mockEntitlementRepository) ListRentalsExpiringBetween(ctx context.Context, from, to time.Time, kind entitlement.NotificationKind) ([]*entitlement.Entitlement, error) {
	if m.ListRentalsExpiringBetweenFunc != nil {
		return m.ListRentalsExpiringBetweenFunc(ctx, from, to, kind)
	}
	return nil, nil
}
