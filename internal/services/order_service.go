package services

import (
	"context"
	"strings"

	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
)

type OrderReader interface {
	ListByUser(ctx context.Context, userID string) ([]models.PersistedOrder, error)
	ListAll(ctx context.Context) ([]models.PersistedOrder, error)
	GetByID(ctx context.Context, kind models.OrderKind, id int64) (models.PersistedOrder, error)
}

// OrderService serves stored orders to their owners and to staff.
type OrderService struct {
	Orders OrderReader
}

func isStaff(role string) bool {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "admin", "owner":
		return true
	default:
		return false
	}
}

func (s OrderService) ListMine(ctx context.Context, rc domain.RequestContext) ([]models.PersistedOrder, error) {
	if rc.UserKey() == "" {
		return nil, domain.ValidationError{Field: "user_id", Msg: "login diperlukan"}
	}
	return s.Orders.ListByUser(ctx, rc.UserKey())
}

// Get hides orders of other users behind NotFound unless rc is staff.
func (s OrderService) Get(ctx context.Context, rc domain.RequestContext, kind models.OrderKind, id int64) (models.PersistedOrder, error) {
	o, err := s.Orders.GetByID(ctx, kind, id)
	if err != nil {
		return models.PersistedOrder{}, err
	}
	if !isStaff(rc.Role) && (rc.UserKey() == "" || o.UserID != rc.UserKey()) {
		return models.PersistedOrder{}, domain.NotFoundError{Resource: "order"}
	}
	return o, nil
}
