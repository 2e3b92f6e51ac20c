package handlers

import (
	"context"

	"travelapp/internal/domain/models"
	"travelapp/internal/services"
)

// UserStore is the account storage used by login and register.
type UserStore interface {
	FindByLogin(ctx context.Context, login string) (models.User, error)
	Exists(ctx context.Context, email, username string) (bool, error)
	Create(ctx context.Context, u models.User) (int64, error)
}

// App holds the services behind the HTTP handlers. Services are values; each
// handler copies the one it needs and stamps the request id on the copy.
type App struct {
	JWTSecret     []byte
	ServerKey     string
	SkipSignature bool

	Users     UserStore
	Catalog   services.CatalogReader
	Pricing   services.PricingService
	Checkout  services.CheckoutService
	Payments  *services.PaymentAdapter
	Reconcile services.ReconcileService
	Orders    services.OrderService
	Summary   services.SummaryService
	Docs      services.DocsService
	Dashboard services.DashboardService
	Export    services.ExportService
}
