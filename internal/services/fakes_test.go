package services

import (
	"context"
	"sync"

	"travelapp/internal/alert"
	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
	"travelapp/internal/gateway"
)

type fakeCatalog struct {
	items map[string]map[string]models.CatalogItem
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{items: map[string]map[string]models.CatalogItem{
		"destinations": {
			"D1": {ID: "D1", Name: "Dieng", Price: 150000},
			"D2": {ID: "D2", Name: "Borobudur", Price: 50000},
			"D0": {ID: "D0", Name: "Gratis", Price: 0},
		},
		"experiences": {
			"E1": {ID: "E1", Name: "Sunrise Sikunir"},
		},
		"lodgings": {
			"L1": {ID: "L1", Name: "Homestay Dieng"},
		},
	}}
}

func (f *fakeCatalog) List(_ context.Context, table string) ([]models.CatalogItem, error) {
	out := []models.CatalogItem{}
	for _, it := range f.items[table] {
		out = append(out, it)
	}
	return out, nil
}

func (f *fakeCatalog) FindByIDs(_ context.Context, table string, ids []string) ([]models.CatalogItem, error) {
	out := []models.CatalogItem{}
	for _, id := range ids {
		if it, ok := f.items[table][id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeCatalog) Get(_ context.Context, table, id string) (models.CatalogItem, error) {
	it, ok := f.items[table][id]
	if !ok {
		return models.CatalogItem{}, domain.NotFoundError{Resource: table}
	}
	return it, nil
}

type fakeGateway struct {
	mu   sync.Mutex
	reqs []gateway.SnapRequest
	resp gateway.SnapResponse
	err  error
}

func (g *fakeGateway) CreateTransaction(_ context.Context, in gateway.SnapRequest) (gateway.SnapResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reqs = append(g.reqs, in)
	if g.err != nil {
		return gateway.SnapResponse{}, g.err
	}
	return g.resp, nil
}

// memoryStore enforces a unique gateway order id the way the database does.
type memoryStore struct {
	mu     sync.Mutex
	nextID int64
	orders map[string]models.PersistedOrder
	fail   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{orders: map[string]models.PersistedOrder{}}
}

func (m *memoryStore) create(o models.PersistedOrder) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return 0, m.fail
	}
	if _, ok := m.orders[o.GatewayOrderID]; ok {
		return 0, domain.ConflictError{Resource: "orders", Msg: "duplicate"}
	}
	m.nextID++
	o.ID = m.nextID
	m.orders[o.GatewayOrderID] = o
	return o.ID, nil
}

func (m *memoryStore) CreatePackageOrder(_ context.Context, o models.PersistedOrder) (int64, error) {
	return m.create(o)
}

func (m *memoryStore) CreateRegularOrder(_ context.Context, o models.PersistedOrder) (int64, error) {
	return m.create(o)
}

func (m *memoryStore) FindIDByGatewayOrderID(_ context.Context, _ models.OrderKind, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return 0, domain.NotFoundError{Resource: "order"}
	}
	return o.ID, nil
}

func (m *memoryStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

type recordedAlerts struct {
	mu      sync.Mutex
	got     []alert.Alert
	ctxErrs []error
}

func (r *recordedAlerts) Raise(ctx context.Context, a alert.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, a)
	r.ctxErrs = append(r.ctxErrs, ctx.Err())
	return nil
}

func (r *recordedAlerts) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []string{}
	for _, a := range r.got {
		out = append(out, a.Kind)
	}
	return out
}

type recordedNotifications struct {
	mu      sync.Mutex
	states  []models.ReconcileState
	ctxErrs []error
}

func (r *recordedNotifications) Append(ctx context.Context, _ models.PaymentNotification, state models.ReconcileState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
	r.ctxErrs = append(r.ctxErrs, ctx.Err())
	return nil
}
