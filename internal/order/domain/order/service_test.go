package order

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock implementations ---

type mockCatalog struct {
	byID    map[int64]*Snapshot
	err     error
	fetches int
}

func (m *mockCatalog) Fetch(_ context.Context, productID int64) (*Snapshot, error) {
	m.fetches++
	if m.err != nil {
		return nil, m.err
	}
	snap, ok := m.byID[productID]
	if !ok {
		return nil, ErrCatalogNotFound
	}
	return snap, nil
}

type mockOrderRepo struct {
	created   []*Order
	err       error
	conflicts int // fail the first N creates with ErrOrderNumberConflict
}

func (m *mockOrderRepo) Create(_ context.Context, o *Order) error {
	if m.conflicts > 0 {
		m.conflicts--
		return ErrOrderNumberConflict
	}
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, o)
	return nil
}

func (m *mockOrderRepo) Get(_ context.Context, _ int64) (*Order, error)     { return nil, ErrNotFound }
func (m *mockOrderRepo) List(_ context.Context) ([]Order, error)            { return nil, nil }
func (m *mockOrderRepo) UpdateStatus(_ context.Context, _ int64, _ Status) (*Order, error) {
	return nil, ErrNotFound
}

// --- Helpers ---

func newSnapshot(id int64, name, price string, stock int) *Snapshot {
	return &Snapshot{
		ProductID:     id,
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		Available:     stock > 0,
	}
}

func newCatalog(snaps ...*Snapshot) *mockCatalog {
	byID := make(map[int64]*Snapshot, len(snaps))
	for _, s := range snaps {
		byID[s.ProductID] = s
	}
	return &mockCatalog{byID: byID}
}

func validRequest(items ...LineItemRequest) CreateOrderRequest {
	return CreateOrderRequest{
		CustomerName:    "Alice Chen",
		CustomerEmail:   "alice@example.com",
		CustomerPhone:   "0912345678",
		ShippingAddress: "1 Main St, Taipei",
		Items:           items,
	}
}

// --- Tests ---

func TestCreateOrder_WidgetScenario(t *testing.T) {
	// Catalog has product 1 = Widget, 10.00, stock 5.
	catalog := newCatalog(newSnapshot(1, "Widget", "10.00", 5))
	repo := &mockOrderRepo{}
	svc := NewService(catalog, repo)

	o, err := svc.CreateOrder(context.Background(), validRequest(
		LineItemRequest{ProductID: "1", Quantity: "3"},
	))

	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	assert.True(t, decimal.RequireFromString("30.00").Equal(o.TotalAmount))
	assert.True(t, decimal.RequireFromString("30.00").Equal(o.Items[0].Subtotal))
	assert.True(t, decimal.RequireFromString("10.00").Equal(o.Items[0].UnitPrice))
	assert.Equal(t, "Widget", o.Items[0].ProductName)
	assert.Equal(t, StatusPending, o.Status)
	assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, o.OrderNumber)
	require.Len(t, repo.created, 1)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	catalog := newCatalog(newSnapshot(1, "Widget", "10.00", 5))
	repo := &mockOrderRepo{}
	svc := NewService(catalog, repo)

	_, err := svc.CreateOrder(context.Background(), validRequest(
		LineItemRequest{ProductID: "1", Quantity: "6"},
	))

	var isErr *InsufficientStockError
	require.ErrorAs(t, err, &isErr)
	assert.Equal(t, int64(1), isErr.ProductID)
	assert.Equal(t, 6, isErr.Requested)
	assert.Equal(t, 5, isErr.Available)
	assert.Empty(t, repo.created, "no order must be persisted on validation failure")
}

func TestCreateOrder_ProductNotFound(t *testing.T) {
	catalog := newCatalog(newSnapshot(1, "Widget", "10.00", 5))
	repo := &mockOrderRepo{}
	svc := NewService(catalog, repo)

	_, err := svc.CreateOrder(context.Background(), validRequest(
		LineItemRequest{ProductID: "999", Quantity: "1"},
	))

	var pnfErr *ProductNotFoundError
	require.ErrorAs(t, err, &pnfErr)
	assert.Equal(t, int64(999), pnfErr.ProductID)
	assert.Equal(t, 1, pnfErr.Index)
	assert.Empty(t, repo.created)
}

func TestCreateOrder_CatalogUnavailable(t *testing.T) {
	catalog := &mockCatalog{err: ErrCatalogUnavailable}
	repo := &mockOrderRepo{}
	svc := NewService(catalog, repo)

	_, err := svc.CreateOrder(context.Background(), validRequest(
		LineItemRequest{ProductID: "1", Quantity: "1"},
	))

	// An unreachable catalog surfaces the same way as a missing product.
	var pnfErr *ProductNotFoundError
	require.ErrorAs(t, err, &pnfErr)
	assert.Empty(t, repo.created)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	svc := NewService(newCatalog(), &mockOrderRepo{})

	_, err := svc.CreateOrder(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrEmptyItems)
}

func TestCreateOrder_CustomerValidation(t *testing.T) {
	svc := NewService(newCatalog(newSnapshot(1, "Widget", "10.00", 5)), &mockOrderRepo{})
	item := LineItemRequest{ProductID: "1", Quantity: "1"}

	tests := []struct {
		name   string
		mutate func(*CreateOrderRequest)
		field  string
	}{
		{"missing name", func(r *CreateOrderRequest) { r.CustomerName = "  " }, "customer_name"},
		{"bad email", func(r *CreateOrderRequest) { r.CustomerEmail = "not-an-email" }, "customer_email"},
		{"missing phone", func(r *CreateOrderRequest) { r.CustomerPhone = "" }, "customer_phone"},
		{"missing address", func(r *CreateOrderRequest) { r.ShippingAddress = "" }, "shipping_address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(item)
			tt.mutate(&req)

			_, err := svc.CreateOrder(context.Background(), req)

			var iiErr *InvalidInputError
			require.ErrorAs(t, err, &iiErr)
			assert.Equal(t, tt.field, iiErr.Field)
		})
	}
}

func TestCreateOrder_MultiItemTotal(t *testing.T) {
	catalog := newCatalog(
		newSnapshot(1, "Widget", "10.00", 10),
		newSnapshot(2, "Gadget", "19.99", 10),
	)
	repo := &mockOrderRepo{}
	svc := NewService(catalog, repo)

	o, err := svc.CreateOrder(context.Background(), validRequest(
		LineItemRequest{ProductID: "1", Quantity: "2"},
		LineItemRequest{ProductID: "2", Quantity: "3"},
	))

	require.NoError(t, err)
	require.Len(t, o.Items, 2)
	// 2*10.00 + 3*19.99 = 79.97
	assert.True(t, decimal.RequireFromString("79.97").Equal(o.TotalAmount))
	assert.Equal(t, 2, catalog.fetches, "one snapshot fetch per item")
}

func TestCreateOrder_PersistenceFailure(t *testing.T) {
	catalog := newCatalog(newSnapshot(1, "Widget", "10.00", 5))
	repo := &mockOrderRepo{err: errors.New("db write failed")}
	svc := NewService(catalog, repo)

	_, err := svc.CreateOrder(context.Background(), validRequest(
		LineItemRequest{ProductID: "1", Quantity: "1"},
	))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create order")
}

func TestCreateOrder_NumberConflictRetriedOnce(t *testing.T) {
	catalog := newCatalog(newSnapshot(1, "Widget", "10.00", 5))
	repo := &mockOrderRepo{conflicts: 1}
	svc := NewService(catalog, repo)

	o, err := svc.CreateOrder(context.Background(), validRequest(
		LineItemRequest{ProductID: "1", Quantity: "1"},
	))

	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, o.OrderNumber)
}

func TestCreateOrder_NumberConflictTwiceFails(t *testing.T) {
	catalog := newCatalog(newSnapshot(1, "Widget", "10.00", 5))
	repo := &mockOrderRepo{conflicts: 2}
	svc := NewService(catalog, repo)

	_, err := svc.CreateOrder(context.Background(), validRequest(
		LineItemRequest{ProductID: "1", Quantity: "1"},
	))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOrderNumberConflict)
	assert.Empty(t, repo.created)
}
