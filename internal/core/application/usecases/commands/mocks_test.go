package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"foodcourt/internal/core/application/usecases/commands"
	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/core/domain/model/outbox"
	"foodcourt/internal/core/domain/model/tracking"
	"foodcourt/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *OrderRepoMock) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *OrderRepoMock) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *OrderRepoMock) GetByNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *OrderRepoMock) GetChildren(ctx context.Context, parentID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type OutboxRepoMock struct{ mock.Mock }

func (m *OutboxRepoMock) Add(ctx context.Context, events []*outbox.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *OutboxRepoMock) GetPending(ctx context.Context, limit int) ([]*outbox.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Event), args.Error(1)
}

func (m *OutboxRepoMock) Update(ctx context.Context, event *outbox.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *OutboxRepoMock) DeleteDispatchedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type UnitOfWorkMock struct{ mock.Mock }

func (m *UnitOfWorkMock) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *UnitOfWorkMock) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *UnitOfWorkMock) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *UnitOfWorkMock) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *UnitOfWorkMock) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type UoWFactoryMock struct{ mock.Mock }

func (m *UoWFactoryMock) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type OutboxUoWFactoryMock struct{ mock.Mock }

func (m *OutboxUoWFactoryMock) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type ZoneDirectoryMock struct{ mock.Mock }

func (m *ZoneDirectoryMock) GetZone(ctx context.Context, zoneID kernel.UUID) (ports.ZoneInfo, error) {
	args := m.Called(ctx, zoneID)
	return args.Get(0).(ports.ZoneInfo), args.Error(1)
}

func (m *ZoneDirectoryMock) GetShop(ctx context.Context, shopID kernel.UUID) (ports.ShopInfo, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).(ports.ShopInfo), args.Error(1)
}

type CatalogLookupMock struct{ mock.Mock }

func (m *CatalogLookupMock) GetItem(ctx context.Context, itemID kernel.UUID) (ports.CatalogItem, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(ports.CatalogItem), args.Error(1)
}

type TrackingCacheMock struct{ mock.Mock }

func (m *TrackingCacheMock) Get(ctx context.Context, orderNumber string) (*tracking.Snapshot, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.Snapshot), args.Error(1)
}

func (m *TrackingCacheMock) Put(ctx context.Context, snapshot *tracking.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *TrackingCacheMock) Invalidate(ctx context.Context, orderNumber string) error {
	args := m.Called(ctx, orderNumber)
	return args.Error(0)
}

type EventPublisherMock struct{ mock.Mock }

func (m *EventPublisherMock) Publish(ctx context.Context, event *outbox.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func anyEvents(count int) interface{} {
	return mock.MatchedBy(func(events []*outbox.Event) bool {
		return len(events) == count
	})
}

func newTestCustomer(t *testing.T) order.Customer {
	t.Helper()
	customer, err := order.NewCustomer("Dana", "+77010001122")
	if err != nil {
		t.Fatal(err)
	}
	return customer
}
