package commands_test

import (
	"context"
	"testing"
	"time"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/client"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/settings"
	"workshop/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() commands.ClockFunc {
	return func() time.Time { return testNow }
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockClientRepository struct{ mock.Mock }

func (m *MockClientRepository) Add(ctx context.Context, c *client.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, c *client.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) Get(ctx context.Context, id kernel.UUID) (*client.Client, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*client.Client)
	return c, args.Error(1)
}

func (m *MockClientRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSettingsRepository struct{ mock.Mock }

func (m *MockSettingsRepository) Get(ctx context.Context) (*settings.Settings, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*settings.Settings)
	return s, args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, s *settings.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockUoW implements every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ClientRepository() ports.ClientRepository {
	args := m.Called()
	return args.Get(0).(ports.ClientRepository)
}

func (m *MockUoW) SettingsRepository() ports.SettingsRepository {
	args := m.Called()
	return args.Get(0).(ports.SettingsRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockClientUoWFactory struct{ mock.Mock }

func (m *MockClientUoWFactory) Create() commands.ClientUoW {
	args := m.Called()
	return args.Get(0).(commands.ClientUoW)
}

type MockSettingsUoWFactory struct{ mock.Mock }

func (m *MockSettingsUoWFactory) Create() commands.SettingsUoW {
	args := m.Called()
	return args.Get(0).(commands.SettingsUoW)
}

type MockAttachmentStore struct{ mock.Mock }

func (m *MockAttachmentStore) Store(ctx context.Context, payload string, category ports.AttachmentCategory) (string, error) {
	args := m.Called(ctx, payload, category)
	return args.String(0), args.Error(1)
}

func (m *MockAttachmentStore) Usage(ctx context.Context) (ports.StorageUsage, error) {
	args := m.Called(ctx)
	return args.Get(0).(ports.StorageUsage), args.Error(1)
}

type MockOrderLocker struct{ mock.Mock }

func (m *MockOrderLocker) Lock(ctx context.Context, id kernel.UUID) (ports.Unlock, error) {
	args := m.Called(ctx, id)
	unlock, _ := args.Get(0).(ports.Unlock)
	return unlock, args.Error(1)
}

type staticIdentity struct{ name string }

func (s staticIdentity) CurrentActor(context.Context) kernel.Actor {
	return kernel.ActorOrSystem(s.name)
}

type stubInspector struct {
	blank    bool
	photoErr error
}

func (s stubInspector) CheckImage(string) error {
	return s.photoErr
}

func (s stubInspector) IsBlank(string) (bool, error) {
	return s.blank, nil
}

func newTestClient(t *testing.T) *client.Client {
	t.Helper()

	c, err := client.NewClient(kernel.NewUUID(), client.Details{Name: "Meera Jewellers", Phone: "+91 98300 00000"}, testNow)
	require.NoError(t, err)
	return c
}

// orderAt builds an order for c already advanced to stage.
func orderAt(t *testing.T, c *client.Client, stage order.Stage) *order.Order {
	t.Helper()

	m, err := order.NewMeasurements(10.5, 0.5, 91.6)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), order.Intake{
		ClientID:             c.ID(),
		ClientName:           c.Name(),
		JewelleryType:        order.Gold,
		Measurements:         m,
		ExpectedDeliveryDate: kernel.NewDate(2024, time.March, 20),
	}, kernel.SystemActor(), testNow.Add(-time.Hour))
	require.NoError(t, err)

	for s := order.Making; s <= stage; s++ {
		var proof *order.DeliveryProof
		if s == order.Delivered {
			p, perr := order.NewDeliveryProof("https://cdn/p.jpg", "https://cdn/s.png", kernel.SystemActor(), testNow)
			require.NoError(t, perr)
			proof = &p
		}
		require.NoError(t, o.AdvanceTo(s, kernel.SystemActor(), "", proof, testNow.Add(-time.Hour)))
	}
	o.ClearDomainEvents()
	return o
}

func noopUnlock() ports.Unlock {
	return func(context.Context) error { return nil }
}
