package cmd

import (
	"time"

	httpin "workshop/internal/adapters/in/http"
	"workshop/internal/adapters/out/media"
	"workshop/internal/adapters/out/postgres"
	"workshop/internal/adapters/out/postgres/settingsrepo"
	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
	"workshop/internal/jobs"

	"gorm.io/gorm"
)

// Adapters are the outbound dependencies chosen by configuration.
type Adapters struct {
	DB        *gorm.DB
	Store     ports.AttachmentStore
	Locker    ports.OrderLocker
	Publisher ports.EventPublisher
	Identity  ports.IdentityProvider
	Clock     ports.Clock
}

type CompositionRoot struct {
	cfg        Config
	adapters   Adapters
	uowFactory *postgres.GormUnitOfWorkFactory
	ledger     services.Ledger
}

func NewCompositionRoot(cfg Config, adapters Adapters, loc *time.Location) CompositionRoot {
	if adapters.Identity == nil {
		adapters.Identity = httpin.HeaderIdentity{}
	}
	if adapters.Clock == nil {
		adapters.Clock = commands.ClockFunc(time.Now)
	}
	return CompositionRoot{
		cfg:        cfg,
		adapters:   adapters,
		uowFactory: postgres.NewGormUnitOfWorkFactory(adapters.DB, adapters.Publisher),
		ledger:     services.NewLedger(loc),
	}
}

func (c *CompositionRoot) clientUoWFactory() commands.ClientUoWFactory {
	return FuncClientUoWFactory(func() commands.ClientUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) settingsUoWFactory() commands.SettingsUoWFactory {
	return FuncSettingsUoWFactory(func() commands.SettingsUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) settingsRepository() ports.SettingsRepository {
	return settingsrepo.NewGormSettingsRepository(c.adapters.DB, c.adapters.Clock.Now)
}

func (c *CompositionRoot) CreateCreateClientCommandHandler() commands.CreateClientCommandHandler {
	return commands.NewCreateClientCommandHandler(c.clientUoWFactory(), c.adapters.Clock)
}

func (c *CompositionRoot) CreateEditClientCommandHandler() commands.EditClientCommandHandler {
	return commands.NewEditClientCommandHandler(c.clientUoWFactory())
}

func (c *CompositionRoot) CreateDeleteClientCommandHandler() commands.DeleteClientCommandHandler {
	return commands.NewDeleteClientCommandHandler(c.clientUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.adapters.Store, c.adapters.Identity, c.adapters.Clock)
}

func (c *CompositionRoot) CreateAdvanceStageCommandHandler() commands.AdvanceStageCommandHandler {
	return commands.NewAdvanceStageCommandHandler(
		c.orderUoWFactory(),
		c.adapters.Locker,
		c.adapters.Store,
		services.NewDeliveryProofGate(media.NewImageInspector()),
		c.adapters.Identity,
		c.adapters.Clock,
		c.cfg.PersistenceTimeout,
		c.cfg.LockWait,
	)
}

func (c *CompositionRoot) CreateBulkAdvanceCommandHandler() commands.BulkAdvanceCommandHandler {
	return commands.NewBulkAdvanceCommandHandler(c.CreateAdvanceStageCommandHandler())
}

func (c *CompositionRoot) CreateAmendOrderCommandHandler() commands.AmendOrderCommandHandler {
	return commands.NewAmendOrderCommandHandler(c.orderUoWFactory(), c.adapters.Locker, c.adapters.Identity, c.adapters.Clock)
}

func (c *CompositionRoot) CreateUpdateSettingsCommandHandler() commands.UpdateSettingsCommandHandler {
	return commands.NewUpdateSettingsCommandHandler(c.settingsUoWFactory(), c.adapters.Clock)
}

func (c *CompositionRoot) CreateListClientsQueryHandler() queries.ListClientsQueryHandler {
	return queries.NewListClientsQueryHandler(c.adapters.DB, c.ledger)
}

func (c *CompositionRoot) CreateGetClientQueryHandler() queries.GetClientQueryHandler {
	return queries.NewGetClientQueryHandler(c.adapters.DB, c.ledger)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.adapters.DB, c.ledger, c.adapters.Clock)
}

// CreateGetOrderQueryHandler reads through a unit of work that is never
// begun, so its repository runs on the pool.
func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository(), c.ledger, c.adapters.Clock)
}

func (c *CompositionRoot) CreateGetLedgerQueryHandler() queries.GetLedgerQueryHandler {
	return queries.NewGetLedgerQueryHandler(c.adapters.DB, c.settingsRepository(), c.ledger, c.adapters.Clock)
}

func (c *CompositionRoot) CreateGetTodayMetricsQueryHandler() queries.GetTodayMetricsQueryHandler {
	return queries.NewGetTodayMetricsQueryHandler(c.adapters.DB, c.ledger, c.adapters.Clock)
}

func (c *CompositionRoot) CreateGetRecentActivityQueryHandler() queries.GetRecentActivityQueryHandler {
	return queries.NewGetRecentActivityQueryHandler(c.adapters.DB, c.ledger)
}

func (c *CompositionRoot) CreateListDeliveredOrdersQueryHandler() queries.ListDeliveredOrdersQueryHandler {
	return queries.NewListDeliveredOrdersQueryHandler(c.adapters.DB)
}

func (c *CompositionRoot) CreateGetReceiptQueryHandler() queries.GetReceiptQueryHandler {
	return queries.NewGetReceiptQueryHandler(c.adapters.DB, c.settingsRepository(), c.cfg.DefaultCountry)
}

func (c *CompositionRoot) CreateExportDeliveredOrdersQueryHandler() queries.ExportDeliveredOrdersQueryHandler {
	return queries.NewExportDeliveredOrdersQueryHandler(c.adapters.DB)
}

func (c *CompositionRoot) CreateGetSettingsQueryHandler() queries.GetSettingsQueryHandler {
	return queries.NewGetSettingsQueryHandler(c.settingsRepository())
}

func (c *CompositionRoot) CreateGetStorageUsageQueryHandler() queries.GetStorageUsageQueryHandler {
	return queries.NewGetStorageUsageQueryHandler(c.adapters.Store)
}

// HTTPHandlers collects every use case the REST server exposes.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateClient:   c.CreateCreateClientCommandHandler(),
		EditClient:     c.CreateEditClientCommandHandler(),
		DeleteClient:   c.CreateDeleteClientCommandHandler(),
		CreateOrder:    c.CreateCreateOrderCommandHandler(),
		AdvanceStage:   c.CreateAdvanceStageCommandHandler(),
		BulkAdvance:    c.CreateBulkAdvanceCommandHandler(),
		AmendOrder:     c.CreateAmendOrderCommandHandler(),
		UpdateSettings: c.CreateUpdateSettingsCommandHandler(),

		ListClients:           c.CreateListClientsQueryHandler(),
		GetClient:             c.CreateGetClientQueryHandler(),
		ListOrders:            c.CreateListOrdersQueryHandler(),
		GetOrder:              c.CreateGetOrderQueryHandler(),
		GetLedger:             c.CreateGetLedgerQueryHandler(),
		GetTodayMetrics:       c.CreateGetTodayMetricsQueryHandler(),
		GetRecentActivity:     c.CreateGetRecentActivityQueryHandler(),
		ListDeliveredOrders:   c.CreateListDeliveredOrdersQueryHandler(),
		GetReceipt:            c.CreateGetReceiptQueryHandler(),
		ExportDeliveredOrders: c.CreateExportDeliveredOrdersQueryHandler(),
		GetSettings:           c.CreateGetSettingsQueryHandler(),
		GetStorageUsage:       c.CreateGetStorageUsageQueryHandler(),
	}
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewOverdueScanJob(c.CreateGetTodayMetricsQueryHandler(), c.cfg.OverdueScanSchedule, nil),
	)
}

type FuncClientUoWFactory func() commands.ClientUoW

func (f FuncClientUoWFactory) Create() commands.ClientUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncSettingsUoWFactory func() commands.SettingsUoW

func (f FuncSettingsUoWFactory) Create() commands.SettingsUoW {
	return f()
}
