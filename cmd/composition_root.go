package cmd

import (
	httpadapter "printshop/internal/adapters/in/http"
	"printshop/internal/adapters/out/postgres"
	"printshop/internal/adapters/out/postgres/profilerepo"
	"printshop/internal/adapters/out/postgres/stockrepo"
	"printshop/internal/adapters/out/rediscache"
	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
	"printshop/internal/jobs"
	"printshop/internal/pkg/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
	ledger     ports.Ledger
	directory  ports.DepartmentDirectory
	cache      ports.PriorityCache
	jobLock    jobs.RunLock
	policy     services.WorkflowPolicy
	metrics    *metrics.Metrics
	logger     *logrus.Logger
}

// NewCompositionRoot wires the adapters. redisClient may be nil, in which case
// priorities are computed on every read and reconciliation runs unlocked.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient redis.UniversalClient,
	capabilities services.RoleCapabilities,
	m *metrics.Metrics,
	logger *logrus.Logger,
) CompositionRoot {
	root := CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		ledger:     stockrepo.NewGormLedger(gormDB),
		directory:  profilerepo.NewGormDepartmentDirectory(gormDB),
		policy:     services.NewWorkflowPolicy(capabilities),
		metrics:    m,
		logger:     logger,
	}
	if redisClient != nil {
		root.cache = rediscache.NewPriorityCache(redisClient, config.PriorityCacheTTL)
		root.jobLock = rediscache.NewJobLock(redisClient)
	}
	return root
}

func (c *CompositionRoot) itemUoWFactory() commands.ItemUoWFactory {
	return FuncItemUoWFactory(func() commands.ItemUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) stockUoWFactory() commands.StockUoWFactory {
	return FuncStockUoWFactory(func() commands.StockUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) reservationUoWFactory() commands.ReservationUoWFactory {
	return FuncReservationUoWFactory(func() commands.ReservationUoW {
		return c.uowFactory.Create()
	})
}

// HTTPHandlers builds every use case the REST adapter exposes.
func (c *CompositionRoot) HTTPHandlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		CreateOrderItem:  commands.NewCreateOrderItemCommandHandler(c.itemUoWFactory(), c.policy),
		TransitionStage:  commands.NewTransitionStageCommandHandler(c.itemUoWFactory(), c.policy, c.directory, c.metrics),
		SetSubstage:      commands.NewSetSubstageCommandHandler(c.itemUoWFactory(), c.policy),
		AssignUser:       commands.NewAssignUserCommandHandler(c.itemUoWFactory(), c.policy, c.directory),
		DefineSequence:   commands.NewDefineProductionSequenceCommandHandler(c.itemUoWFactory(), c.policy),
		RecordNote:       commands.NewRecordNoteCommandHandler(c.itemUoWFactory(), c.policy),
		MarkDispatched:   commands.NewMarkDispatchedCommandHandler(c.itemUoWFactory(), c.policy, c.metrics),
		Reschedule:       commands.NewRescheduleDeliveryCommandHandler(c.itemUoWFactory(), c.policy, c.cache, c.logger),
		RegisterPaper:    commands.NewRegisterPaperCommandHandler(c.stockUoWFactory(), c.policy),
		DiscontinuePaper: commands.NewDiscontinuePaperCommandHandler(c.stockUoWFactory(), c.policy),
		StockMovement:    commands.NewStockMovementCommandHandler(c.ledger, c.policy, c.metrics),
		ReserveMaterial:  commands.NewReserveMaterialCommandHandler(c.reservationUoWFactory(), c.ledger, c.policy, c.metrics, c.logger),
		SettleMaterial:   commands.NewSettleMaterialCommandHandler(c.reservationUoWFactory(), c.ledger, c.policy, c.metrics, c.logger),

		GetOrderItem:    queries.NewGetOrderItemQueryHandler(c.gormDB, c.cache, c.logger),
		ListOrderItems:  queries.NewListOrderItemsQueryHandler(c.gormDB, c.cache, c.logger),
		ListTimeline:    queries.NewListTimelineQueryHandler(c.gormDB),
		ListAllocations: queries.NewListAllocationsQueryHandler(c.gormDB),
		GetPaperStock:   queries.NewGetPaperStockQueryHandler(c.gormDB),
		ListPaperStock:  queries.NewListPaperStockQueryHandler(c.gormDB),
		ListLedger:      queries.NewListLedgerQueryHandler(c.gormDB),
		VerifyLedger:    queries.NewVerifyLedgerQueryHandler(c.gormDB, c.ledger),
	}
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.HTTPHandlers(),
		httpadapter.NewRateLimiter(c.config.RateLimitPerSecond, c.config.RateLimitBurst),
		c.metrics,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewLedgerReconciliationJob(
			queries.NewVerifyLedgerQueryHandler(c.gormDB, c.ledger),
			c.jobLock,
			c.metrics,
			c.config.ReconcileSchedule,
			c.logger,
		),
		jobs.NewLowStockJob(queries.NewListPaperStockQueryHandler(c.gormDB), c.config.LowStockSchedule, c.logger),
	)
}

type FuncItemUoWFactory func() commands.ItemUoW

func (f FuncItemUoWFactory) Create() commands.ItemUoW {
	return f()
}

type FuncStockUoWFactory func() commands.StockUoW

func (f FuncStockUoWFactory) Create() commands.StockUoW {
	return f()
}

type FuncReservationUoWFactory func() commands.ReservationUoW

func (f FuncReservationUoWFactory) Create() commands.ReservationUoW {
	return f()
}
