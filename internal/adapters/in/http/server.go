// Package http is the REST adapter of the service. It decodes requests, resolves the
// acting user from gateway headers, calls the command and query handlers and renders
// their results or typed errors as JSON.
package http

import (
	"context"
	"net/http"
	"time"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/stock"
	"printshop/internal/core/domain/model/timeline"
	"printshop/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Handler is satisfied by every command and query handler of the application layer.
type Handler[C, R any] interface {
	Handle(ctx context.Context, in C) (R, error)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc[C, R any] func(ctx context.Context, in C) (R, error)

func (f HandlerFunc[C, R]) Handle(ctx context.Context, in C) (R, error) {
	return f(ctx, in)
}

// Handlers lists the use cases the server exposes. A nil handler leaves its route
// answering 501.
type Handlers struct {
	// Commands
	CreateOrderItem  Handler[commands.CreateOrderItemCommand, *item.OrderItem]
	TransitionStage  Handler[commands.TransitionStageCommand, *item.OrderItem]
	SetSubstage      Handler[commands.SetSubstageCommand, *item.OrderItem]
	AssignUser       Handler[commands.AssignUserCommand, *item.OrderItem]
	DefineSequence   Handler[commands.DefineProductionSequenceCommand, *item.OrderItem]
	RecordNote       Handler[commands.RecordNoteCommand, *timeline.Event]
	MarkDispatched   Handler[commands.MarkDispatchedCommand, *item.OrderItem]
	Reschedule       Handler[commands.RescheduleDeliveryCommand, *item.OrderItem]
	RegisterPaper    Handler[commands.RegisterPaperCommand, *stock.PaperStock]
	DiscontinuePaper Handler[commands.DiscontinuePaperCommand, *stock.PaperStock]
	StockMovement    Handler[commands.StockMovementCommand, *stock.Transaction]
	ReserveMaterial  Handler[commands.ReserveMaterialCommand, commands.MaterialResult]
	SettleMaterial   Handler[commands.SettleMaterialCommand, commands.MaterialResult]

	// Queries
	GetOrderItem    Handler[queries.GetOrderItemQuery, queries.OrderItemView]
	ListOrderItems  Handler[queries.ListOrderItemsQuery, []queries.OrderItemView]
	ListTimeline    Handler[queries.ListTimelineQuery, []queries.TimelineEventView]
	ListAllocations Handler[queries.ListAllocationsQuery, []queries.AllocationView]
	GetPaperStock   Handler[queries.GetPaperStockQuery, queries.PaperStockView]
	ListPaperStock  Handler[queries.ListPaperStockQuery, []queries.PaperStockView]
	ListLedger      Handler[queries.ListLedgerQuery, []queries.LedgerEntryView]
	VerifyLedger    Handler[queries.VerifyLedgerQuery, []queries.LedgerReport]
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	limiter  *RateLimiter
	metrics  *metrics.Metrics
	logger   *logrus.Entry
	now      func() time.Time
}

// NewServer creates a new HTTP server. limiter and m may be nil.
func NewServer(handlers Handlers, limiter *RateLimiter, m *metrics.Metrics, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Server{
		handlers: handlers,
		limiter:  limiter,
		metrics:  m,
		logger:   logger.WithField("component", "http"),
		now:      time.Now,
	}
}

// Register installs the routes, the validator and the error handler on e.
func (s *Server) Register(e *echo.Echo) {
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = s.handleError
	e.Use(requestLogger(s.logger, s.metrics))

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	api := e.Group("/api/v1", requireActor)
	write := s.limiter.Middleware

	items := api.Group("/items")
	items.GET("", s.ListItems)
	items.POST("", s.CreateItem, write)
	items.GET("/:id", s.GetItem)
	items.POST("/:id/transitions", s.TransitionItem, write)
	items.PUT("/:id/substages/:key", s.SetSubstage, write)
	items.PUT("/:id/assignment", s.AssignItem, write)
	items.PUT("/:id/sequence", s.DefineSequence, write)
	items.POST("/:id/notes", s.AddNote, write)
	items.POST("/:id/milestones", s.AddMilestone, write)
	items.POST("/:id/dispatch", s.DispatchItem, write)
	items.PUT("/:id/delivery-date", s.RescheduleItem, write)
	items.GET("/:id/allocations", s.ListItemAllocations)

	api.GET("/orders/:id/timeline", s.ListTimeline)

	papers := api.Group("/papers")
	papers.GET("", s.ListPapers)
	papers.POST("", s.RegisterPaper, write)
	papers.GET("/:id", s.GetPaper)
	papers.POST("/:id/discontinue", s.DiscontinuePaper, write)
	papers.POST("/:id/receipts", s.ReceiveStock, write)
	papers.POST("/:id/issues", s.IssueStock, write)
	papers.POST("/:id/adjustments", s.AdjustStock, write)
	papers.GET("/:id/ledger", s.ListLedger)

	api.GET("/ledger/verification", s.VerifyLedger)

	allocations := api.Group("/allocations")
	allocations.POST("", s.ReserveMaterial, write)
	allocations.POST("/:id/consume", s.ConsumeMaterial, write)
	allocations.POST("/:id/release", s.ReleaseMaterial, write)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// call runs h or answers 501 when the use case is not wired.
func call[C, R any](c echo.Context, h Handler[C, R], in C) (R, error) {
	if h == nil {
		var zero R
		return zero, echo.NewHTTPError(http.StatusNotImplemented, "operation is not available")
	}
	return h.Handle(c.Request().Context(), in)
}
