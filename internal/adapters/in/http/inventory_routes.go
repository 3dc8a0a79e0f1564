package http

import (
	"net/http"
	"strconv"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// RegisterPaper handles POST /api/v1/papers.
func (s *Server) RegisterPaper(c echo.Context) error {
	var req RegisterPaperRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterPaperCommand(req.Name, req.GSM, req.Width, req.Height, req.ReorderThreshold, actorOf(c))
	if err != nil {
		return err
	}

	paper, err := call(c, s.handlers.RegisterPaper, cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, paperFromAggregate(paper))
}

// GetPaper handles GET /api/v1/papers/:id.
func (s *Server) GetPaper(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetPaperStockQuery(id)
	if err != nil {
		return err
	}

	view, err := call(c, s.handlers.GetPaperStock, query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paperFromView(view))
}

// ListPapers handles GET /api/v1/papers. low_stock=true keeps only active papers whose
// available sheets fell under the reorder threshold.
func (s *Server) ListPapers(c echo.Context) error {
	lowStock := false
	if raw := c.QueryParam("low_stock"); raw != "" {
		var err error
		if lowStock, err = strconv.ParseBool(raw); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("low_stock", err)
		}
	}

	views, err := call(c, s.handlers.ListPaperStock, queries.NewListPaperStockQuery(lowStock))
	if err != nil {
		return err
	}

	response := make([]PaperResponse, 0, len(views))
	for _, v := range views {
		response = append(response, paperFromView(v))
	}
	return c.JSON(http.StatusOK, response)
}

// DiscontinuePaper handles POST /api/v1/papers/:id/discontinue.
func (s *Server) DiscontinuePaper(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDiscontinuePaperCommand(id, actorOf(c))
	if err != nil {
		return err
	}

	paper, err := call(c, s.handlers.DiscontinuePaper, cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paperFromAggregate(paper))
}

type movementConstructor func(kernel.UUID, decimal.Decimal, string, kernel.Actor) (commands.StockMovementCommand, error)

func (s *Server) stockMovement(c echo.Context, newCommand movementConstructor) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req StockMovementRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := newCommand(id, req.Sheets, req.Notes, actorOf(c))
	if err != nil {
		return err
	}

	tx, err := call(c, s.handlers.StockMovement, cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transactionFromAggregate(tx))
}

// ReceiveStock handles POST /api/v1/papers/:id/receipts.
func (s *Server) ReceiveStock(c echo.Context) error {
	return s.stockMovement(c, commands.NewReceiveStockCommand)
}

// IssueStock handles POST /api/v1/papers/:id/issues.
func (s *Server) IssueStock(c echo.Context) error {
	return s.stockMovement(c, commands.NewIssueStockCommand)
}

// AdjustStock handles POST /api/v1/papers/:id/adjustments. Sheets is a signed delta.
func (s *Server) AdjustStock(c echo.Context) error {
	return s.stockMovement(c, commands.NewAdjustStockCommand)
}

// ListLedger handles GET /api/v1/papers/:id/ledger, optionally narrowed by job_id.
func (s *Server) ListLedger(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var jobID *kernel.UUID
	if raw := c.QueryParam("job_id"); raw != "" {
		parsed, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return errs.NewValueIsInvalidErrorWithCause("job_id", parseErr)
		}
		jobID = &parsed
	}

	query, err := queries.NewListLedgerQuery(id, jobID)
	if err != nil {
		return err
	}

	views, err := call(c, s.handlers.ListLedger, query)
	if err != nil {
		return err
	}

	response := make([]TransactionResponse, 0, len(views))
	for _, v := range views {
		response = append(response, transactionFromView(v))
	}
	return c.JSON(http.StatusOK, response)
}

// VerifyLedger handles GET /api/v1/ledger/verification. Without paper_id every paper
// is replayed.
func (s *Server) VerifyLedger(c echo.Context) error {
	var paperID *kernel.UUID
	if raw := c.QueryParam("paper_id"); raw != "" {
		parsed, err := kernel.UUIDFromString(raw)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("paper_id", err)
		}
		paperID = &parsed
	}

	query, err := queries.NewVerifyLedgerQuery(paperID)
	if err != nil {
		return err
	}

	reports, err := call(c, s.handlers.VerifyLedger, query)
	if err != nil {
		return err
	}

	response := make([]LedgerReportResponse, 0, len(reports))
	for _, r := range reports {
		response = append(response, reportFromView(r))
	}
	return c.JSON(http.StatusOK, response)
}

// ReserveMaterial handles POST /api/v1/allocations.
func (s *Server) ReserveMaterial(c echo.Context) error {
	var req ReserveRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	jobID, err := kernel.UUIDFromString(req.JobID)
	if err != nil {
		return err
	}
	paperID, err := kernel.UUIDFromString(req.PaperID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewReserveMaterialCommand(jobID, paperID, req.Sheets, req.Notes, actorOf(c))
	if err != nil {
		return err
	}

	result, err := call(c, s.handlers.ReserveMaterial, cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, materialFromResult(result))
}

type settleConstructor func(kernel.UUID, string, kernel.Actor) (commands.SettleMaterialCommand, error)

func (s *Server) settle(c echo.Context, newCommand settleConstructor) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req SettleRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := newCommand(id, req.Notes, actorOf(c))
	if err != nil {
		return err
	}

	result, err := call(c, s.handlers.SettleMaterial, cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, materialFromResult(result))
}

// ConsumeMaterial handles POST /api/v1/allocations/:id/consume.
func (s *Server) ConsumeMaterial(c echo.Context) error {
	return s.settle(c, commands.NewConsumeMaterialCommand)
}

// ReleaseMaterial handles POST /api/v1/allocations/:id/release.
func (s *Server) ReleaseMaterial(c echo.Context) error {
	return s.settle(c, commands.NewReleaseMaterialCommand)
}
