package http

import (
	"net/http"
	"strconv"
	"time"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/priority"
	"printshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func parseDate(param, raw string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return d, nil
}

func (s *Server) respondItem(c echo.Context, status int, it *item.OrderItem) error {
	return c.JSON(status, itemFromAggregate(it, s.now()))
}

// CreateItem handles POST /api/v1/items.
func (s *Server) CreateItem(c echo.Context) error {
	var req CreateOrderItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return err
	}
	deliveryDate, err := parseDate("delivery_date", req.DeliveryDate)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderItemCommand(orderID, req.ProductName, req.Quantity, deliveryDate, req.NeedDesign, actorOf(c))
	if err != nil {
		return err
	}

	it, err := call(c, s.handlers.CreateOrderItem, cmd)
	if err != nil {
		return err
	}
	return s.respondItem(c, http.StatusCreated, it)
}

// GetItem handles GET /api/v1/items/:id.
func (s *Server) GetItem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderItemQuery(id)
	if err != nil {
		return err
	}

	view, err := call(c, s.handlers.GetOrderItem, query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, itemFromView(view))
}

// ListItems handles GET /api/v1/items with the optional filters order_id, stage,
// department, priority, assigned_user and include_completed.
func (s *Server) ListItems(c echo.Context) error {
	filter := queries.ItemFilter{
		Stage:        item.Stage(c.QueryParam("stage")),
		Department:   kernel.Department(c.QueryParam("department")),
		Priority:     priority.Tier(c.QueryParam("priority")),
		AssignedUser: c.QueryParam("assigned_user"),
	}
	if raw := c.QueryParam("order_id"); raw != "" {
		orderID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return err
		}
		filter.OrderID = &orderID
	}
	if raw := c.QueryParam("include_completed"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("include_completed", err)
		}
		filter.IncludeCompleted = include
	}

	query, err := queries.NewListOrderItemsQuery(filter)
	if err != nil {
		return err
	}

	views, err := call(c, s.handlers.ListOrderItems, query)
	if err != nil {
		return err
	}

	response := make([]ItemResponse, 0, len(views))
	for _, v := range views {
		response = append(response, itemFromView(v))
	}
	return c.JSON(http.StatusOK, response)
}

// TransitionItem handles POST /api/v1/items/:id/transitions.
func (s *Server) TransitionItem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req TransitionRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewTransitionStageCommand(id, req.Target, req.AssignedUser, req.Notes, req.Force, actorOf(c))
	if err != nil {
		return err
	}

	it, err := call(c, s.handlers.TransitionStage, cmd)
	if err != nil {
		return err
	}
	return s.respondItem(c, http.StatusOK, it)
}

// SetSubstage handles PUT /api/v1/items/:id/substages/:key.
func (s *Server) SetSubstage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req SubstageRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSetSubstageCommand(id, c.Param("key"), req.Status, actorOf(c))
	if err != nil {
		return err
	}

	it, err := call(c, s.handlers.SetSubstage, cmd)
	if err != nil {
		return err
	}
	return s.respondItem(c, http.StatusOK, it)
}

// AssignItem handles PUT /api/v1/items/:id/assignment.
func (s *Server) AssignItem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req AssignRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewAssignUserCommand(id, req.UserID, actorOf(c))
	if err != nil {
		return err
	}

	it, err := call(c, s.handlers.AssignUser, cmd)
	if err != nil {
		return err
	}
	return s.respondItem(c, http.StatusOK, it)
}

// DefineSequence handles PUT /api/v1/items/:id/sequence.
func (s *Server) DefineSequence(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req SequenceRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewDefineProductionSequenceCommand(id, req.Substages, actorOf(c))
	if err != nil {
		return err
	}

	it, err := call(c, s.handlers.DefineSequence, cmd)
	if err != nil {
		return err
	}
	return s.respondItem(c, http.StatusOK, it)
}

// AddNote handles POST /api/v1/items/:id/notes.
func (s *Server) AddNote(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req NoteRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRecordNoteCommand(id, req.Text, req.Public, actorOf(c))
	if err != nil {
		return err
	}

	ev, err := call(c, s.handlers.RecordNote, cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, eventFromAggregate(ev))
}

// AddMilestone handles POST /api/v1/items/:id/milestones.
func (s *Server) AddMilestone(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req MilestoneRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRecordMilestoneCommand(id, req.Action, req.Notes, req.Attachments, req.Public, actorOf(c))
	if err != nil {
		return err
	}

	ev, err := call(c, s.handlers.RecordNote, cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, eventFromAggregate(ev))
}

// DispatchItem handles POST /api/v1/items/:id/dispatch.
func (s *Server) DispatchItem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req DispatchRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewMarkDispatchedCommand(id, req.Info, req.Complete, actorOf(c))
	if err != nil {
		return err
	}

	it, err := call(c, s.handlers.MarkDispatched, cmd)
	if err != nil {
		return err
	}
	return s.respondItem(c, http.StatusOK, it)
}

// RescheduleItem handles PUT /api/v1/items/:id/delivery-date.
func (s *Server) RescheduleItem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req RescheduleRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	deliveryDate, err := parseDate("delivery_date", req.DeliveryDate)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRescheduleDeliveryCommand(id, deliveryDate, actorOf(c))
	if err != nil {
		return err
	}

	it, err := call(c, s.handlers.Reschedule, cmd)
	if err != nil {
		return err
	}
	return s.respondItem(c, http.StatusOK, it)
}

// ListItemAllocations handles GET /api/v1/items/:id/allocations. The item is the job
// its paper is reserved for.
func (s *Server) ListItemAllocations(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewListAllocationsQuery(id)
	if err != nil {
		return err
	}

	views, err := call(c, s.handlers.ListAllocations, query)
	if err != nil {
		return err
	}

	response := make([]AllocationResponse, 0, len(views))
	for _, v := range views {
		response = append(response, allocationFromView(v))
	}
	return c.JSON(http.StatusOK, response)
}

// ListTimeline handles GET /api/v1/orders/:id/timeline. public=true keeps only the
// events shown to customers.
func (s *Server) ListTimeline(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	publicOnly := false
	if raw := c.QueryParam("public"); raw != "" {
		if publicOnly, err = strconv.ParseBool(raw); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("public", err)
		}
	}

	query, err := queries.NewListTimelineQuery(orderID, publicOnly)
	if err != nil {
		return err
	}

	views, err := call(c, s.handlers.ListTimeline, query)
	if err != nil {
		return err
	}

	response := make([]EventResponse, 0, len(views))
	for _, v := range views {
		response = append(response, eventFromView(v))
	}
	return c.JSON(http.StatusOK, response)
}
