package http

import (
	"time"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/allocation"
	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/priority"
	"printshop/internal/core/domain/model/stock"
	"printshop/internal/core/domain/model/timeline"

	"github.com/shopspring/decimal"
)

// Requests. Sheet quantities are decimals on the wire so that fractional values reach the
// domain and are rejected there as invalid quantities instead of failing JSON decoding.
type (
	CreateOrderItemRequest struct {
		OrderID      string `json:"order_id" validate:"required,uuid"`
		ProductName  string `json:"product_name" validate:"required,max=200"`
		Quantity     int    `json:"quantity" validate:"required,gt=0"`
		DeliveryDate string `json:"delivery_date" validate:"required,datetime=2006-01-02"`
		NeedDesign   bool   `json:"need_design"`
	}

	TransitionRequest struct {
		Target       string `json:"target" validate:"required"`
		AssignedUser string `json:"assigned_user"`
		Notes        string `json:"notes" validate:"max=2000"`
		Force        bool   `json:"force"`
	}

	SubstageRequest struct {
		Status string `json:"status" validate:"required,oneof=pending in_progress completed"`
	}

	AssignRequest struct {
		UserID string `json:"user_id" validate:"required"`
	}

	SequenceRequest struct {
		Substages []string `json:"substages" validate:"required,min=1,dive,required"`
	}

	NoteRequest struct {
		Text   string `json:"text" validate:"required,max=4000"`
		Public bool   `json:"public"`
	}

	MilestoneRequest struct {
		Action      string   `json:"action" validate:"required"`
		Notes       string   `json:"notes" validate:"max=4000"`
		Attachments []string `json:"attachments" validate:"dive,required"`
		Public      bool     `json:"public"`
	}

	DispatchRequest struct {
		Info     string `json:"info" validate:"max=2000"`
		Complete bool   `json:"complete"`
	}

	RescheduleRequest struct {
		DeliveryDate string `json:"delivery_date" validate:"required,datetime=2006-01-02"`
	}

	RegisterPaperRequest struct {
		Name             string `json:"name" validate:"required,max=200"`
		GSM              int    `json:"gsm" validate:"required,gt=0"`
		Width            int    `json:"width" validate:"required,gt=0"`
		Height           int    `json:"height" validate:"required,gt=0"`
		ReorderThreshold int    `json:"reorder_threshold" validate:"gte=0"`
	}

	StockMovementRequest struct {
		Sheets decimal.Decimal `json:"sheets"`
		Notes  string          `json:"notes" validate:"max=2000"`
	}

	ReserveRequest struct {
		JobID   string          `json:"job_id" validate:"required,uuid"`
		PaperID string          `json:"paper_id" validate:"required,uuid"`
		Sheets  decimal.Decimal `json:"sheets"`
		Notes   string          `json:"notes" validate:"max=2000"`
	}

	SettleRequest struct {
		Notes string `json:"notes" validate:"max=2000"`
	}
)

type ItemResponse struct {
	ID                 string            `json:"id"`
	OrderID            string            `json:"order_id"`
	ProductName        string            `json:"product_name"`
	Quantity           int               `json:"quantity"`
	NeedDesign         bool              `json:"need_design"`
	DeliveryDate       string            `json:"delivery_date"`
	Stage              string            `json:"current_stage"`
	OriginStage        string            `json:"origin_stage,omitempty"`
	Department         string            `json:"current_department"`
	Substage           string            `json:"current_substage,omitempty"`
	SubstageStatus     string            `json:"substage_status,omitempty"`
	ProductionSequence []string          `json:"production_sequence"`
	SubstageProgress   map[string]string `json:"substage_progress"`
	AssignedUser       string            `json:"assigned_user,omitempty"`
	ReadyForProduction bool              `json:"is_ready_for_production"`
	Dispatched         bool              `json:"is_dispatched"`
	Version            int               `json:"version"`
	Priority           string            `json:"priority"`
	DaysUntilDelivery  int               `json:"days_until_delivery"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

func itemFromAggregate(it *item.OrderItem, today time.Time) ItemResponse {
	progress := make(map[string]string, len(it.EffectiveSequence()))
	for _, key := range it.EffectiveSequence() {
		progress[string(key)] = string(it.SubstageProgress(key))
	}

	return ItemResponse{
		ID:                 it.ID().String(),
		OrderID:            it.OrderID().String(),
		ProductName:        it.ProductName(),
		Quantity:           it.Quantity(),
		NeedDesign:         it.NeedDesign(),
		DeliveryDate:       it.DeliveryDate().Format(time.DateOnly),
		Stage:              string(it.Stage()),
		OriginStage:        string(it.OriginStage()),
		Department:         string(it.Department()),
		Substage:           string(it.Substage()),
		SubstageStatus:     string(it.SubstageStatus()),
		ProductionSequence: substageStrings(it.ProductionSequence()),
		SubstageProgress:   progress,
		AssignedUser:       it.AssignedUser(),
		ReadyForProduction: it.IsReadyForProduction(),
		Dispatched:         it.IsDispatched(),
		Version:            it.Version(),
		Priority:           string(it.Priority(today)),
		DaysUntilDelivery:  priority.DaysUntil(it.DeliveryDate(), today),
		CreatedAt:          it.CreatedAt(),
		UpdatedAt:          it.UpdatedAt(),
	}
}

func itemFromView(v queries.OrderItemView) ItemResponse {
	progress := make(map[string]string, len(v.SubstageProgress))
	for key, status := range v.SubstageProgress {
		progress[string(key)] = string(status)
	}

	return ItemResponse{
		ID:                 v.ID.String(),
		OrderID:            v.OrderID.String(),
		ProductName:        v.ProductName,
		Quantity:           v.Quantity,
		NeedDesign:         v.NeedDesign,
		DeliveryDate:       v.DeliveryDate.Format(time.DateOnly),
		Stage:              string(v.Stage),
		OriginStage:        string(v.OriginStage),
		Department:         string(v.Department),
		Substage:           string(v.Substage),
		SubstageStatus:     string(v.SubstageStatus),
		ProductionSequence: substageStrings(v.ProductionSequence),
		SubstageProgress:   progress,
		AssignedUser:       v.AssignedUser,
		ReadyForProduction: v.ReadyForProduction,
		Dispatched:         v.Dispatched,
		Version:            v.Version,
		Priority:           string(v.Priority),
		DaysUntilDelivery:  v.DaysUntilDelivery,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func substageStrings(keys []item.Substage) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, string(k))
	}
	return out
}

type EventResponse struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	ItemID      string    `json:"item_id,omitempty"`
	Stage       string    `json:"stage,omitempty"`
	Substage    string    `json:"substage,omitempty"`
	Action      string    `json:"action"`
	ActorID     string    `json:"actor_id"`
	ActorName   string    `json:"actor_name,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Attachments []string  `json:"attachments"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
}

func eventFromAggregate(ev *timeline.Event) EventResponse {
	resp := EventResponse{
		ID:          ev.ID().String(),
		OrderID:     ev.OrderID().String(),
		Stage:       string(ev.Stage()),
		Substage:    string(ev.Substage()),
		Action:      string(ev.Action()),
		ActorID:     ev.ActorID(),
		ActorName:   ev.ActorName(),
		Notes:       ev.Notes(),
		Attachments: ev.Attachments(),
		IsPublic:    ev.IsPublic(),
		CreatedAt:   ev.CreatedAt(),
	}
	if ev.ItemID() != nil {
		resp.ItemID = ev.ItemID().String()
	}
	if resp.Attachments == nil {
		resp.Attachments = []string{}
	}
	return resp
}

func eventFromView(v queries.TimelineEventView) EventResponse {
	resp := EventResponse{
		ID:          v.ID.String(),
		OrderID:     v.OrderID.String(),
		Stage:       v.Stage,
		Substage:    v.Substage,
		Action:      v.Action,
		ActorID:     v.ActorID,
		ActorName:   v.ActorName,
		Notes:       v.Notes,
		Attachments: v.Attachments,
		IsPublic:    v.IsPublic,
		CreatedAt:   v.CreatedAt,
	}
	if v.ItemID != nil {
		resp.ItemID = v.ItemID.String()
	}
	return resp
}

type PaperResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	GSM              int       `json:"gsm"`
	Width            int       `json:"width"`
	Height           int       `json:"height"`
	TotalSheets      int       `json:"total_sheets"`
	ReservedSheets   int       `json:"reserved_sheets"`
	AvailableSheets  int       `json:"available_sheets"`
	ReorderThreshold int       `json:"reorder_threshold"`
	BelowThreshold   bool      `json:"below_threshold"`
	Status           string    `json:"status"`
	LastSequence     int64     `json:"last_sequence"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func paperFromAggregate(p *stock.PaperStock) PaperResponse {
	return PaperResponse{
		ID:               p.ID().String(),
		Name:             p.Name(),
		GSM:              p.GSM(),
		Width:            p.Width(),
		Height:           p.Height(),
		TotalSheets:      p.TotalSheets(),
		ReservedSheets:   p.ReservedSheets(),
		AvailableSheets:  p.AvailableSheets(),
		ReorderThreshold: p.ReorderThreshold(),
		BelowThreshold:   p.IsBelowThreshold(),
		Status:           string(p.Status()),
		LastSequence:     p.LastSequence(),
		UpdatedAt:        p.UpdatedAt(),
	}
}

func paperFromView(v queries.PaperStockView) PaperResponse {
	return PaperResponse{
		ID:               v.ID.String(),
		Name:             v.Name,
		GSM:              v.GSM,
		Width:            v.Width,
		Height:           v.Height,
		TotalSheets:      v.TotalSheets,
		ReservedSheets:   v.ReservedSheets,
		AvailableSheets:  v.AvailableSheets,
		ReorderThreshold: v.ReorderThreshold,
		BelowThreshold:   v.BelowThreshold,
		Status:           string(v.Status),
		LastSequence:     v.LastSequence,
		UpdatedAt:        v.UpdatedAt,
	}
}

type TransactionResponse struct {
	ID        string    `json:"id"`
	PaperID   string    `json:"stock_item_id"`
	Sequence  int64     `json:"sequence"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	JobID     string    `json:"job_id,omitempty"`
	ActorID   string    `json:"actor_id"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func transactionFromAggregate(t *stock.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:        t.ID().String(),
		PaperID:   t.PaperID().String(),
		Sequence:  t.Sequence(),
		Type:      string(t.Type()),
		Quantity:  t.Quantity(),
		ActorID:   t.ActorID(),
		Notes:     t.Notes(),
		CreatedAt: t.CreatedAt(),
	}
	if t.JobID() != nil {
		resp.JobID = t.JobID().String()
	}
	return resp
}

func transactionFromView(v queries.LedgerEntryView) TransactionResponse {
	resp := TransactionResponse{
		ID:        v.ID.String(),
		PaperID:   v.PaperID.String(),
		Sequence:  v.Sequence,
		Type:      string(v.Type),
		Quantity:  v.Quantity,
		ActorID:   v.ActorID,
		Notes:     v.Notes,
		CreatedAt: v.CreatedAt,
	}
	if v.JobID != nil {
		resp.JobID = v.JobID.String()
	}
	return resp
}

type AllocationResponse struct {
	ID              string    `json:"id"`
	JobID           string    `json:"job_id"`
	PaperID         string    `json:"stock_item_id"`
	PaperName       string    `json:"stock_item_name,omitempty"`
	SheetsRequired  int       `json:"sheets_required"`
	SheetsAllocated int       `json:"sheets_allocated"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func allocationFromAggregate(a *allocation.Allocation) AllocationResponse {
	return AllocationResponse{
		ID:              a.ID().String(),
		JobID:           a.JobID().String(),
		PaperID:         a.PaperID().String(),
		SheetsRequired:  a.SheetsRequired(),
		SheetsAllocated: a.SheetsAllocated(),
		Status:          string(a.Status()),
		CreatedAt:       a.CreatedAt(),
		UpdatedAt:       a.UpdatedAt(),
	}
}

func allocationFromView(v queries.AllocationView) AllocationResponse {
	return AllocationResponse{
		ID:              v.ID.String(),
		JobID:           v.JobID.String(),
		PaperID:         v.PaperID.String(),
		PaperName:       v.PaperName,
		SheetsRequired:  v.SheetsRequired,
		SheetsAllocated: v.SheetsAllocated,
		Status:          string(v.Status),
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

// MaterialResponse is returned by reserve, consume and release.
type MaterialResponse struct {
	Allocation  AllocationResponse  `json:"allocation"`
	Transaction TransactionResponse `json:"transaction"`
}

func materialFromResult(r commands.MaterialResult) MaterialResponse {
	resp := MaterialResponse{}
	if r.Allocation != nil {
		resp.Allocation = allocationFromAggregate(r.Allocation)
	}
	if r.Transaction != nil {
		resp.Transaction = transactionFromAggregate(r.Transaction)
	}
	return resp
}

type LedgerReportResponse struct {
	PaperID          string `json:"stock_item_id"`
	StoredTotal      int    `json:"stored_total_sheets"`
	StoredReserved   int    `json:"stored_reserved_sheets"`
	ReplayedTotal    int    `json:"replayed_total_sheets"`
	ReplayedReserved int    `json:"replayed_reserved_sheets"`
	Entries          int    `json:"entries"`
	AsOfSequence     int64  `json:"as_of_sequence"`
	Consistent       bool   `json:"consistent"`
	Problem          string `json:"problem,omitempty"`
}

func reportFromView(r queries.LedgerReport) LedgerReportResponse {
	return LedgerReportResponse{
		PaperID:          r.PaperID.String(),
		StoredTotal:      r.Stored.Total,
		StoredReserved:   r.Stored.Reserved,
		ReplayedTotal:    r.Replayed.Total,
		ReplayedReserved: r.Replayed.Reserved,
		Entries:          r.Entries,
		AsOfSequence:     r.AsOfSequence,
		Consistent:       r.Consistent,
		Problem:          r.Problem,
	}
}
