// Package itemrepo maps the OrderItem aggregate to the order_items table. Writes are
// conditional on the version column.
package itemrepo

import (
	"encoding/json"
	"time"

	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderItemDTO is the row of one order item. production_sequence is empty when the
// item follows the production department's default sequence.
type OrderItemDTO struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderID            uuid.UUID      `gorm:"type:uuid;index;not null"`
	ProductName        string         `gorm:"not null"`
	Quantity           int            `gorm:"not null"`
	NeedDesign         bool           `gorm:"not null"`
	DeliveryDate       time.Time      `gorm:"type:date;index;not null"`
	Stage              string         `gorm:"type:varchar(32);index;not null"`
	OriginStage        string         `gorm:"type:varchar(32)"`
	Department         string         `gorm:"type:varchar(32);index;not null"`
	Substage           string         `gorm:"type:varchar(64)"`
	SubstageStatus     string         `gorm:"type:varchar(32)"`
	ProductionSequence pq.StringArray `gorm:"type:text[]"`
	SubstageProgress   string         `gorm:"type:jsonb;not null;default:'{}'"`
	AssignedUser       string
	ReadyForProduction bool           `gorm:"not null"`
	Dispatched         bool           `gorm:"not null"`
	Version            int            `gorm:"not null;default:1"`
	CreatedAt          time.Time      `gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime:false"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(it *item.OrderItem) (OrderItemDTO, error) {
	s := it.Snapshot()

	progress := make(map[string]string, len(s.Progress))
	for k, v := range s.Progress {
		progress[string(k)] = string(v)
	}
	rawProgress, err := json.Marshal(progress)
	if err != nil {
		return OrderItemDTO{}, err
	}

	return OrderItemDTO{
		ID:                 s.ID.Bytes(),
		OrderID:            s.OrderID.Bytes(),
		ProductName:        s.ProductName,
		Quantity:           s.Quantity,
		NeedDesign:         s.NeedDesign,
		DeliveryDate:       s.DeliveryDate,
		Stage:              string(s.Stage),
		OriginStage:        string(s.OriginStage),
		Department:         string(s.Department),
		Substage:           string(s.Substage),
		SubstageStatus:     string(s.SubstageStatus),
		ProductionSequence: SequenceToArray(s.Sequence),
		SubstageProgress:   string(rawProgress),
		AssignedUser:       s.AssignedUser,
		ReadyForProduction: s.ReadyForProduction,
		Dispatched:         s.Dispatched,
		Version:            s.Version,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}, nil
}

func toDomain(dto OrderItemDTO) (*item.OrderItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	progress, err := ProgressFromJSON(dto.SubstageProgress)
	if err != nil {
		return nil, err
	}

	return item.RestoreOrderItem(item.Snapshot{
		ID:                 id,
		OrderID:            orderID,
		ProductName:        dto.ProductName,
		Quantity:           dto.Quantity,
		NeedDesign:         dto.NeedDesign,
		DeliveryDate:       dto.DeliveryDate,
		Stage:              item.Stage(dto.Stage),
		OriginStage:        item.Stage(dto.OriginStage),
		Department:         kernel.Department(dto.Department),
		Substage:           item.Substage(dto.Substage),
		SubstageStatus:     item.SubstageStatus(dto.SubstageStatus),
		Sequence:           SequenceFromArray(dto.ProductionSequence),
		Progress:           progress,
		AssignedUser:       dto.AssignedUser,
		ReadyForProduction: dto.ReadyForProduction,
		Dispatched:         dto.Dispatched,
		Version:            dto.Version,
		CreatedAt:          dto.CreatedAt,
		UpdatedAt:          dto.UpdatedAt,
	})
}

// SequenceToArray and SequenceFromArray convert the text[] column.
func SequenceToArray(seq []item.Substage) pq.StringArray {
	out := make(pq.StringArray, 0, len(seq))
	for _, s := range seq {
		out = append(out, string(s))
	}
	return out
}

func SequenceFromArray(arr pq.StringArray) []item.Substage {
	out := make([]item.Substage, 0, len(arr))
	for _, s := range arr {
		out = append(out, item.Substage(s))
	}
	return out
}

// ProgressFromJSON decodes the substage_progress column.
func ProgressFromJSON(raw string) (map[item.Substage]item.SubstageStatus, error) {
	progress := map[item.Substage]item.SubstageStatus{}
	if raw == "" {
		return progress, nil
	}
	var decoded map[string]string
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, err
	}
	for k, v := range decoded {
		progress[item.Substage(k)] = item.SubstageStatus(v)
	}
	return progress, nil
}
