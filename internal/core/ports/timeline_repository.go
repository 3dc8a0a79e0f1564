package ports

import (
	"context"

	"printshop/internal/core/domain/model/timeline"
)

// TimelineRepository is append-only.
type TimelineRepository interface {
	Add(ctx context.Context, events ...*timeline.Event) error
}
