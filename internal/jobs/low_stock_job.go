package jobs

import (
	"context"

	"printshop/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// LowStockJob warns about active papers whose available sheets fell under their
// reorder threshold.
type LowStockJob struct {
	lister   paperLister
	schedule string
	cron     *cron.Cron
	logger   *logrus.Entry
}

func NewLowStockJob(lister paperLister, schedule string, logger *logrus.Logger) *LowStockJob {
	return &LowStockJob{
		lister:   lister,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.WithField("component", "low_stock_job"),
	}
}

// Run returns the papers it warned about.
func (j *LowStockJob) Run(ctx context.Context) ([]queries.PaperStockView, error) {
	low, err := j.lister.Handle(ctx, queries.NewListPaperStockQuery(true))
	if err != nil {
		return nil, err
	}

	for _, p := range low {
		j.logger.WithFields(logrus.Fields{
			"paper_id":          p.ID.String(),
			"paper":             p.Name,
			"available_sheets":  p.AvailableSheets,
			"reorder_threshold": p.ReorderThreshold,
		}).Warn("paper below reorder threshold")
	}
	return low, nil
}

func (j *LowStockJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		if _, err := j.Run(context.Background()); err != nil {
			j.logger.WithError(err).Error("low stock check failed")
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.WithField("schedule", j.schedule).Info("low stock job started")
	return nil
}

func (j *LowStockJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("low stock job stopped")
}
