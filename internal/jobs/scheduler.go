package jobs

import (
	"context"
	"time"

	"storefront/internal/domain/model"

	"github.com/go-co-op/gocron/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const statisticsJobName = "statistics-refresh"

// 集計を作り直してキャッシュに載せる
type StatisticsRefresher interface {
	Refresh(ctx context.Context) (model.Statistics, error)
}

// バックグラウンドジョブをまとめる
type Scheduler struct {
	scheduler gocron.Scheduler
	stats     StatisticsRefresher
	timeout   time.Duration
}

func NewScheduler(stats StatisticsRefresher, interval time.Duration) (*Scheduler, error) {
	if interval <= 0 {
		return nil, errors.New("stats refresh interval must be positive")
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.Wrap(err, "create scheduler")
	}

	js := &Scheduler{scheduler: s, stats: stats, timeout: interval}

	//前回が終わっていなければ次回に回す
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(js.refreshStatistics),
		gocron.WithName(statisticsJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, errors.Wrap(err, "register statistics job")
	}
	return js, nil
}

func (js *Scheduler) Start() {
	log.WithField("jobs", len(js.scheduler.Jobs())).Info("starting job scheduler")
	js.scheduler.Start()
}

func (js *Scheduler) Stop() error {
	log.Info("stopping job scheduler")
	return js.scheduler.Shutdown()
}

func (js *Scheduler) refreshStatistics() {
	ctx, cancel := context.WithTimeout(context.Background(), js.timeout)
	defer cancel()

	started := time.Now()
	s, err := js.stats.Refresh(ctx)
	if err != nil {
		log.WithError(err).WithField("job", statisticsJobName).Error("job failed")
		return
	}
	log.WithFields(log.Fields{
		"job":           statisticsJobName,
		"total_orders":  s.TotalOrders,
		"total_revenue": s.TotalRevenue,
		"elapsed_ms":    time.Since(started).Milliseconds(),
	}).Info("job finished")
}
