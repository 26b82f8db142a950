package usecase

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	log "github.com/sirupsen/logrus"
)

type ReportUsecase struct {
	reports repo.ReportRepository
	cache   repo.StatisticsCache
}

// cacheはnilでもよい
func NewReportUsecase(reports repo.ReportRepository, cache repo.StatisticsCache) *ReportUsecase {
	return &ReportUsecase{reports: reports, cache: cache}
}

// キャッシュがあればそれを返す
func (u *ReportUsecase) Statistics(ctx context.Context) (model.Statistics, error) {
	if u.cache != nil {
		s, err := u.cache.GetStatistics(ctx)
		if err != nil {
			log.WithError(err).Warn("statistics cache get failed")
		} else if s != nil {
			return *s, nil
		}
	}
	return u.Refresh(ctx)
}

// DBから集計し直してキャッシュに入れる。定期ジョブからも呼ばれる
func (u *ReportUsecase) Refresh(ctx context.Context) (model.Statistics, error) {
	s, err := u.reports.Statistics(ctx)
	if err != nil {
		return model.Statistics{}, internalError(err)
	}
	if u.cache != nil {
		if err := u.cache.SetStatistics(ctx, s); err != nil {
			log.WithError(err).Warn("statistics cache set failed")
		}
	}
	return s, nil
}
