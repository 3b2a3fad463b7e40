package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sublet_backend/internal/logger"
	"sublet_backend/internal/metrics"
)

const listingExpiryWorkerName = "listing_expiry"

// ListingExpirer снимает с публикации листинги, срок которых прошел
type ListingExpirer interface {
	DeactivateExpired(db *gorm.DB, today time.Time) (int64, error)
}

// RecommendationInvalidator сбрасывает кэш рекомендаций
type RecommendationInvalidator interface {
	Invalidate(ctx context.Context) error
}

// ListingExpiryWorker периодически выключает листинги с end_date в прошлом.
// Листинги не удаляются, только получают is_active = false.
type ListingExpiryWorker struct {
	db       *gorm.DB
	repo     ListingExpirer
	recs     RecommendationInvalidator
	interval time.Duration
	now      func() time.Time
}

func NewListingExpiryWorker(db *gorm.DB, repo ListingExpirer, recs RecommendationInvalidator, interval time.Duration) *ListingExpiryWorker {
	return &ListingExpiryWorker{
		db:       db,
		repo:     repo,
		recs:     recs,
		interval: interval,
		now:      time.Now,
	}
}

// Start запускает фоновую задачу; первый проход выполняется сразу
func (w *ListingExpiryWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *ListingExpiryWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Listing expiry worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce выполняет один проход и возвращает число выключенных листингов
func (w *ListingExpiryWorker) RunOnce(ctx context.Context) int64 {
	today := w.now().UTC()
	n, err := w.repo.DeactivateExpired(w.db.WithContext(ctx), today)
	if err != nil {
		logger.WorkerLog(listingExpiryWorkerName, "deactivate_expired", err)
		return 0
	}
	if n > 0 {
		metrics.ListingsExpired.Add(float64(n))
		logger.WorkerLog(listingExpiryWorkerName, "deactivate_expired", nil)
		logger.Info("Deactivated expired listings", "count", n, "today", today.Format("2006-01-02"))
		// выключенные листинги не должны оставаться в закэшированных рекомендациях
		if err := w.recs.Invalidate(ctx); err != nil {
			logger.WorkerLog(listingExpiryWorkerName, "invalidate_recommendations", err)
		}
	}
	return n
}
