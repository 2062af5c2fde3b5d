package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"SwapBoard/internal/model"
)

// Refresher fetches a series upstream and stores it in the cache.
type Refresher interface {
	Refresh(ctx context.Context, pair model.Pair, period model.Period) (model.Series, error)
}

// Scheduler manages the cache warm-up cron task.
type Scheduler struct {
	Cron      *cron.Cron
	Refresher Refresher
	Pairs     []model.Pair
	Periods   []model.Period
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler that warms every period of each pair.
func NewScheduler(ctx context.Context, r Refresher, pairs []model.Pair) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Refresher: r,
		Pairs:     pairs,
		Periods:   model.Periods,
		Ctx:       ctx,
	}
}

// RegisterAll registers the warm-up task.
func (s *Scheduler) RegisterAll(warmCron string) error {
	if _, err := s.Cron.AddFunc(warmCron, s.warmTask); err != nil {
		return fmt.Errorf("register warm task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunWarmNow executes the warm-up task immediately (for RUN_ON_START).
func (s *Scheduler) RunWarmNow() (ok, failed int) {
	return s.warm()
}

func (s *Scheduler) warmTask() {
	s.warm()
}

func (s *Scheduler) warm() (ok, failed int) {
	log.Printf("[INFO] warming %d pairs", len(s.Pairs))
	for _, pair := range s.Pairs {
		for _, period := range s.Periods {
			if s.Ctx.Err() != nil {
				log.Printf("[WARN] warm-up interrupted: %v", s.Ctx.Err())
				return ok, failed
			}
			series, err := s.Refresher.Refresh(s.Ctx, pair, period)
			if err != nil {
				log.Printf("[ERROR] warm %s %s: %v", pair, period, err)
				failed++
				continue
			}
			ok++
			log.Printf("[INFO] warmed %s %s (%d samples)", pair, period, len(series))
		}
	}
	return ok, failed
}
