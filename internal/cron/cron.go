package cron

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Purger removes expired key-value entries and reports how many it removed.
type Purger interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// Scheduler runs the view-state purge on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	purger   Purger
	schedule string
	timeout  time.Duration
}

func NewScheduler(purger Purger, schedule string) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		purger:   purger,
		schedule: schedule,
		timeout:  time.Minute,
	}
}

// Start registers the purge job and starts the scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, func() {
		log.Println("[Cron] Running expired view-state purge...")
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if _, err := Purge(ctx, s.purger); err != nil {
			log.Printf("[Cron] Error purging expired entries: %v", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("[Cron] Scheduler started schedule=%q", s.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running job.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[Cron] Scheduler stopped")
}

// Purge runs one purge pass.
func Purge(ctx context.Context, p Purger) (int64, error) {
	n, err := p.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	log.Printf("view-state purge completed: removed=%d", n)
	return n, nil
}
