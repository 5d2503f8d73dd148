// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartPrefetchScheduler refreshes the cached daily challenge word for the
// supported languages so the first player of the day doesn't pay the provider
// round trip.
func (c *ContentClient) StartPrefetchScheduler(languages []string) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(6*time.Hour),
		gocron.NewTask(func() {
			now := time.Now()
			for _, lang := range languages {
				if _, err := c.RefreshDailyWord(lang, now); err != nil {
					log.Printf("[Scheduler] daily word prefetch failed (lang=%s): %v", lang, err)
					continue
				}
				log.Printf("✅ Prefetched daily challenge word (lang=%s)", lang)
			}
		}),
	)
}

// StartRaffleScheduler sweeps due weekly raffle draws. The sweep itself is
// idempotent per raffle window, so an hourly cadence is plenty.
func (s *StoreService) StartRaffleScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			if err := s.RunRaffleSweep(time.Now()); err != nil {
				log.Printf("[Scheduler] raffle sweep failed: %v", err)
			}
		}),
	)
}
