package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/FaizGusion00/fgadmin-sub000/internal/service"
)

// Scheduler periodically re-fetches events for every user with a live
// view session. Refreshes go through the service's correlated-fetch path,
// so a slow tick that completes after a user-triggered fetch is discarded
// instead of clobbering newer state.
type Scheduler struct {
	cron     *cron.Cron
	svc      *service.CalendarViewService
	log      *logrus.Logger
	interval time.Duration
}

func New(svc *service.CalendarViewService, log *logrus.Logger, loc *time.Location, interval time.Duration) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		svc:      svc,
		log:      log,
		interval: interval,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, func() { s.refreshAll(ctx) }); err != nil {
		return fmt.Errorf("add refresh job: %w", err)
	}

	s.cron.Start()
	s.log.WithField("interval", s.interval.String()).Info("background refresh started")

	<-ctx.Done()
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// refreshAll refreshes every active session. A failed refresh logs and
// leaves that user's rendered events intact; nothing is retried until the
// next tick.
func (s *Scheduler) refreshAll(ctx context.Context) {
	for _, userID := range s.svc.ActiveUsers() {
		if err := s.svc.Refresh(ctx, userID); err != nil {
			s.log.WithField("user_id", userID).WithError(err).Warn("background refresh failed")
		}
	}
}
