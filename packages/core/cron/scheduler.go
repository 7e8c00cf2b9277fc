package cron

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const reloadTimeout = 30 * time.Second

// Reloader re-reads the tournament source.
type Reloader interface {
	Reload(ctx context.Context) error
}

type Scheduler struct {
	cron     *cron.Cron
	reloader Reloader
	spec     string
}

// NewScheduler schedules reloader on spec, a cron expression with seconds.
// A nil reloader or an empty spec gives a scheduler with no job.
func NewScheduler(reloader Reloader, spec string) *Scheduler {
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &Scheduler{
		cron:     c,
		reloader: reloader,
		spec:     spec,
	}
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	log.Println("Starting cron scheduler...")

	if s.reloader != nil && s.spec != "" {
		if _, err := s.cron.AddFunc(s.spec, s.runFixtureReload); err != nil {
			log.Printf("Error scheduling fixture reload job: %v", err)
			return err
		}
		log.Printf("Fixture reload scheduled on %q", s.spec)
	} else {
		log.Println("No fixture reload job to schedule")
	}

	s.cron.Start()
	log.Println("Cron scheduler started successfully")

	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	<-s.cron.Stop().Done()
	log.Println("Cron scheduler stopped")
}

func (s *Scheduler) runFixtureReload() {
	if s.reloader == nil {
		return
	}
	log.Println("Running fixture reload job...")

	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()

	if err := s.reloader.Reload(ctx); err != nil {
		log.Printf("Fixture reload failed, keeping previous data: %v", err)
		return
	}

	log.Println("Fixture reload job completed successfully")
}

// RunNow runs the fixture reload job immediately.
func (s *Scheduler) RunNow() {
	log.Println("Manually triggering fixture reload job...")
	s.runFixtureReload()
}
