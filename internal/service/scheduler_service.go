package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// SchedulerService wraps cron-based jobs.
type SchedulerService struct {
	cron *cron.Cron
}

func NewSchedulerService(loc *time.Location) *SchedulerService {
	return &SchedulerService{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
	}
}

// Schedule registers job under a six-field (seconds first) cron spec or a
// descriptor such as "@hourly".
func (s *SchedulerService) Schedule(spec string, job func()) (cron.EntryID, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, fmt.Errorf("empty schedule")
	}
	id, err := s.cron.AddFunc(spec, job)
	if err != nil {
		return 0, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return id, nil
}

// Next reports when the entry will fire next; zero if unknown.
func (s *SchedulerService) Next(id cron.EntryID) time.Time {
	return s.cron.Entry(id).Next
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
