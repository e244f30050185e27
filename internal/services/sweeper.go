package services

import (
	"github.com/brikvest/backend/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const logRetentionDays = 90

// SweeperService runs periodic maintenance: expiring overdue investment
// groups, pruning stale in-memory sessions, and trimming old system logs.
type SweeperService struct {
	db            *gorm.DB
	groups        *GroupService
	logs          *SystemLogService
	cronScheduler *cron.Cron
}

func NewSweeperService(db *gorm.DB) *SweeperService {
	return &SweeperService{
		db:     db,
		groups: NewGroupService(db),
		logs:   NewSystemLogService(db),
	}
}

func (s *SweeperService) Start() {
	s.cronScheduler = cron.New()

	if _, err := s.cronScheduler.AddFunc("*/10 * * * *", s.sweepGroups); err != nil {
		logger.Errorf("Failed to schedule group sweep: %v", err)
	}
	if _, err := s.cronScheduler.AddFunc("*/30 * * * *", s.sweepSessions); err != nil {
		logger.Errorf("Failed to schedule session sweep: %v", err)
	}
	if _, err := s.cronScheduler.AddFunc("0 3 * * *", s.sweepLogs); err != nil {
		logger.Errorf("Failed to schedule log cleanup: %v", err)
	}

	s.cronScheduler.Start()
	logger.Infof("Sweeper scheduler started")
}

func (s *SweeperService) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

func (s *SweeperService) sweepGroups() {
	expired, err := s.groups.ExpireOverdue()
	if err != nil {
		logger.Errorf("Group expiry sweep failed: %v", err)
		return
	}
	if expired > 0 {
		logger.Infof("Expired %d overdue investment groups", expired)
	}
}

func (s *SweeperService) sweepSessions() {
	store := GetSessionStore()
	mem, ok := store.(*MemorySessionStore)
	if !ok {
		return
	}
	if pruned := mem.Prune(); pruned > 0 {
		logger.Infof("Pruned %d expired sessions", pruned)
	}
}

func (s *SweeperService) sweepLogs() {
	removed, err := s.logs.Cleanup(logRetentionDays)
	if err != nil {
		logger.Errorf("System log cleanup failed: %v", err)
		return
	}
	if removed > 0 {
		logger.Infof("Removed %d system log entries older than %d days", removed, logRetentionDays)
	}
}
