// Package audit provides high-level audit logging for imports and batch
// synchronizations.
package audit

import (
	"fmt"
	"log"

	"github.com/mlutsenko/bookshelf/internal/database/audit"
	"github.com/mlutsenko/bookshelf/internal/entities"
)

// Service records audit events without blocking request handling.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records an audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogBatchSync records the outcome of a graph batch synchronization.
func (s *Service) LogBatchSync(userID uint, shelves, records int, err error) {
	event := &entities.AuditEvent{
		UserID:      userID,
		Action:      entities.AuditActionBatchSync,
		Description: fmt.Sprintf("Synchronized batch of %d shelves and %d records", shelves, records),
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.LogAsync(event)
}

// LogImport records the outcome of a legacy reading-log import.
func (s *Service) LogImport(userID, shelfID uint, created int, err error) {
	event := &entities.AuditEvent{
		UserID:      userID,
		Action:      entities.AuditActionImport,
		Description: fmt.Sprintf("Imported %d records into shelf %d", created, shelfID),
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.LogAsync(event)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
