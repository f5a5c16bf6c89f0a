package audit

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/cmlabs-hris/workledger/internal/domain/audit"
	"github.com/cmlabs-hris/workledger/internal/pkg/database"
	"github.com/cmlabs-hris/workledger/internal/pkg/metrics"
	"github.com/cmlabs-hris/workledger/internal/pkg/tenant"
	"github.com/cmlabs-hris/workledger/internal/pkg/validator"
)

type AuditServiceImpl struct {
	audit.AuditRepository
}

func NewAuditService(auditRepository audit.AuditRepository) audit.AuditService {
	return &AuditServiceImpl{AuditRepository: auditRepository}
}

// Record implements audit.AuditService.
func (s *AuditServiceImpl) Record(ctx context.Context, action audit.Action, detail string) error {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.AuditRepository.Append(ctx, audit.Entry{
		CompanyID:  caller.CompanyID,
		OperatorID: caller.UserID,
		Action:     action,
		Detail:     truncate(detail, audit.MaxDetailLength),
	}); err != nil {
		return fmt.Errorf("failed to record %s: %w", action, err)
	}

	database.AfterCommit(ctx, func() {
		metrics.AuditEntries.WithLabelValues(string(action)).Inc()
	})
	return nil
}

// ListLogs implements audit.AuditService.
func (s *AuditServiceImpl) ListLogs(ctx context.Context, limit int) ([]audit.EntryResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := caller.RequireOwner(); err != nil {
		return nil, err
	}

	limit = validator.ClampLimit(limit, audit.DefaultListLimit, audit.MaxListLimit)

	entries, err := s.AuditRepository.List(ctx, caller.CompanyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	responses := make([]audit.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, audit.NewEntryResponse(e))
	}
	return responses, nil
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
