package repositories

import (
	"context"
	"time"

	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
)

// AuditRepository defines persistence operations for the audit log. The public
// contract is deliberately write-once: there is no update or delete.
type AuditRepository interface {
	// AppendAuditLog writes one entry and returns it with its generated id.
	AppendAuditLog(ctx context.Context, entry domain.AuditLogEntry) (*domain.AuditLogEntry, error)

	// QueryAuditLogs returns entries within [from, to] ascending by timestamp.
	// limit caps the page size; nextToken resumes a previous page.
	QueryAuditLogs(ctx context.Context, from, to time.Time, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error)
}
