package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	portsrepo "github.com/mubiru-dev/school-fees-api/internal/core/ports/repositories"
	"github.com/mubiru-dev/school-fees-api/internal/models"
	"github.com/mubiru-dev/school-fees-api/internal/utils/mapping"
	"github.com/mubiru-dev/school-fees-api/internal/utils/pagination"
)

const auditColumns = `audit_id, action, description, performed_by, timestamp, payment_id, student_id, amount`

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the audit log.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

// AppendAuditLog writes one entry. The table has no update or delete path; this
// insert is the only write.
func (r *PgxAuditRepository) AppendAuditLog(ctx context.Context, entry domain.AuditLogEntry) (*domain.AuditLogEntry, error) {
	m := mapping.ToModelAuditLog(entry)
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO audit_log (action, description, performed_by, timestamp, payment_id, student_id, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING audit_id;
	`,
		m.Action,
		m.Description,
		m.PerformedBy,
		m.Timestamp,
		m.PaymentID,
		m.StudentID,
		m.Amount,
	).Scan(&entry.AuditID)
	if err != nil {
		return nil, fmt.Errorf("failed to append audit log entry: %w", err)
	}
	return &entry, nil
}

// QueryAuditLogs pages through entries in [from, to] ascending by
// (timestamp, audit_id). The opaque token carries the last row of the previous
// page so pages stay stable while new entries are appended.
func (r *PgxAuditRepository) QueryAuditLogs(ctx context.Context, from, to time.Time, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	if limit <= 0 {
		limit = 50
	}

	afterTime := time.Time{}
	afterID := int64(0)
	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("invalid audit log pagination token: %w", err)
		}
		afterTime, err = time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid audit log pagination token (timestamp): %w", err)
		}
		afterID, err = strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid audit log pagination token (id): %w", err)
		}
	}

	query := `
		SELECT ` + auditColumns + `
		FROM audit_log
		WHERE timestamp >= $1 AND timestamp <= $2
			AND (timestamp, audit_id) > ($3, $4)
		ORDER BY timestamp, audit_id
		LIMIT $5;
	`
	rows, err := r.Pool.Query(ctx, query, from, to, afterTime, afterID, limit+1)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	modelEntries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AuditLog, error) {
		var m models.AuditLog
		err := row.Scan(
			&m.AuditID,
			&m.Action,
			&m.Description,
			&m.PerformedBy,
			&m.Timestamp,
			&m.PaymentID,
			&m.StudentID,
			&m.Amount,
		)
		return m, err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan audit logs: %w", err)
	}

	var token *string
	if len(modelEntries) > limit {
		modelEntries = modelEntries[:limit]
		last := modelEntries[len(modelEntries)-1]
		t := pagination.EncodeMultiFieldToken(
			last.Timestamp.Format(time.RFC3339Nano),
			strconv.FormatInt(last.AuditID, 10),
		)
		token = &t
	}

	entries := make([]domain.AuditLogEntry, len(modelEntries))
	for i, m := range modelEntries {
		entries[i] = mapping.ToDomainAuditLog(m)
	}
	return entries, token, nil
}
