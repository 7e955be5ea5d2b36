package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/mubiru-dev/school-fees-api/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	feeSettingRepo := newPgxFeeSettingRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)
	studentRepo := newPgxStudentRepository(dbPool)

	return portsrepo.RepositoryProvider{
		FeeSettingRepo: feeSettingRepo,
		PaymentRepo:    paymentRepo,
		AuditRepo:      auditRepo,
		ReportingRepo:  reportingRepo,
		StudentRepo:    studentRepo,
	}
}
