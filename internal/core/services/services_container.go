package services

import (
	portsrepo "github.com/mubiru-dev/school-fees-api/internal/core/ports/repositories"
	portssvc "github.com/mubiru-dev/school-fees-api/internal/core/ports/services"
	"github.com/mubiru-dev/school-fees-api/internal/platform/config"
)

// NewServiceContainer wires every service with its repository dependencies and
// returns the container the handlers consume.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	feeSchedule := NewFeeScheduleService(repos.FeeSettingRepo, repos.AuditRepo)
	payment := NewPaymentService(repos.PaymentRepo, repos.AuditRepo, repos.StudentRepo, feeSchedule)
	reporting := NewReportingService(repos.ReportingRepo, repos.AuditRepo)
	exportSvc := NewExportService(repos.ReportingRepo)

	return &portssvc.ServiceContainer{
		FeeSchedule: feeSchedule,
		Payment:     payment,
		Reporting:   reporting,
		Export:      exportSvc,
	}
}
