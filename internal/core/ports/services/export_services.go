package services

import (
	"context"
	"io"
)

// ExportSvcFacade converts report data into spreadsheet byte-streams. The returned
// string is the suggested download file name.
type ExportSvcFacade interface {
	// ExportAllPayments writes a workbook of every payment in the scope.
	ExportAllPayments(ctx context.Context, term, academicYear string, w io.Writer) (string, error)

	// ExportStudentHistory writes a workbook of one student's payment history.
	ExportStudentHistory(ctx context.Context, studentID int64, w io.Writer) (string, error)
}
