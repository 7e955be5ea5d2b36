package repositories

import (
	"context"

	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
)

// StudentRepository is the read-only boundary to the external student directory.
type StudentRepository interface {
	// FindStudentByID returns the student, or apperrors.ErrNotFound.
	FindStudentByID(ctx context.Context, studentID int64) (*domain.Student, error)

	// SearchStudents matches the query against student names, case-insensitively.
	SearchStudents(ctx context.Context, query string, limit int) ([]domain.Student, error)
}
