package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mubiru-dev/school-fees-api/internal/apperrors"
	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	portsrepo "github.com/mubiru-dev/school-fees-api/internal/core/ports/repositories"
	"github.com/mubiru-dev/school-fees-api/internal/models"
	"github.com/mubiru-dev/school-fees-api/internal/utils/mapping"
)

const studentColumns = `student_id, first_name, last_name, level, form, section`

type PgxStudentRepository struct {
	BaseRepository
}

// newPgxStudentRepository creates a read-only repository over the student
// directory tables.
func newPgxStudentRepository(pool *pgxpool.Pool) portsrepo.StudentRepository {
	return &PgxStudentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.StudentRepository = (*PgxStudentRepository)(nil)

// FindStudentByID retrieves one student.
func (r *PgxStudentRepository) FindStudentByID(ctx context.Context, studentID int64) (*domain.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE student_id = $1;
	`
	var m models.Student
	err := r.Pool.QueryRow(ctx, query, studentID).Scan(
		&m.StudentID,
		&m.FirstName,
		&m.LastName,
		&m.Level,
		&m.Form,
		&m.Section,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find student %d: %w", studentID, err)
	}

	student := mapping.ToDomainStudent(m)
	return &student, nil
}

// SearchStudents matches the query against first and last names,
// case-insensitively, ordered by name.
func (r *PgxStudentRepository) SearchStudents(ctx context.Context, query string, limit int) ([]domain.Student, error) {
	sqlQuery := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE first_name ILIKE '%' || $1 || '%'
			OR last_name ILIKE '%' || $1 || '%'
		ORDER BY last_name, first_name
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, sqlQuery, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search students: %w", err)
	}
	defer rows.Close()

	modelStudents, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Student, error) {
		var m models.Student
		err := row.Scan(
			&m.StudentID,
			&m.FirstName,
			&m.LastName,
			&m.Level,
			&m.Form,
			&m.Section,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan students: %w", err)
	}

	students := make([]domain.Student, len(modelStudents))
	for i, m := range modelStudents {
		students[i] = mapping.ToDomainStudent(m)
	}
	return students, nil
}
