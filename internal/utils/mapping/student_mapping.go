package mapping

import (
	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	"github.com/mubiru-dev/school-fees-api/internal/models"
)

// ToDomainStudent converts a model Student to a domain Student
func ToDomainStudent(m models.Student) domain.Student {
	return domain.Student{
		StudentID: m.StudentID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Level:     domain.AcademicLevel(m.Level),
		Form:      m.Form,
		Section:   m.Section,
	}
}
