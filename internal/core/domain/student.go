package domain

import "fmt"

// Student is the slice of the external student directory this service reads.
// The directory owns the data; the ledger only joins against it for receipts,
// reports and level resolution.
type Student struct {
	StudentID int64         `json:"studentID"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Level     AcademicLevel `json:"level"`
	Form      string        `json:"form"`
	Section   string        `json:"section"`
}

// FullName returns the student's display name.
func (s Student) FullName() string {
	return fmt.Sprintf("%s %s", s.FirstName, s.LastName)
}

// ClassName returns the class label used throughout financial reports (form plus
// section, e.g. "S3 A").
func (s Student) ClassName() string {
	if s.Section == "" {
		return s.Form
	}
	return fmt.Sprintf("%s %s", s.Form, s.Section)
}
