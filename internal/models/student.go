package models

// Student mirrors the students table owned by the student directory. This service
// only ever reads it.
type Student struct {
	StudentID int64
	FirstName string
	LastName  string
	Level     string
	Form      string
	Section   string
}
