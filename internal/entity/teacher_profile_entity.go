package entity

// TeacherProfile is collected client-side and sent along with each question.
// It is never persisted by this service.
type TeacherProfile struct {
	Name             string
	SubjectInterests []string
	SubjectArea      string
	GradeLevel       string
	EducationLevels  []string
	Experience       string
	SchoolType       string
	Language         string
	SelectedCourses  []string
}
