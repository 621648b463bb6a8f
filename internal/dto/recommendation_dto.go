package dto

// TeacherProfile mirrors the profile the client keeps locally. Every field is optional.
type TeacherProfile struct {
	Name             string   `json:"name"`
	SubjectInterests []string `json:"subjectInterests"`
	SubjectArea      string   `json:"subjectArea"`
	GradeLevel       string   `json:"gradeLevel"`
	EducationLevels  []string `json:"educationLevels"`
	Experience       string   `json:"experience"`
	SchoolType       string   `json:"schoolType"`
	Language         string   `json:"language"`
	SelectedCourses  []string `json:"selectedCourses"`
}

type AskRequest struct {
	Content string          `json:"content" validate:"notblank,max=8000"`
	Profile *TeacherProfile `json:"profile"`
}

type AskResponse struct {
	Sent      *Message `json:"sent"`
	Reply     *Message `json:"reply"`
	Generated bool     `json:"generated"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
