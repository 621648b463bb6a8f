package prompt

import (
	"strings"

	"course-advisor-be/internal/entity"
)

// CourseAdvisorBuilder builds the single-turn recommendation prompt for a teacher.
type CourseAdvisorBuilder struct {
	profile  *entity.TeacherProfile
	question string
}

func NewCourseAdvisorBuilder(profile *entity.TeacherProfile, question string) *CourseAdvisorBuilder {
	if profile == nil {
		profile = &entity.TeacherProfile{}
	}
	return &CourseAdvisorBuilder{
		profile:  profile,
		question: question,
	}
}

func (b *CourseAdvisorBuilder) Build() string {
	var prompt strings.Builder

	b.writeRole(&prompt)
	b.writeProfile(&prompt)
	b.writeGuidelines(&prompt)
	b.writeQuestion(&prompt)

	return prompt.String()
}

func (b *CourseAdvisorBuilder) writeRole(prompt *strings.Builder) {
	prompt.WriteString("You are a course recommendation assistant for teachers.\n\n")
}

func (b *CourseAdvisorBuilder) writeProfile(prompt *strings.Builder) {
	p := b.profile

	interests := p.SubjectInterests
	if len(interests) == 0 && p.SubjectArea != "" {
		interests = []string{p.SubjectArea}
	}
	grade := p.GradeLevel
	if grade == "" {
		grade = strings.Join(p.EducationLevels, ", ")
	}

	prompt.WriteString("User Profile:\n")
	writeLine(prompt, "Name", p.Name)
	writeLine(prompt, "Subject Interests", strings.Join(interests, ", "))
	writeLine(prompt, "Grade Level", grade)
	writeLine(prompt, "Teaching Experience", p.Experience)
	if p.SchoolType != "" {
		writeLine(prompt, "School Type", p.SchoolType)
	}
	if p.Language != "" {
		writeLine(prompt, "Preferred Language", p.Language)
	}
	if len(p.SelectedCourses) > 0 {
		writeLine(prompt, "Courses Already Taken", strings.Join(p.SelectedCourses, ", "))
	}
	prompt.WriteString("\n")
}

func (b *CourseAdvisorBuilder) writeGuidelines(prompt *strings.Builder) {
	prompt.WriteString("You should provide personalized course recommendations, teaching strategies, and educational resources ")
	prompt.WriteString("based on the user's profile and interests. Be helpful, professional, and focus on educational content ")
	prompt.WriteString("that would benefit teachers in their subject areas and grade level.\n")
	if b.profile.Language != "" {
		prompt.WriteString("Answer in ")
		prompt.WriteString(b.profile.Language)
		prompt.WriteString(".\n")
	}
	prompt.WriteString("\n")
}

func (b *CourseAdvisorBuilder) writeQuestion(prompt *strings.Builder) {
	prompt.WriteString("User Question: ")
	prompt.WriteString(strings.TrimSpace(b.question))
}

func writeLine(prompt *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		value = "Not specified"
	}
	prompt.WriteString("- ")
	prompt.WriteString(label)
	prompt.WriteString(": ")
	prompt.WriteString(value)
	prompt.WriteString("\n")
}
