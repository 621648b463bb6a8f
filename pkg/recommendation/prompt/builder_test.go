package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"course-advisor-be/internal/entity"
)

func TestCourseAdvisorBuilder(t *testing.T) {
	tests := []struct {
		name     string
		profile  *entity.TeacherProfile
		question string
		contains []string
		excludes []string
	}{
		{
			name: "full profile",
			profile: &entity.TeacherProfile{
				Name:             "Ana",
				SubjectInterests: []string{"Math", "Physics"},
				GradeLevel:       "High School",
				Experience:       "5 years",
				SchoolType:       "public",
				Language:         "Spanish",
				SelectedCourses:  []string{"Intro to Calculus"},
			},
			question: "  What should I take next?  ",
			contains: []string{
				"You are a course recommendation assistant for teachers.",
				"- Name: Ana\n",
				"- Subject Interests: Math, Physics\n",
				"- Grade Level: High School\n",
				"- Teaching Experience: 5 years\n",
				"- School Type: public\n",
				"- Courses Already Taken: Intro to Calculus\n",
				"Answer in Spanish.",
			},
		},
		{
			name: "onboarding fields fill the gaps",
			profile: &entity.TeacherProfile{
				Name:            "Ben",
				SubjectArea:     "Biology",
				EducationLevels: []string{"Grade 7", "Grade 8"},
			},
			question: "hi",
			contains: []string{
				"- Subject Interests: Biology\n",
				"- Grade Level: Grade 7, Grade 8\n",
				"- Teaching Experience: Not specified\n",
			},
			excludes: []string{"School Type", "Courses Already Taken", "Answer in"},
		},
		{
			name:     "nil profile",
			question: "anything",
			contains: []string{"- Name: Not specified\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewCourseAdvisorBuilder(tt.profile, tt.question).Build()

			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, got, unwanted)
			}
			assert.True(t, strings.HasSuffix(got, "User Question: "+strings.TrimSpace(tt.question)))
		})
	}
}
