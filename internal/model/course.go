package model

import "time"

// CourseType selects the slide-count profile for a generated course.
type CourseType string

const (
	CourseTypeQuick CourseType = "quick"
	CourseTypeLong  CourseType = "long"
)

// ParseCourseType resolves a raw type string from a request. Anything that
// is not a known type falls back to quick.
func ParseCourseType(raw string) CourseType {
	if CourseType(raw) == CourseTypeLong {
		return CourseTypeLong
	}
	return CourseTypeQuick
}

// SlideCount returns how many slides the generator should be asked for.
func (t CourseType) SlideCount() int {
	if t == CourseTypeLong {
		return 10
	}
	return 5
}

// Course pairs a user's topic prompt with its generated slide deck. A course
// is written once at generation time and never edited; slides live and die
// with their owning course.
type Course struct {
	ID        int64      `json:"id"`
	CourseID  string     `json:"courseId"`
	UserID    string     `json:"userId"`
	Prompt    string     `json:"prompt"`
	Type      CourseType `json:"type"`
	Content   []Slide    `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
}
