package dto

import (
	"time"

	"app/internal/model"
)

// GenerateCourseDTO is the body of a generation request.
type GenerateCourseDTO struct {
	Prompt string `json:"prompt" validate:"required"`
	Type   string `json:"type"`
}

// CourseResponseDTO is returned in API responses for courses. Field names
// match the wire format the web client already consumes.
type CourseResponseDTO struct {
	CourseID  string        `json:"courseId"`
	UserID    string        `json:"userId"`
	Prompt    string        `json:"prompt"`
	Type      string        `json:"type"`
	Content   []model.Slide `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
}

// DeleteCourseResponseDTO wraps the deleted records.
type DeleteCourseResponseDTO struct {
	Success bool                `json:"success"`
	Deleted []CourseResponseDTO `json:"deleted"`
}

// NewCourseResponse maps a domain course to its response shape.
func NewCourseResponse(c *model.Course) CourseResponseDTO {
	content := c.Content
	if content == nil {
		content = []model.Slide{}
	}
	return CourseResponseDTO{
		CourseID:  c.CourseID,
		UserID:    c.UserID,
		Prompt:    c.Prompt,
		Type:      string(c.Type),
		Content:   content,
		CreatedAt: c.CreatedAt,
	}
}
