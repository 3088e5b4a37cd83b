package service

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"
	"app/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrEmptyPrompt is returned when Generate is called without a topic.
	ErrEmptyPrompt = errors.New("prompt must not be empty")
)

// CourseService defines course-related operations. Every operation takes the
// caller's resolved identity explicitly; there is no ambient current user.
type CourseService interface {
	// List returns all courses owned by the caller, newest first.
	List(ctx context.Context, identity model.Identity) ([]model.Course, error)
	// Generate returns the stored course for (caller, prompt) when one
	// exists; otherwise it asks the content generator for a deck and
	// persists it. Generation failures persist nothing.
	Generate(ctx context.Context, identity model.Identity, prompt, rawType string) (*model.Course, error)
	// Delete removes the course only if the caller owns it and returns the
	// deleted records. A mismatch yields an empty set, not an error.
	Delete(ctx context.Context, identity model.Identity, courseID string) ([]model.Course, error)
}

type courseService struct {
	repo      repository.CourseRepository
	generator SlideGenerator
	logger    zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(repo repository.CourseRepository, generator SlideGenerator, logger zerolog.Logger) CourseService {
	return &courseService{
		repo:      repo,
		generator: generator,
		logger:    logger.With().Str("service", "CourseService").Logger(),
	}
}

func (s *courseService) List(ctx context.Context, identity model.Identity) ([]model.Course, error) {
	courses, err := s.repo.GetCoursesByUserID(ctx, identity.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", identity.Email).Msg("Failed to list courses")
		return nil, err
	}
	return courses, nil
}

func (s *courseService) Generate(ctx context.Context, identity model.Identity, prompt, rawType string) (*model.Course, error) {
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	// Duplicate check: generation is the expensive path, so an identical
	// prompt from the same user reuses the stored deck.
	existing, err := s.repo.GetCourseByUserAndPrompt(ctx, identity.Email, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", identity.Email).Msg("Duplicate lookup failed")
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	courseType := model.ParseCourseType(rawType)
	slides, err := s.generator.Generate(ctx, prompt, courseType.SlideCount())
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", identity.Email).Msg("Slide generation failed")
		return nil, fmt.Errorf("slide generation failed: %w", err)
	}

	course := &model.Course{
		CourseID: uuid.NewString(),
		UserID:   identity.Email,
		Prompt:   prompt,
		Type:     courseType,
		Content:  slides,
	}
	stored, created, err := s.repo.CreateCourse(ctx, course)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", identity.Email).Msg("Failed to persist course")
		return nil, err
	}
	if created {
		s.logger.Info().
			Str("user_id", identity.Email).
			Str("course_id", stored.CourseID).
			Int("slides", len(stored.Content)).
			Msg("Course generated")
	}
	return stored, nil
}

func (s *courseService) Delete(ctx context.Context, identity model.Identity, courseID string) ([]model.Course, error) {
	deleted, err := s.repo.DeleteCourse(ctx, identity.Email, courseID)
	if err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to delete course")
		return nil, err
	}
	return deleted, nil
}
