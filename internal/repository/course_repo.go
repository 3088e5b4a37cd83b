package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"app/internal/model"

	"github.com/rs/zerolog"
)

// CourseRepository defines the interface for interacting with course data
type CourseRepository interface {
	// GetCoursesByUserID retrieves all courses owned by a user, newest first.
	GetCoursesByUserID(ctx context.Context, userID string) ([]model.Course, error)
	// GetCourseByUserAndPrompt retrieves the course for a (user, prompt)
	// pair, or nil when none exists.
	GetCourseByUserAndPrompt(ctx context.Context, userID, prompt string) (*model.Course, error)
	// CreateCourse inserts a course. The (user_id, prompt) pair is unique;
	// when a concurrent insert wins the race, the stored winner is returned
	// instead and created is false.
	CreateCourse(ctx context.Context, c *model.Course) (course *model.Course, created bool, err error)
	// DeleteCourse removes a course only if it is owned by userID and
	// returns the deleted rows. An ownership mismatch deletes nothing and
	// returns an empty slice.
	DeleteCourse(ctx context.Context, userID, courseID string) ([]model.Course, error)
}

type courseRepo struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewCourseRepo creates a new CourseRepository
func NewCourseRepo(db *sql.DB, logger zerolog.Logger) CourseRepository {
	return &courseRepo{db: db, logger: logger.With().Str("repository", "CourseRepository").Logger()}
}

func (r *courseRepo) GetCoursesByUserID(ctx context.Context, userID string) ([]model.Course, error) {
	query := `
		SELECT id, course_id, user_id, prompt, course_type, content, created_at
		FROM courses
		WHERE user_id = $1
		ORDER BY id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *course)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepo) GetCourseByUserAndPrompt(ctx context.Context, userID, prompt string) (*model.Course, error) {
	query := `
		SELECT id, course_id, user_id, prompt, course_type, content, created_at
		FROM courses
		WHERE user_id = $1 AND prompt = $2
	`
	course, err := scanCourse(r.db.QueryRowContext(ctx, query, userID, prompt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return course, nil
}

func (r *courseRepo) CreateCourse(ctx context.Context, c *model.Course) (*model.Course, bool, error) {
	content, err := json.Marshal(c.Content)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode slide content: %w", err)
	}

	// ON CONFLICT DO NOTHING makes the duplicate check atomic: of two
	// concurrent first-time generates only one row lands, and the loser
	// reads back the winner.
	query := `
		INSERT INTO courses (course_id, user_id, prompt, course_type, content)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, prompt) DO NOTHING
		RETURNING id, course_id, user_id, prompt, course_type, content, created_at
	`
	inserted, err := scanCourse(r.db.QueryRowContext(ctx, query, c.CourseID, c.UserID, c.Prompt, c.Type, content))
	if err == nil {
		return inserted, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}

	existing, err := r.GetCourseByUserAndPrompt(ctx, c.UserID, c.Prompt)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("course for user %s vanished after insert conflict", c.UserID)
	}
	r.logger.Info().Str("user_id", c.UserID).Str("course_id", existing.CourseID).Msg("Insert lost duplicate race, reusing stored course")
	return existing, false, nil
}

func (r *courseRepo) DeleteCourse(ctx context.Context, userID, courseID string) ([]model.Course, error) {
	query := `
		DELETE FROM courses
		WHERE course_id = $1 AND user_id = $2
		RETURNING id, course_id, user_id, prompt, course_type, content, created_at
	`
	rows, err := r.db.QueryContext(ctx, query, courseID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deleted := []model.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		deleted = append(deleted, *course)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deleted, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*model.Course, error) {
	var c model.Course
	var content []byte
	if err := row.Scan(&c.ID, &c.CourseID, &c.UserID, &c.Prompt, &c.Type, &content, &c.CreatedAt); err != nil {
		return nil, err
	}
	if len(content) > 0 {
		if err := json.Unmarshal(content, &c.Content); err != nil {
			return nil, fmt.Errorf("failed to decode slide content: %w", err)
		}
	}
	if c.Content == nil {
		c.Content = []model.Slide{}
	}
	return &c, nil
}
