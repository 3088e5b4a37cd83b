package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// CourseHandler handles course-related endpoints
type CourseHandler struct {
	courseService service.CourseService
	validate      *validator.Validate
	logger        zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService service.CourseService, validate *validator.Validate, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		validate:      validate,
		logger:        logger,
	}
}

// RegisterRoutes mounts course routes
func (h *CourseHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/api/user-courses", authMw(http.HandlerFunc(h.handleCourses)))
}

func (h *CourseHandler) handleCourses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listCourses(w, r)
	case http.MethodPost:
		h.generateCourse(w, r)
	case http.MethodDelete:
		h.deleteCourse(w, r)
	default:
		http.NotFound(w, r)
	}
}

// listCourses godoc
// @Summary List the caller's courses
// @Description Returns every course owned by the authenticated user, newest first.
// @Tags courses
// @Produce json
// @Success 200 {array} dto.CourseResponseDTO
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/user-courses [get]
func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	courses, err := h.courseService.List(r.Context(), identity)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]dto.CourseResponseDTO, 0, len(courses))
	for i := range courses {
		resp = append(resp, dto.NewCourseResponse(&courses[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// generateCourse godoc
// @Summary Generate or reuse a course
// @Description Returns the stored course for the prompt when one exists, otherwise generates and persists a new deck.
// @Tags courses
// @Accept json
// @Produce json
// @Param course body dto.GenerateCourseDTO true "Generation request"
// @Success 200 {object} dto.CourseResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/user-courses [post]
func (h *CourseHandler) generateCourse(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.GenerateCourseDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	course, err := h.courseService.Generate(r.Context(), identity, req.Prompt, req.Type)
	if err != nil {
		if errors.Is(err, service.ErrEmptyPrompt) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NewCourseResponse(course))
}

// deleteCourse godoc
// @Summary Delete a course
// @Description Deletes the course identified by courseId if the caller owns it. An ownership mismatch deletes nothing and reports an empty set.
// @Tags courses
// @Produce json
// @Param courseId query string true "Course ID"
// @Success 200 {object} dto.DeleteCourseResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/user-courses [delete]
func (h *CourseHandler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	courseID := r.URL.Query().Get("courseId")
	if courseID == "" {
		writeError(w, http.StatusBadRequest, "Missing courseId")
		return
	}

	deleted, err := h.courseService.Delete(r.Context(), identity, courseID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := dto.DeleteCourseResponseDTO{Success: true, Deleted: make([]dto.CourseResponseDTO, 0, len(deleted))}
	for i := range deleted {
		resp.Deleted = append(resp.Deleted, dto.NewCourseResponse(&deleted[i]))
	}
	if len(deleted) == 0 {
		h.logger.Debug().Str("course_id", courseID).Msg("Delete matched no owned course")
	}
	writeJSON(w, http.StatusOK, resp)
}
