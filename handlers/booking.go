package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"climaedu/middleware"
	"climaedu/models"
	"climaedu/services/scheduling"
	"climaedu/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the scheduling service over HTTP.
type BookingHandler struct {
	Svc    scheduling.SchedulingService
	Logger *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc scheduling.SchedulingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// SearchHandler handles GET /api/scheduling/slots.
// Query params: courseId, date (YYYY-MM-DD), duration (minutes).
func (h *BookingHandler) SearchHandler(c *gin.Context) {
	courseID := c.Query("courseId")
	date := c.Query("date")
	durationStr := c.Query("duration")
	if courseID == "" || date == "" || durationStr == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "courseId, date and duration are required")
		return
	}
	duration, err := strconv.Atoi(durationStr)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "duration must be an integer number of minutes")
		return
	}

	query := models.AvailabilityQuery{
		CourseID:        courseID,
		Date:            date,
		DurationMinutes: duration,
	}
	results, err := h.Svc.Search(c.Request.Context(), query)
	if err != nil {
		h.respondSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": results,
	})
}

// bookInput is the booking request body. The student identity comes from the
// auth middleware, never from the body.
type bookInput struct {
	TutorID         string    `json:"tutorId" binding:"required"`
	CourseID        string    `json:"courseId" binding:"required"`
	Start           time.Time `json:"start" binding:"required"`
	DurationMinutes int       `json:"durationMinutes" binding:"required"`
}

// BookHandler handles POST /api/scheduling/bookings.
func (h *BookingHandler) BookHandler(c *gin.Context) {
	var input bookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	studentID := c.GetString(middleware.ContextStudentIDKey)
	if studentID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "student identity missing from request context")
		return
	}

	session, err := h.Svc.Book(c.Request.Context(), models.BookingRequest{
		TutorID:         input.TutorID,
		StudentID:       studentID,
		CourseID:        input.CourseID,
		Start:           input.Start,
		DurationMinutes: input.DurationMinutes,
	})
	if err != nil {
		h.respondSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// respondSchedulingError maps the scheduling error taxonomy onto HTTP status
// codes: validation 400, conflict 409 (re-search, do not retry), store
// unavailable 503 (retryable with backoff).
func (h *BookingHandler) respondSchedulingError(c *gin.Context, err error) {
	var (
		validationErr  *scheduling.ValidationError
		conflictErr    *scheduling.ConflictError
		unavailableErr *scheduling.StoreUnavailableError
	)
	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, "invalid request", validationErr.Message)
	case errors.As(err, &conflictErr):
		utils.JSONError(c, http.StatusConflict, "slot no longer available", "another booking was confirmed first; search again for a fresh view")
	case errors.As(err, &unavailableErr):
		utils.JSONError(c, http.StatusServiceUnavailable, "scheduling store unavailable", "transient failure; retry with backoff")
	default:
		h.Logger.Error("unexpected scheduling error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "an unexpected error occurred")
	}
}
