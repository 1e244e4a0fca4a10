package handler

import (
	"strconv"

	"quiz-arena/internal/domain"
	"quiz-arena/internal/dto"
	"quiz-arena/internal/logger"
	"quiz-arena/internal/middleware"
	"quiz-arena/internal/service"
	"quiz-arena/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AttemptHandler handles attempt submission, history and leaderboard requests
type AttemptHandler struct {
	service   service.AttemptService
	validator *validation.Validator
}

// NewAttemptHandler creates a new AttemptHandler instance
func NewAttemptHandler(service service.AttemptService) *AttemptHandler {
	return &AttemptHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// Submit godoc
// @Summary Submit a test attempt
// @Description Grades the answers, applies integrity flags and stores the attempt
// @Tags attempts
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param testId path string true "Test ID"
// @Param request body dto.SubmitAttemptRequest true "Answers and telemetry"
// @Success 201 {object} dto.SubmitAttemptResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 403 {object} middleware.ErrorResponse "Schedule closed or attempts exhausted"
// @Failure 404 {object} middleware.ErrorResponse "Test not found"
// @Failure 409 {object} middleware.ErrorResponse "Concurrent submission"
// @Failure 412 {object} middleware.ErrorResponse "Test has no points"
// @Failure 429 {object} middleware.ErrorResponse
// @Router /tests/{testId}/attempts [post]
func (h *AttemptHandler) Submit(c *fiber.Ctx) error {
	requester := middleware.RequesterFrom(c)
	testID := c.Params("testId")
	if errs := h.validator.ValidateID("testId", testID); len(errs) > 0 {
		return errs
	}

	var req dto.SubmitAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Debug("Failed to parse submit body", zap.Error(err))
		return domain.NewValidationError("Invalid request body")
	}
	if errs := h.validator.ValidateSubmitAttempt(&req); len(errs) > 0 {
		return errs
	}

	attempt, err := h.service.Submit(c.Context(), service.SubmitInput{
		UserID:         requester.UserID,
		TestID:         testID,
		Answers:        req.Answers,
		TimeSpent:      *req.TimeSpent,
		TabSwitchCount: req.TabSwitchCount,
		StartedAt:      req.StartedAt,
		IPAddress:      c.IP(),
		UserAgent:      c.Get(fiber.HeaderUserAgent),
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewSubmitAttemptResponse(attempt))
}

// GetAttempt godoc
// @Summary Get an attempt
// @Description Returns the stored attempt. Students can only read their own.
// @Tags attempts
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /attempts/{id} [get]
func (h *AttemptHandler) GetAttempt(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateID("id", id); len(errs) > 0 {
		return errs
	}

	attempt, err := h.service.GetAttempt(c.Context(), middleware.RequesterFrom(c), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAttemptResponse(attempt))
}

// ListUserAttempts godoc
// @Summary List a user's attempts
// @Description Newest first. Students can only list their own.
// @Tags attempts
// @Security ApiKeyAuth
// @Produce json
// @Param userId path string true "User ID"
// @Param page query int false "Page (1-based)" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.AttemptListResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /users/{userId}/attempts [get]
func (h *AttemptHandler) ListUserAttempts(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if errs := h.validator.ValidateUserID("userId", userID); len(errs) > 0 {
		return errs
	}
	page, window, err := parsePagination(c)
	if err != nil {
		return err
	}

	attempts, total, err := h.service.ListUserAttempts(c.Context(), middleware.RequesterFrom(c), userID, window)
	if err != nil {
		return err
	}
	return c.JSON(dto.AttemptListResponse{
		Attempts:   dto.NewAttemptResponses(attempts),
		Pagination: dto.NewPaginationInfo(page, window.Limit, total),
	})
}

// ListAttempts godoc
// @Summary List all attempts
// @Description Admin listing with optional filters
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param testId query string false "Test ID"
// @Param userId query string false "User ID"
// @Param flagged query bool false "Only flagged or unflagged attempts"
// @Param page query int false "Page (1-based)" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.AttemptListResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /attempts [get]
func (h *AttemptHandler) ListAttempts(c *fiber.Ctx) error {
	var errs domain.ValidationErrors
	filter := domain.AttemptFilter{
		TestID: c.Query("testId"),
		UserID: c.Query("userId"),
	}
	if filter.TestID != "" {
		errs = append(errs, h.validator.ValidateID("testId", filter.TestID)...)
	}
	if filter.UserID != "" {
		errs = append(errs, h.validator.ValidateUserID("userId", filter.UserID)...)
	}
	if len(errs) > 0 {
		return errs
	}
	flagged, err := parseOptionalBool("flagged", c.Query("flagged"))
	if err != nil {
		return err
	}
	filter.Flagged = flagged

	page, window, err := parsePagination(c)
	if err != nil {
		return err
	}

	attempts, total, err := h.service.ListAttempts(c.Context(), middleware.RequesterFrom(c), filter, window)
	if err != nil {
		return err
	}
	return c.JSON(dto.AttemptListResponse{
		Attempts:   dto.NewAttemptResponses(attempts),
		Pagination: dto.NewPaginationInfo(page, window.Limit, total),
	})
}

// Review godoc
// @Summary Review an attempt
// @Description Sets admin feedback and optionally clears the integrity flag
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Attempt ID"
// @Param request body dto.ReviewAttemptRequest true "Review"
// @Success 200 {object} dto.AttemptResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /attempts/{id}/review [put]
func (h *AttemptHandler) Review(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateID("id", id); len(errs) > 0 {
		return errs
	}

	var req dto.ReviewAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	if errs := h.validator.ValidateReview(&req); len(errs) > 0 {
		return errs
	}

	attempt, err := h.service.Review(c.Context(), middleware.RequesterFrom(c), id, domain.ReviewInput{
		Feedback: req.Feedback,
		Unflag:   req.Unflag,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAttemptResponse(attempt))
}

// Leaderboard godoc
// @Summary Test leaderboard
// @Description Completed attempts ordered by score, then time spent, then submission time
// @Tags attempts
// @Security ApiKeyAuth
// @Produce json
// @Param testId path string true "Test ID"
// @Param limit query int false "Entries to return" default(10)
// @Success 200 {object} dto.LeaderboardResponse
// @Router /tests/{testId}/leaderboard [get]
func (h *AttemptHandler) Leaderboard(c *fiber.Ctx) error {
	testID := c.Params("testId")
	if errs := h.validator.ValidateID("testId", testID); len(errs) > 0 {
		return errs
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return domain.ValidationErrors{domain.NewInvalidFormatError("limit", raw)}
		}
		limit = v
	}

	attempts, err := h.service.Leaderboard(c.Context(), testID, limit)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewLeaderboardResponse(testID, attempts))
}

// BestAttempt godoc
// @Summary Caller's best attempt
// @Description Highest scoring attempt of the caller for a test, faster attempts win ties
// @Tags attempts
// @Security ApiKeyAuth
// @Produce json
// @Param testId path string true "Test ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /tests/{testId}/best [get]
func (h *AttemptHandler) BestAttempt(c *fiber.Ctx) error {
	testID := c.Params("testId")
	if errs := h.validator.ValidateID("testId", testID); len(errs) > 0 {
		return errs
	}

	attempt, err := h.service.BestAttempt(c.Context(), middleware.RequesterFrom(c).UserID, testID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAttemptResponse(attempt))
}
