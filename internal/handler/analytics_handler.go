package handler

import (
	"bytes"
	"fmt"
	"time"

	"quiz-arena/internal/dto"
	"quiz-arena/internal/logger"
	"quiz-arena/internal/report"
	"quiz-arena/internal/service"
	"quiz-arena/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AnalyticsHandler serves the admin dashboard and reports.
type AnalyticsHandler struct {
	service   service.AnalyticsService
	validator *validation.Validator
	now       func() time.Time
}

func NewAnalyticsHandler(service service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:   service,
		validator: validation.NewValidator(),
		now:       time.Now,
	}
}

// Overview godoc
// @Summary Dashboard overview
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} domain.DashboardOverview
// @Failure 503 {object} middleware.ErrorResponse
// @Router /admin/analytics [get]
func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.service.DashboardOverview(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(overview)
}

// AttemptStats godoc
// @Summary Attempt statistics
// @Description Totals, averages, flagged count and category distribution
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} domain.AttemptStatsOverview
// @Router /attempts/stats/overview [get]
func (h *AnalyticsHandler) AttemptStats(c *fiber.Ctx) error {
	stats, err := h.service.AttemptStatsOverview(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// StudentReport godoc
// @Summary Student report
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} dto.StudentReportResponse
// @Router /admin/reports/students/{userId} [get]
func (h *AnalyticsHandler) StudentReport(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if errs := h.validator.ValidateUserID("userId", userID); len(errs) > 0 {
		return errs
	}
	r, err := h.service.StudentReport(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewStudentReportResponse(r))
}

// TestReport godoc
// @Summary Test report
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param testId path string true "Test ID"
// @Success 200 {object} dto.TestReportResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/reports/tests/{testId} [get]
func (h *AnalyticsHandler) TestReport(c *fiber.Ctx) error {
	testID := c.Params("testId")
	if errs := h.validator.ValidateID("testId", testID); len(errs) > 0 {
		return errs
	}
	r, err := h.service.TestReport(c.Context(), testID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTestReportResponse(r))
}

// TestReportPDF godoc
// @Summary Test report as PDF
// @Tags admin
// @Security ApiKeyAuth
// @Produce application/pdf
// @Param testId path string true "Test ID"
// @Success 200 {file} binary
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/reports/tests/{testId}/pdf [get]
func (h *AnalyticsHandler) TestReportPDF(c *fiber.Ctx) error {
	testID := c.Params("testId")
	if errs := h.validator.ValidateID("testId", testID); len(errs) > 0 {
		return errs
	}
	r, err := h.service.TestReport(c.Context(), testID)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.RenderTestReport(&buf, r, h.now()); err != nil {
		logger.Get().Error("Failed to render test report", zap.String("testID", testID), zap.Error(err))
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="test-report-%s.pdf"`, testID))
	return c.Send(buf.Bytes())
}
