package main

import (
	"quiz-arena/internal/handler"
	"quiz-arena/internal/middleware"
	"quiz-arena/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

type routeDeps struct {
	authService      service.AuthService
	attemptHandler   *handler.AttemptHandler
	analyticsHandler *handler.AnalyticsHandler
	submitLimiter    *middleware.SubmitRateLimiter
}

func registerRoutes(app *fiber.App, deps routeDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/swagger/*", swagger.HandlerDefault)

	protected := middleware.Protected(deps.authService)
	adminOnly := middleware.AdminOnly()
	api := app.Group("/api", protected)

	// Test scoped
	api.Post("/tests/:testId/attempts", deps.submitLimiter.Handler(), deps.attemptHandler.Submit)
	api.Get("/tests/:testId/leaderboard", deps.attemptHandler.Leaderboard)
	api.Get("/tests/:testId/best", deps.attemptHandler.BestAttempt)

	// Attempts. The static stats path is registered before /attempts/:id.
	api.Get("/attempts/stats/overview", adminOnly, deps.analyticsHandler.AttemptStats)
	api.Get("/attempts", adminOnly, deps.attemptHandler.ListAttempts)
	api.Get("/attempts/:id", deps.attemptHandler.GetAttempt)
	api.Put("/attempts/:id/review", adminOnly, deps.attemptHandler.Review)
	api.Get("/users/:userId/attempts", deps.attemptHandler.ListUserAttempts)

	admin := api.Group("/admin", adminOnly)
	admin.Get("/analytics", deps.analyticsHandler.Overview)
	admin.Get("/reports/students/:userId", deps.analyticsHandler.StudentReport)
	admin.Get("/reports/tests/:testId", deps.analyticsHandler.TestReport)
	admin.Get("/reports/tests/:testId/pdf", deps.analyticsHandler.TestReportPDF)
}
