package routes

import (
	"MediPlan-Backend/internal/api/handlers"
	"MediPlan-Backend/internal/middleware"
	"MediPlan-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	ReportHandler handlers.ReportHandler
	PlanHandler   handlers.PlanHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Reports()
	c.Plans()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Reports() {
	reports := c.App.Group("/api/v1/reports", c.Middleware.AuthMiddleware(c.JWTService))

	reports.Post("", c.ReportHandler.UploadReport)
	reports.Get("", c.ReportHandler.GetReports)
	reports.Get("/:id", c.ReportHandler.GetReport)
	reports.Delete("/:id", c.ReportHandler.DeleteReport)
}

func (c *Config) Plans() {
	plans := c.App.Group("/api/v1/plans", c.Middleware.AuthMiddleware(c.JWTService))

	plans.Post("", c.PlanHandler.GeneratePlan)
	plans.Post("/weekly", c.PlanHandler.GenerateWeeklyPlan)
	plans.Get("", c.PlanHandler.GetPlans)
	plans.Get("/:id", c.PlanHandler.GetPlan)
	plans.Post("/:id/email", c.PlanHandler.EmailPlan)
	plans.Post("/:id/export", c.PlanHandler.ExportPlan)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works"})
	})
}
