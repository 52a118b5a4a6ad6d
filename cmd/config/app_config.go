package config

import (
	"os"
	"time"

	"MediPlan-Backend/internal/api/handlers"
	"MediPlan-Backend/internal/api/routes"
	"MediPlan-Backend/internal/middleware"
	"MediPlan-Backend/internal/utils"
	"MediPlan-Backend/internal/utils/storage"
	"MediPlan-Backend/pkg/interpreter"
	"MediPlan-Backend/pkg/jwt"
	"MediPlan-Backend/pkg/mealplan"
	"MediPlan-Backend/pkg/report"
	"MediPlan-Backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	ruleCache := interpreter.NewRuleCache(interpreter.DefaultCacheTTL)

	// Repository
	userRepository := user.NewUserRepository(db)
	reportRepository := report.NewReportRepository(db)
	planRepository := mealplan.NewMealPlanRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	interpreterService := interpreter.NewInterpreterService(ruleCache, interpreter.DefaultExtractors())
	userService := user.NewUserService(userRepository, jwtService)
	reportService := report.NewReportService(reportRepository, interpreterService, s3)
	planService := mealplan.NewMealPlanService(planRepository, reportRepository, interpreterService, s3)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	reportHandler := handlers.NewReportHandler(reportService, validator)
	planHandler := handlers.NewPlanHandler(planService, validator)

	// routes
	routesConfig := routes.Config{
		App:           app,
		UserHandler:   userHandler,
		ReportHandler: reportHandler,
		PlanHandler:   planHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
